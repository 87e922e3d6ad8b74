package rotation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mfontes/ohm/internal/catalog"
	"github.com/mfontes/ohm/internal/rotation"
)

func TestDetect_Boundaries(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		days int
		want rotation.Label
	}{
		{days: 0, want: rotation.LabelHigh},
		{days: 1, want: rotation.LabelHigh},
		{days: 14, want: rotation.LabelHigh},
		{days: 15, want: rotation.LabelMedium},
		{days: 29, want: rotation.LabelMedium},
		{days: 30, want: rotation.LabelSlow},
		{days: 44, want: rotation.LabelSlow},
		{days: 45, want: rotation.LabelDead},
		{days: 200, want: rotation.LabelDead},
	}

	for _, tt := range tests {
		p := &catalog.Product{
			Quantity: 5,
			AddedAt:  now.AddDate(0, 0, -tt.days),
		}

		got := rotation.Detect(p, now)
		assert.Equal(t, tt.want, got, "days=%d", tt.days)
	}
}

func TestDetect_PartialDaysFloor(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// 14 days and 23 hours in stock is still 14 whole days.
	p := &catalog.Product{
		Quantity: 1,
		AddedAt:  now.Add(-(14*24 + 23) * time.Hour),
	}

	assert.Equal(t, rotation.LabelHigh, rotation.Detect(p, now))
}

func TestDetect_DepletedStockIsDead(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// Zero quantity overrides age, even for brand-new products.
	p := &catalog.Product{
		Quantity: 0,
		AddedAt:  now,
	}

	assert.Equal(t, rotation.LabelDead, rotation.Detect(p, now))

	p.AddedAt = now.AddDate(0, 0, -10)
	assert.Equal(t, rotation.LabelDead, rotation.Detect(p, now))
}
