// Package rotation classifies how quickly a product is moving based on how
// long it has been in stock. Labels are derived on every call, never stored.
package rotation

import (
	"time"

	"github.com/mfontes/ohm/internal/catalog"
)

// Label is a rotation-speed bucket.
type Label string

const (
	LabelHigh   Label = "high"
	LabelMedium Label = "medium"
	LabelSlow   Label = "slow"
	LabelDead   Label = "dead"
)

// Bucket edges in days in stock. Each edge is an exclusive upper bound on
// the faster bucket: a product at exactly 15 days is medium, not high.
const (
	highUnderDays   = 15
	mediumUnderDays = 30
	slowUnderDays   = 45
)

// Detect buckets a product by whole days since it entered stock. Depleted
// stock is dead regardless of age. The caller supplies now, which makes the
// classification deterministic and testable; passing the wall clock gives
// the live answer, which shifts as days pass.
func Detect(p *catalog.Product, now time.Time) Label {
	if p.Quantity == 0 {
		return LabelDead
	}

	days := int(now.Sub(p.AddedAt) / (24 * time.Hour))

	switch {
	case days < highUnderDays:
		return LabelHigh
	case days < mediumUnderDays:
		return LabelMedium
	case days < slowUnderDays:
		return LabelSlow
	default:
		return LabelDead
	}
}
