package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfontes/ohm/internal/finance"
	"github.com/mfontes/ohm/internal/importer"
)

func TestService_Import(t *testing.T) {
	input := strings.Join([]string{
		"Exported by AcmeBooks", // metadata row before the header
		"Date;Type;Category;Amount",
		"01-08-2026;revenue;phone sales;1.250,00",
		"02-08-2026;purchase;stock;-300,50",
		"03-08-2026;payroll;;830,00",
		"Total;;;1.780,50", // footer, no date
	}, "\n")

	svc := importer.NewService()
	params, err := svc.Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, finance.CreateParams{
		Type:     finance.TypeRevenue,
		Amount:   125000,
		Category: "phone sales",
		Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}, params[0])

	// Negative magnitudes are normalized; the type carries the sign.
	assert.Equal(t, int64(30050), params[1].Amount)
	assert.Equal(t, finance.TypePurchase, params[1].Type)

	assert.Equal(t, finance.TypePayroll, params[2].Type)
	assert.Empty(t, params[2].Category)
}

func TestService_Import_TypeAliases(t *testing.T) {
	input := strings.Join([]string{
		"Date;Type;Category;Amount",
		"01-08-2026;income;sales;100,00",
		"02-08-2026;salary;team;200,00",
		"03-08-2026;sponsorship;other;300,00", // unknown type, skipped
	}, "\n")

	svc := importer.NewService()
	params, err := svc.Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, finance.TypeRevenue, params[0].Type)
	assert.Equal(t, finance.TypePayroll, params[1].Type)
}

func TestService_Import_PlainDecimalAmounts(t *testing.T) {
	input := strings.Join([]string{
		"Date;Type;Category;Amount",
		"01-08-2026;expense;rent;499.99",
		"02-08-2026;expense;fees;12",
	}, "\n")

	svc := importer.NewService()
	params, err := svc.Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, int64(49999), params[0].Amount)
	assert.Equal(t, int64(1200), params[1].Amount)
}

func TestService_Import_NoHeader(t *testing.T) {
	svc := importer.NewService()
	params, err := svc.Import(strings.NewReader("just;some;cells\nwithout;a;header\n"))

	assert.Error(t, err)
	assert.Nil(t, params)
}
