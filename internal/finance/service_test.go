package finance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfontes/ohm/internal/finance"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_ComputePnL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)

	entries := []*finance.Entry{
		{Type: finance.TypeRevenue, Amount: 10000, Category: "sales", Date: day(2026, 8, 20)},
		{Type: finance.TypeExpense, Amount: 4000, Category: "rent", Date: day(2026, 8, 18)},
		{Type: finance.TypePurchase, Amount: 1000, Category: "stock", Date: day(2026, 8, 15)},
	}

	repo.EXPECT().
		ListSince(gomock.Any(), gomock.Any(), nil).
		Return(entries, nil)

	svc := finance.NewService(repo)
	pnl, err := svc.ComputePnL(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, int64(10000), pnl.Revenue)
	assert.Equal(t, int64(5000), pnl.Expenses)
	assert.Equal(t, int64(5000), pnl.NetProfit)

	assert.Equal(t, []finance.CategoryTotal{
		{Category: "rent", Amount: -4000},
		{Category: "sales", Amount: 10000},
		{Category: "stock", Amount: -1000},
	}, pnl.ByCategory)
}

func TestService_ComputePnL_CategoryDefaultsToType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)

	entries := []*finance.Entry{
		{Type: finance.TypePayroll, Amount: 2500, Date: day(2026, 8, 10)},
	}

	repo.EXPECT().
		ListSince(gomock.Any(), gomock.Any(), nil).
		Return(entries, nil)

	svc := finance.NewService(repo)
	pnl, err := svc.ComputePnL(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, []finance.CategoryTotal{{Category: "payroll", Amount: -2500}}, pnl.ByCategory)
}

func TestService_CashFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)

	// Newest first, as the ledger returns them. Two entries share a day.
	entries := []*finance.Entry{
		{Type: finance.TypeRevenue, Amount: 3000, Date: day(2026, 8, 22)},
		{Type: finance.TypeRevenue, Amount: 5000, Date: time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)},
		{Type: finance.TypePayroll, Amount: 2000, Date: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)},
		{Type: finance.TypeExpense, Amount: 700, Date: day(2026, 8, 12)},
	}

	repo.EXPECT().
		ListSince(gomock.Any(), gomock.Any(), nil).
		Return(entries, nil)

	svc := finance.NewService(repo)
	flows, err := svc.CashFlow(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, []finance.DayFlow{
		{Date: "2026-08-12", Inflow: 0, Outflow: 700},
		{Date: "2026-08-20", Inflow: 5000, Outflow: 2000},
		{Date: "2026-08-22", Inflow: 3000, Outflow: 0},
	}, flows)
}

func TestService_CashFlow_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)
	repo.EXPECT().
		ListSince(gomock.Any(), gomock.Any(), nil).
		Return(nil, nil)

	svc := finance.NewService(repo)
	flows, err := svc.CashFlow(context.Background(), 30)
	require.NoError(t, err)
	assert.Empty(t, flows)
}

func TestService_Entries_DefaultWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)
	typ := finance.TypeRevenue

	repo.EXPECT().
		ListSince(gomock.Any(), gomock.Any(), &typ).
		DoAndReturn(func(_ context.Context, from time.Time, _ *finance.Type) ([]*finance.Entry, error) {
			// days <= 0 falls back to the 30-day default.
			wantFrom := time.Now().AddDate(0, 0, -finance.DefaultWindowDays)
			assert.WithinDuration(t, wantFrom, from, time.Minute)
			return nil, nil
		})

	svc := finance.NewService(repo)
	_, err := svc.Entries(context.Background(), &typ, 0)
	require.NoError(t, err)
}

func TestService_Record(t *testing.T) {
	type testCase struct {
		name      string
		params    finance.CreateParams
		setupMock func(m *finance.MockRepository)
		check     func(t *testing.T, e *finance.Entry)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: finance.CreateParams{
				Type:     finance.TypeRevenue,
				Amount:   15000,
				Category: "sales",
				Date:     day(2026, 8, 25),
			},
			setupMock: func(m *finance.MockRepository) {
				m.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, e *finance.Entry) {
				assert.Equal(t, "sales", e.Category)
				assert.Equal(t, day(2026, 8, 25), e.Date)
			},
		},
		{
			name: "CategoryDefaultsToType",
			params: finance.CreateParams{
				Type:   finance.TypeExpense,
				Amount: 500,
				Date:   day(2026, 8, 25),
			},
			setupMock: func(m *finance.MockRepository) {
				m.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, e *finance.Entry) {
				assert.Equal(t, "expense", e.Category)
			},
		},
		{
			name: "UnknownType",
			params: finance.CreateParams{
				Type:   finance.Type("refund"),
				Amount: 100,
			},
			wantErr: true,
		},
		{
			name: "NegativeAmount",
			params: finance.CreateParams{
				Type:   finance.TypeRevenue,
				Amount: -1,
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			params: finance.CreateParams{
				Type:   finance.TypeRevenue,
				Amount: 100,
			},
			setupMock: func(m *finance.MockRepository) {
				m.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := finance.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := finance.NewService(repo)
			got, err := svc.Record(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_RecordBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)

	params := []finance.CreateParams{
		{Type: finance.TypeRevenue, Amount: 1200, Date: day(2026, 8, 1)},
		{Type: finance.TypePurchase, Amount: 800, Category: "stock", Date: day(2026, 8, 2)},
	}

	repo.EXPECT().
		CreateEntries(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entries []*finance.Entry) error {
			require.Len(t, entries, 2)
			assert.Equal(t, "revenue", entries[0].Category)
			assert.Equal(t, "stock", entries[1].Category)
			return nil
		})

	svc := finance.NewService(repo)
	entries, err := svc.RecordBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestService_RecordBatch_BadRowRejectsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := finance.NewMockRepository(ctrl)

	params := []finance.CreateParams{
		{Type: finance.TypeRevenue, Amount: 1200, Date: day(2026, 8, 1)},
		{Type: finance.Type("bogus"), Amount: 800, Date: day(2026, 8, 2)},
	}

	svc := finance.NewService(repo)
	entries, err := svc.RecordBatch(context.Background(), params)

	assert.Error(t, err)
	assert.Nil(t, entries)
}
