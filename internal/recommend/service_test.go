package recommend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfontes/ohm/internal/catalog"
	"github.com/mfontes/ohm/internal/order"
	"github.com/mfontes/ohm/internal/recommend"
)

func newService(t *testing.T) (*recommend.Service, *catalog.MockRepository, *order.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	products := catalog.NewMockRepository(ctrl)
	orders := order.NewMockRepository(ctrl)

	return recommend.NewService(products, orders, recommend.Config{}), products, orders
}

func TestService_Similar(t *testing.T) {
	svc, products, _ := newService(t)

	categoryID := uuid.New()
	ref := &catalog.Product{
		ID:           uuid.New(),
		CategoryID:   categoryID,
		SellingPrice: 10000,
		Active:       true,
	}

	peers := []*catalog.Product{
		{ID: uuid.New(), CategoryID: categoryID, SellingPrice: 8900, Active: true},
		{ID: uuid.New(), CategoryID: categoryID, SellingPrice: 12500, Active: true},
	}

	products.EXPECT().FindProduct(gomock.Any(), ref.ID).Return(ref, nil)
	products.EXPECT().
		ListProducts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter catalog.ListFilter) ([]*catalog.Product, error) {
			require.NotNil(t, filter.CategoryID)
			assert.Equal(t, categoryID, *filter.CategoryID)

			require.NotNil(t, filter.MinPrice)
			require.NotNil(t, filter.MaxPrice)
			assert.Equal(t, int64(7000), *filter.MinPrice)
			assert.Equal(t, int64(13000), *filter.MaxPrice)

			require.NotNil(t, filter.Active)
			assert.True(t, *filter.Active)

			require.NotNil(t, filter.ExcludeID)
			assert.Equal(t, ref.ID, *filter.ExcludeID)

			assert.Equal(t, 4, filter.Limit)

			return peers, nil
		})

	got, err := svc.Similar(context.Background(), ref.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, peers, got)
}

func TestService_Similar_MissingReferenceIsEmpty(t *testing.T) {
	svc, products, _ := newService(t)

	id := uuid.New()
	products.EXPECT().FindProduct(gomock.Any(), id).Return(nil, catalog.ErrNotFound)

	got, err := svc.Similar(context.Background(), id, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Similar_RepoErrorPropagates(t *testing.T) {
	svc, products, _ := newService(t)

	id := uuid.New()
	products.EXPECT().FindProduct(gomock.Any(), id).Return(nil, errors.New("store down"))

	got, err := svc.Similar(context.Background(), id, 4)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestService_BoughtTogether_RanksByCount(t *testing.T) {
	svc, products, orders := newService(t)

	refID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	orderIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	// A co-occurs with the reference three times, B once.
	items := []*order.Item{
		{OrderID: orderIDs[0], ProductID: refID},
		{OrderID: orderIDs[0], ProductID: productA},
		{OrderID: orderIDs[0], ProductID: productB},
		{OrderID: orderIDs[1], ProductID: refID},
		{OrderID: orderIDs[1], ProductID: productA},
		{OrderID: orderIDs[2], ProductID: refID},
		{OrderID: orderIDs[2], ProductID: productA},
	}

	prodA := &catalog.Product{ID: productA, Active: true}
	prodB := &catalog.Product{ID: productB, Active: true}

	orders.EXPECT().OrderIDsForProduct(gomock.Any(), refID, recommend.DefaultOrderSample).Return(orderIDs, nil)
	orders.EXPECT().ItemsByOrders(gomock.Any(), orderIDs).Return(items, nil)
	products.EXPECT().
		ListProducts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter catalog.ListFilter) ([]*catalog.Product, error) {
			assert.Equal(t, []uuid.UUID{productA, productB}, filter.IDs)
			// Store returns them in its own order; the service re-ranks.
			return []*catalog.Product{prodB, prodA}, nil
		})

	got, err := svc.BoughtTogether(context.Background(), refID, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, productA, got[0].ID)
	assert.Equal(t, productB, got[1].ID)
}

func TestService_BoughtTogether_NoOrders(t *testing.T) {
	svc, _, orders := newService(t)

	refID := uuid.New()
	orders.EXPECT().OrderIDsForProduct(gomock.Any(), refID, recommend.DefaultOrderSample).Return(nil, nil)

	got, err := svc.BoughtTogether(context.Background(), refID, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_BoughtTogether_OnlyReferenceInOrders(t *testing.T) {
	svc, _, orders := newService(t)

	refID := uuid.New()
	orderIDs := []uuid.UUID{uuid.New()}

	orders.EXPECT().OrderIDsForProduct(gomock.Any(), refID, recommend.DefaultOrderSample).Return(orderIDs, nil)
	orders.EXPECT().ItemsByOrders(gomock.Any(), orderIDs).Return([]*order.Item{
		{OrderID: orderIDs[0], ProductID: refID},
	}, nil)

	got, err := svc.BoughtTogether(context.Background(), refID, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_BoughtTogether_LimitRespected(t *testing.T) {
	svc, products, orders := newService(t)

	refID := uuid.New()
	orderIDs := []uuid.UUID{uuid.New()}

	var items []*order.Item

	others := make([]uuid.UUID, 6)
	for i := range others {
		others[i] = uuid.New()
		items = append(items, &order.Item{OrderID: orderIDs[0], ProductID: others[i]})
	}

	orders.EXPECT().OrderIDsForProduct(gomock.Any(), refID, recommend.DefaultOrderSample).Return(orderIDs, nil)
	orders.EXPECT().ItemsByOrders(gomock.Any(), orderIDs).Return(items, nil)
	products.EXPECT().
		ListProducts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter catalog.ListFilter) ([]*catalog.Product, error) {
			assert.Len(t, filter.IDs, 2)

			out := make([]*catalog.Product, len(filter.IDs))
			for i, id := range filter.IDs {
				out[i] = &catalog.Product{ID: id, Active: true}
			}
			return out, nil
		})

	got, err := svc.BoughtTogether(context.Background(), refID, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Upsells(t *testing.T) {
	svc, products, _ := newService(t)

	featured := &catalog.Product{ID: uuid.New(), Kind: catalog.KindAccessory, Active: true, Featured: true, Quantity: 4}
	plain := &catalog.Product{ID: uuid.New(), Kind: catalog.KindAccessory, Active: true, Quantity: 9}

	products.EXPECT().
		ListProducts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter catalog.ListFilter) ([]*catalog.Product, error) {
			require.NotNil(t, filter.Kind)
			assert.Equal(t, catalog.KindAccessory, *filter.Kind)

			require.NotNil(t, filter.Active)
			assert.True(t, *filter.Active)

			require.NotNil(t, filter.MinQuantity)
			assert.Equal(t, 1, *filter.MinQuantity)

			assert.Equal(t, catalog.OrderFeaturedFirst, filter.OrderBy)
			assert.Equal(t, 3, filter.Limit)

			return []*catalog.Product{featured, plain}, nil
		})

	got, err := svc.Upsells(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Featured)
}
