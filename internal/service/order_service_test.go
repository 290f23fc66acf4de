package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/agrovivo/biocampo-api/internal/model"
)

type fakeOrderStore struct {
	orders []model.Order
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, order *model.Order) error {
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderStore) CountOrders(ctx context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

type fakeCatalog struct {
	products map[uuid.UUID]model.Product
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if product, ok := f.products[id]; ok {
		return &product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]model.Product, error) {
	var result []model.Product
	for _, product := range f.products {
		result = append(result, product)
	}
	return result, nil
}

func (f *fakeCatalog) ListProductsByKind(ctx context.Context, kind model.ProductKind) ([]model.Product, error) {
	var result []model.Product
	for _, product := range f.products {
		if product.Kind == kind {
			result = append(result, product)
		}
	}
	return result, nil
}

type failingNotifier struct {
	calls int
	err   error
}

func (f *failingNotifier) Send(ctx context.Context, text string) error {
	f.calls++
	return f.err
}

func testProduct(price string) model.Product {
	return model.Product{
		ID:        uuid.New(),
		Name:      "Trichoderma harzianum",
		Kind:      model.ProductKindFungus,
		Unit:      "L",
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestCreateOrderTotalsAndNumber(t *testing.T) {
	product := testProduct("85000.00")
	catalog := &fakeCatalog{products: map[uuid.UUID]model.Product{product.ID: product}}
	store := &fakeOrderStore{}
	notifier := &failingNotifier{}
	svc := NewOrderService(store, catalog, NewIdentityResolver(testIdentityStore()), notifier, zerolog.Nop())

	order, err := svc.CreateOrder(context.Background(), model.Principal{UserID: adminOne}, []OrderLineInput{
		{ProductID: product.ID, Quantity: decimal.RequireFromString("2.5")},
	})
	require.NoError(t, err)

	assert.Equal(t, entityOne, order.EntityID)
	assert.Equal(t, "212500.00", order.Total.StringFixed(2))
	assert.Contains(t, order.OrderNumber, "PED-")
	assert.Equal(t, 1, notifier.calls)
	require.Len(t, store.orders, 1)
}

func TestCreateOrderNotificationFailureDoesNotFailOrder(t *testing.T) {
	product := testProduct("10000.00")
	catalog := &fakeCatalog{products: map[uuid.UUID]model.Product{product.ID: product}}
	store := &fakeOrderStore{}
	notifier := &failingNotifier{err: errors.New("bot unreachable")}
	svc := NewOrderService(store, catalog, NewIdentityResolver(testIdentityStore()), notifier, zerolog.Nop())

	order, err := svc.CreateOrder(context.Background(), model.Principal{UserID: adminOne}, []OrderLineInput{
		{ProductID: product.ID, Quantity: decimal.NewFromInt(1)},
	})
	require.NoError(t, err, "notification failure must never fail the order")
	assert.Equal(t, 1, notifier.calls)
	require.Len(t, store.orders, 1)
	assert.Equal(t, order.ID, store.orders[0].ID)
}

func TestCreateOrderValidation(t *testing.T) {
	product := testProduct("10000.00")
	catalog := &fakeCatalog{products: map[uuid.UUID]model.Product{product.ID: product}}
	svc := NewOrderService(&fakeOrderStore{}, catalog, NewIdentityResolver(testIdentityStore()), &failingNotifier{}, zerolog.Nop())
	principal := model.Principal{UserID: adminOne}

	_, err := svc.CreateOrder(context.Background(), principal, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateOrder(context.Background(), principal, []OrderLineInput{
		{ProductID: product.ID, Quantity: decimal.Zero},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateOrder(context.Background(), principal, []OrderLineInput{
		{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
