package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
	"github.com/yanqian/ethix-logistics/internal/domain/catalog"
	"github.com/yanqian/ethix-logistics/internal/domain/routing"
	apperrors "github.com/yanqian/ethix-logistics/pkg/errors"
	"github.com/yanqian/ethix-logistics/pkg/logger"
)

func TestLoadEmptyStore(t *testing.T) {
	c := NewContainer(newStubStore(), logger.Discard())
	require.NoError(t, c.Load(context.Background()))

	_, ok := c.CurrentUser()
	require.False(t, ok)
	require.Empty(t, c.Cart())
	require.Empty(t, c.Orders())
	require.Empty(t, c.Shipments())
}

func TestLoginFlushesUser(t *testing.T) {
	store := newStubStore()
	c := NewContainer(store, logger.Discard())
	c.newID = func() string { return "abc123xyz" }

	user, err := c.Login(context.Background(), "asha@ethix.in", RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, User{ID: "abc123xyz", Name: "asha", Email: "asha@ethix.in", Role: RoleAdmin}, user)

	var persisted User
	require.NoError(t, json.Unmarshal(store.data[keyUser], &persisted))
	require.Equal(t, user, persisted)
}

func TestLoginValidatesInput(t *testing.T) {
	c := NewContainer(newStubStore(), logger.Discard())
	_, err := c.Login(context.Background(), "  ", RoleCustomer)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = c.Login(context.Background(), "a@b.c", Role("ROOT"))
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestCartLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	c := NewContainer(store, logger.Discard())
	insulin, _ := catalog.FindProduct("p1")
	phone, _ := catalog.FindProduct("p6")

	_, err := c.AddToCart(ctx, insulin)
	require.NoError(t, err)
	_, err = c.AddToCart(ctx, phone)
	require.NoError(t, err)
	cart, err := c.AddToCart(ctx, insulin)
	require.NoError(t, err)
	require.Len(t, cart, 2)
	require.Equal(t, 2, cart[0].Quantity)

	qty := 5
	item, err := c.UpdateCartItem(ctx, "p1", CartUpdate{
		Quantity:       &qty,
		MedicalContext: &advisor.MedicalContext{IntendedUse: "emergency", RecipientType: "Hospital"},
	})
	require.NoError(t, err)
	require.Equal(t, 5, item.Quantity)
	require.Equal(t, "emergency", item.MedicalContext.IntendedUse)

	cart, err = c.RemoveFromCart(ctx, "p6")
	require.NoError(t, err)
	require.Len(t, cart, 1)

	var persisted []CartItem
	require.NoError(t, json.Unmarshal(store.data[keyCart], &persisted))
	require.Equal(t, c.Cart(), persisted)

	require.NoError(t, c.ClearCart(ctx))
	require.Empty(t, c.Cart())
}

func TestCartErrors(t *testing.T) {
	ctx := context.Background()
	c := NewContainer(newStubStore(), logger.Discard())

	_, err := c.RemoveFromCart(ctx, "p1")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	zero := 0
	_, err = c.UpdateCartItem(ctx, "p1", CartUpdate{Quantity: &zero})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestFlushFailureLeavesStateUntouched(t *testing.T) {
	store := newStubStore()
	store.putErr = errors.New("disk full")
	c := NewContainer(store, logger.Discard())
	p, _ := catalog.FindProduct("p4")

	_, err := c.AddToCart(context.Background(), p)
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
	require.Empty(t, c.Cart())
}

func TestCreateOrderAndReload(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	c := NewContainer(store, logger.Discard())

	order := sampleOrder()
	require.NoError(t, c.CreateOrder(ctx, order))
	require.Len(t, c.Orders(), 1)
	require.Len(t, c.Shipments(), 1)

	reloaded := NewContainer(store, logger.Discard())
	require.NoError(t, reloaded.Load(ctx))
	require.Equal(t, c.Orders(), reloaded.Orders())
	require.Equal(t, c.Shipments(), reloaded.Shipments())
}

func TestCreateOrderRestoresShipmentsWhenOrdersFlushFails(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	c := NewContainer(store, logger.Discard())
	require.NoError(t, c.CreateOrder(ctx, sampleOrder()))

	store.putErr = errors.New("disk full")
	store.failKey = keyOrders
	second := sampleOrder()
	second.ID = "ORD-2"
	second.Shipments[0].ID = "SHP-2"
	err := c.CreateOrder(ctx, second)
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
	require.Len(t, c.Orders(), 1)
	require.Len(t, c.Shipments(), 1)

	reloaded := NewContainer(store, logger.Discard())
	require.NoError(t, reloaded.Load(ctx))
	require.Len(t, reloaded.Orders(), 1)
	require.Len(t, reloaded.Shipments(), 1)
	require.Equal(t, "SHP-1", reloaded.Shipments()[0].ID)
}

func TestCompleteCheckoutDropsOnlyOrderedLines(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	c := NewContainer(store, logger.Discard())
	insulin, _ := catalog.FindProduct("p1")
	atta, _ := catalog.FindProduct("p4")
	phone, _ := catalog.FindProduct("p6")
	for _, p := range []catalog.Product{insulin, atta, atta, phone} {
		_, err := c.AddToCart(ctx, p)
		require.NoError(t, err)
	}

	order := sampleOrder()
	order.Items = []CartItem{{Product: insulin, Quantity: 1}, {Product: atta, Quantity: 1}}
	require.NoError(t, c.CompleteCheckout(ctx, order))

	cart := c.Cart()
	require.Len(t, cart, 2)
	require.Equal(t, "p4", cart[0].ID)
	require.Equal(t, 1, cart[0].Quantity)
	require.Equal(t, "p6", cart[1].ID)
	require.Len(t, c.Orders(), 1)

	reloaded := NewContainer(store, logger.Discard())
	require.NoError(t, reloaded.Load(ctx))
	require.Equal(t, cart, reloaded.Cart())
}

func TestCompleteCheckoutKeepsOrderWhenCartFlushFails(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	c := NewContainer(store, logger.Discard())
	insulin, _ := catalog.FindProduct("p1")
	_, err := c.AddToCart(ctx, insulin)
	require.NoError(t, err)

	store.putErr = errors.New("disk full")
	store.failKey = keyCart
	require.NoError(t, c.CompleteCheckout(ctx, sampleOrder()))
	require.Len(t, c.Orders(), 1)
	require.Len(t, c.Shipments(), 1)
	require.Empty(t, c.Cart())
}

func TestCompleteCheckoutFailsBeforeTouchingCart(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	c := NewContainer(store, logger.Discard())
	insulin, _ := catalog.FindProduct("p1")
	_, err := c.AddToCart(ctx, insulin)
	require.NoError(t, err)

	store.putErr = errors.New("disk full")
	store.failKey = keyShipments
	err = c.CompleteCheckout(ctx, sampleOrder())
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
	require.Empty(t, c.Orders())
	require.Len(t, c.Cart(), 1)
}

func TestUpdateShipmentStatus(t *testing.T) {
	ctx := context.Background()
	c := NewContainer(newStubStore(), logger.Discard())
	require.NoError(t, c.CreateOrder(ctx, sampleOrder()))

	s, err := c.UpdateShipmentStatus(ctx, "SHP-1", StatusInTransit)
	require.NoError(t, err)
	require.Equal(t, StatusInTransit, s.Status)
	require.Equal(t, StatusInTransit, c.Shipments()[0].Status)
	require.Equal(t, StatusInTransit, c.Orders()[0].Shipments[0].Status)

	_, err = c.UpdateShipmentStatus(ctx, "SHP-404", StatusDelivered)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	_, err = c.UpdateShipmentStatus(ctx, "SHP-1", ShipmentStatus("Lost"))
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestLogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	c := NewContainer(store, logger.Discard())
	_, err := c.Login(ctx, "ravi@ethix.in", RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, c.CreateOrder(ctx, sampleOrder()))

	require.NoError(t, c.Logout(ctx))
	_, ok := c.CurrentUser()
	require.False(t, ok)
	require.Empty(t, c.Orders())
	require.Empty(t, c.Shipments())
	require.Empty(t, store.data)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	c := NewContainer(newStubStore(), logger.Discard())
	require.NoError(t, c.CreateOrder(ctx, sampleOrder()))

	orders := c.Orders()
	orders[0].Shipments[0].Lane = routing.LaneStandard
	require.Equal(t, routing.LaneEthicalExpress, c.Orders()[0].Shipments[0].Lane)
}

func TestLoadRejectsCorruptSnapshot(t *testing.T) {
	store := newStubStore()
	store.data[keyOrders] = []byte("{not json")
	c := NewContainer(store, logger.Discard())
	require.True(t, apperrors.IsCode(c.Load(context.Background()), apperrors.CodeStorage))
}

func TestPrefixedID(t *testing.T) {
	id := PrefixedID("ORD")
	require.Len(t, id, len("ORD-")+shortIDLen)
	require.Regexp(t, `^ORD-[0-9A-F]{9}$`, id)
}

func sampleOrder() Order {
	insulin, _ := catalog.FindProduct("p1")
	return Order{
		ID:         "ORD-1",
		CustomerID: "u1",
		Items:      []CartItem{{Product: insulin, Quantity: 1}},
		TotalPrice: insulin.Price,
		Timestamp:  "2024-07-01T09:00:00.000Z",
		Shipments: []Shipment{{
			ID:            "SHP-1",
			OrderID:       "ORD-1",
			ProductID:     "p1",
			ItemName:      insulin.Name,
			Lane:          routing.LaneEthicalExpress,
			Status:        StatusProcessing,
			PriorityScore: 0.74,
		}},
	}
}

type stubStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	putErr error
	// failKey limits putErr to one key when set.
	failKey string
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string][]byte)}
}

func (s *stubStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *stubStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil && (s.failKey == "" || s.failKey == key) {
		return s.putErr
	}
	s.data[key] = append([]byte(nil), data...)
	return nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
