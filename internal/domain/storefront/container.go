package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/yanqian/ethix-logistics/internal/domain/catalog"
	apperrors "github.com/yanqian/ethix-logistics/pkg/errors"
)

const (
	keyUser      = "user"
	keyCart      = "cart"
	keyOrders    = "orders"
	keyShipments = "shipments"
)

// Container owns session, cart and order history. State is loaded from the
// blob store once and every mutation is flushed before it becomes visible.
type Container struct {
	mu     sync.RWMutex
	store  BlobStore
	logger *slog.Logger
	newID  func() string

	user      *User
	cart      []CartItem
	orders    []Order
	shipments []Shipment
}

// NewContainer builds an empty container; call Load before serving.
func NewContainer(store BlobStore, logger *slog.Logger) *Container {
	return &Container{
		store:  store,
		logger: logger.With("component", "storefront.container"),
		newID:  ShortID,
	}
}

// Load replaces the in-memory state with the persisted snapshot.
func (c *Container) Load(ctx context.Context) error {
	var (
		user      *User
		cart      []CartItem
		orders    []Order
		shipments []Shipment
	)
	if err := c.read(ctx, keyUser, &user); err != nil {
		return err
	}
	if err := c.read(ctx, keyCart, &cart); err != nil {
		return err
	}
	if err := c.read(ctx, keyOrders, &orders); err != nil {
		return err
	}
	if err := c.read(ctx, keyShipments, &shipments); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.user, c.cart, c.orders, c.shipments = user, cart, orders, shipments
	c.logger.Info("storefront state loaded", "orders", len(orders), "shipments", len(shipments), "signedIn", user != nil)
	return nil
}

// Login signs a user in. The display name is the local part of the email.
func (c *Container) Login(ctx context.Context, email string, role Role) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, apperrors.Wrap(apperrors.CodeInvalidInput, "email cannot be empty", nil)
	}
	if role != RoleCustomer && role != RoleAdmin {
		return User{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown role %q", role), nil)
	}
	name, _, _ := strings.Cut(email, "@")
	user := User{ID: c.newID(), Name: name, Email: email, Role: role}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.write(ctx, keyUser, user); err != nil {
		return User{}, err
	}
	c.user = &user
	return user, nil
}

// Logout drops the session together with cart and history.
func (c *Container) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range []string{keyUser, keyCart, keyOrders, keyShipments} {
		if err := c.store.Delete(ctx, key); err != nil {
			return apperrors.Wrap(apperrors.CodeStorage, "failed to clear "+key, err)
		}
	}
	c.user, c.cart, c.orders, c.shipments = nil, nil, nil, nil
	return nil
}

// CurrentUser returns the signed-in user, if any.
func (c *Container) CurrentUser() (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return User{}, false
	}
	return *c.user, true
}

// Cart returns a copy of the cart lines.
func (c *Container) Cart() []CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneCart(c.cart)
}

// AddToCart adds one unit of p, merging with an existing line.
func (c *Container) AddToCart(ctx context.Context, p catalog.Product) ([]CartItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := cloneCart(c.cart)
	if i := indexOf(next, p.ID); i >= 0 {
		next[i].Quantity++
	} else {
		next = append(next, CartItem{Product: p, Quantity: 1})
	}
	if err := c.write(ctx, keyCart, next); err != nil {
		return nil, err
	}
	c.cart = next
	return cloneCart(next), nil
}

// RemoveFromCart deletes the line for productID.
func (c *Container) RemoveFromCart(ctx context.Context, productID string) ([]CartItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := indexOf(c.cart, productID)
	if i < 0 {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "product not in cart", nil)
	}
	next := append(cloneCart(c.cart[:i]), c.cart[i+1:]...)
	if err := c.write(ctx, keyCart, next); err != nil {
		return nil, err
	}
	c.cart = next
	return cloneCart(next), nil
}

// UpdateCartItem applies upd to the line for productID.
func (c *Container) UpdateCartItem(ctx context.Context, productID string, upd CartUpdate) (CartItem, error) {
	if upd.Quantity != nil && *upd.Quantity < 1 {
		return CartItem{}, apperrors.Wrap(apperrors.CodeInvalidInput, "quantity must be at least 1", nil)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := indexOf(c.cart, productID)
	if i < 0 {
		return CartItem{}, apperrors.Wrap(apperrors.CodeNotFound, "product not in cart", nil)
	}
	next := cloneCart(c.cart)
	if upd.Quantity != nil {
		next[i].Quantity = *upd.Quantity
	}
	if upd.MedicalContext != nil {
		mc := *upd.MedicalContext
		next[i].MedicalContext = &mc
	}
	if err := c.write(ctx, keyCart, next); err != nil {
		return CartItem{}, err
	}
	c.cart = next
	return next[i], nil
}

// ClearCart empties the cart.
func (c *Container) ClearCart(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.write(ctx, keyCart, []CartItem{}); err != nil {
		return err
	}
	c.cart = nil
	return nil
}

// CreateOrder appends the order and its shipments to history.
func (c *Container) CreateOrder(ctx context.Context, order Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appendOrderLocked(ctx, order)
}

// CompleteCheckout stores order and takes out of the cart exactly the
// quantities the order was built from; lines added since stay in the cart.
// Once the order is stored a failed cart flush is logged, not returned.
func (c *Container) CompleteCheckout(ctx context.Context, order Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.appendOrderLocked(ctx, order); err != nil {
		return err
	}
	next := subtractLines(c.cart, order.Items)
	if err := c.write(ctx, keyCart, next); err != nil {
		c.logger.Warn("order stored but cart flush failed", "order", order.ID, "error", err)
	}
	c.cart = next
	return nil
}

// appendOrderLocked flushes shipments before orders so a stored order always
// has its shipments. A failed orders flush restores the previous shipments.
func (c *Container) appendOrderLocked(ctx context.Context, order Order) error {
	orders := append(cloneOrders(c.orders), cloneOrder(order))
	shipments := append(cloneShipments(c.shipments), order.Shipments...)
	if err := c.write(ctx, keyShipments, shipments); err != nil {
		return err
	}
	if err := c.write(ctx, keyOrders, orders); err != nil {
		if rbErr := c.write(ctx, keyShipments, c.shipments); rbErr != nil {
			c.logger.Error("failed to restore shipments", "order", order.ID, "error", rbErr)
		}
		return err
	}
	c.orders, c.shipments = orders, shipments
	return nil
}

// Orders returns a copy of the order history.
func (c *Container) Orders() []Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneOrders(c.orders)
}

// Shipments returns a copy of every persisted shipment.
func (c *Container) Shipments() []Shipment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneShipments(c.shipments)
}

// UpdateShipmentStatus moves a shipment to status in both the flat list and its order.
func (c *Container) UpdateShipmentStatus(ctx context.Context, id string, status ShipmentStatus) (Shipment, error) {
	if !status.Valid() {
		return Shipment{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown status %q", status), nil)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	shipments := cloneShipments(c.shipments)
	idx := -1
	for i := range shipments {
		if shipments[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Shipment{}, apperrors.Wrap(apperrors.CodeNotFound, "shipment not found", nil)
	}
	shipments[idx].Status = status

	orders := cloneOrders(c.orders)
	for i := range orders {
		for j := range orders[i].Shipments {
			if orders[i].Shipments[j].ID == id {
				orders[i].Shipments[j].Status = status
			}
		}
	}

	if err := c.write(ctx, keyShipments, shipments); err != nil {
		return Shipment{}, err
	}
	if err := c.write(ctx, keyOrders, orders); err != nil {
		return Shipment{}, err
	}
	c.shipments, c.orders = shipments, orders
	return shipments[idx], nil
}

func (c *Container) read(ctx context.Context, key string, dst any) error {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to read "+key, err)
	}
	if !ok || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "corrupt snapshot for "+key, err)
	}
	return nil
}

func (c *Container) write(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to encode "+key, err)
	}
	if err := c.store.Put(ctx, key, data); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to flush "+key, err)
	}
	return nil
}

func indexOf(cart []CartItem, productID string) int {
	for i := range cart {
		if cart[i].ID == productID {
			return i
		}
	}
	return -1
}

func subtractLines(cart, ordered []CartItem) []CartItem {
	taken := make(map[string]int, len(ordered))
	for _, line := range ordered {
		taken[line.ID] += line.Quantity
	}
	next := make([]CartItem, 0, len(cart))
	for _, line := range cart {
		line.Quantity -= taken[line.ID]
		delete(taken, line.ID)
		if line.Quantity > 0 {
			next = append(next, line)
		}
	}
	return next
}

func cloneCart(in []CartItem) []CartItem {
	if in == nil {
		return nil
	}
	return append([]CartItem(nil), in...)
}

func cloneShipments(in []Shipment) []Shipment {
	if in == nil {
		return nil
	}
	return append([]Shipment(nil), in...)
}

func cloneOrder(o Order) Order {
	o.Items = cloneCart(o.Items)
	o.Shipments = cloneShipments(o.Shipments)
	return o
}

func cloneOrders(in []Order) []Order {
	if in == nil {
		return nil
	}
	out := make([]Order, len(in))
	for i, o := range in {
		out[i] = cloneOrder(o)
	}
	return out
}
