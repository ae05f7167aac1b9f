package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/Abhin-Krishna-MP/CakeFarm/helper"
	"github.com/Abhin-Krishna-MP/CakeFarm/models"
)

// Fan-out event names. Every connected observer receives every event;
// observers filter client-side by matching IDs or tokens in the payload.
const (
	EventNewOrder           = "newOrder"
	EventOrderStatusUpdated = "orderStatusUpdated"
	EventOrderDelivered     = "orderDelivered"
)

// OrderService owns order creation, status and ticket transitions, the batch
// expiry sweep and the order projections.
type OrderService struct {
	store      OrderStore
	catalog    Catalog
	users      UserDirectory
	lunch      *LunchService
	notifier   Notifier
	expiryDays int
	now        func() time.Time
}

func NewOrderService(store OrderStore, catalog Catalog, users UserDirectory, lunch *LunchService, notifier Notifier, expiryDays int) *OrderService {
	if expiryDays < 1 {
		expiryDays = 1
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &OrderService{
		store:      store,
		catalog:    catalog,
		users:      users,
		lunch:      lunch,
		notifier:   notifier,
		expiryDays: expiryDays,
		now:        time.Now,
	}
}

// WithClock overrides the service clock.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// computeSubtotal resolves a product reference and quantity to a monetary
// subtotal. Price is treated as an integer-valued currency unit; fractional
// prices are truncated.
func (s *OrderService) computeSubtotal(ctx context.Context, productId string, quantity int) (int, *models.Product, error) {
	product, err := s.catalog.FindProductById(ctx, productId)
	if err != nil {
		return 0, nil, err
	}
	if product == nil {
		return 0, nil, fmt.Errorf("%w: product %s", ErrNotFound, productId)
	}
	return int(math.Floor(product.Price)) * quantity, product, nil
}

// CreateOrder validates the cart, checks lunch admission, computes subtotals
// and persists the order atomically. All validation happens before the
// persist step so a failure leaves no order record. Returns the new orderId.
func (s *OrderService) CreateOrder(ctx context.Context, userId string, cart models.Cart) (string, error) {
	if userId == "" || cart.PickUpTime == "" || len(cart.CartItems) == 0 {
		return "", fmt.Errorf("%w: pickUpTime and cartItems are required", ErrInvalidRequest)
	}

	now := s.now()
	orderItems := make([]models.OrderItem, 0, len(cart.CartItems))
	total := 0
	hasLunchItem := false

	for _, item := range cart.CartItems {
		if item.Quantity < 1 {
			return "", fmt.Errorf("%w: quantity must be at least 1", ErrInvalidRequest)
		}

		subtotal, product, err := s.computeSubtotal(ctx, item.ProductId, item.Quantity)
		if err != nil {
			return "", err
		}
		if product.IsLunchItem {
			hasLunchItem = true
		}

		total += subtotal
		orderItems = append(orderItems, models.OrderItem{
			OrderItemsId: helper.GenerateID(),
			ProductId:    item.ProductId,
			Quantity:     item.Quantity,
			Subtotal:     subtotal,
			CreatedAt:    now,
		})
	}

	// The server-side admission check is authoritative even if the client
	// already checked.
	if hasLunchItem {
		open, err := s.lunch.IsOrderingOpen(ctx)
		if err != nil {
			return "", err
		}
		if !open {
			return "", ErrLunchClosed
		}
	}

	token, err := helper.GenerateOrderToken()
	if err != nil {
		return "", err
	}

	order := &models.Order{
		OrderId:    helper.GenerateID(),
		UserId:     userId,
		PickUpTime: cart.PickUpTime,
		ExpiryDate: millisString(now.AddDate(0, 0, s.expiryDays)),
		Total:      total,
		OrderItems: orderItems,
		OrderStatus: models.OrderStatus{
			OrderStatusId: helper.GenerateID(),
			Status:        models.StatusPlaced, // creation skips "processing"
			UpdatedAt:     now,
		},
		OrderToken:   token,
		TicketStatus: models.TicketActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, order); err != nil {
		return "", err
	}

	s.notifier.Publish(EventNewOrder, map[string]interface{}{
		"orderId": order.OrderId,
		"userId":  userId,
	})

	return order.OrderId, nil
}

// UpdateOrderStatus moves an order to a new status, enforcing the transition
// table. The store update is conditioned on the status read here, so a
// concurrent transition makes this call report not-found rather than
// clobbering the newer state.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderId, status string) error {
	if !models.IsValidStatus(status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, status)
	}

	order, err := s.store.GetByID(ctx, orderId)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("%w: order %s", ErrNotFound, orderId)
	}

	if !models.CanTransition(order.OrderStatus.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.OrderStatus.Status, status)
	}

	modified, err := s.store.UpdateStatusFrom(ctx, orderId, order.OrderStatus.Status, status, s.now())
	if err != nil {
		return err
	}
	if !modified {
		return fmt.Errorf("%w: order %s", ErrNotFound, orderId)
	}

	s.notifier.Publish(EventOrderStatusUpdated, map[string]interface{}{
		"orderId": orderId,
		"status":  status,
	})

	return nil
}

// MarkTicketDelivered transitions a ticket active -> delivered. An unknown
// token and a ticket that is already delivered both report ErrNotFound, so a
// repeated delivery mark fails loudly and the ticket never regresses.
func (s *OrderService) MarkTicketDelivered(ctx context.Context, orderToken string) error {
	if orderToken == "" {
		return fmt.Errorf("%w: orderToken is required", ErrInvalidRequest)
	}

	modified, err := s.store.MarkDelivered(ctx, orderToken, s.now())
	if err != nil {
		return err
	}
	if !modified {
		return fmt.Errorf("%w: order not found or already delivered", ErrNotFound)
	}

	// The event carries the token, not the order ID; consumers look up by token.
	s.notifier.Publish(EventOrderDelivered, map[string]interface{}{
		"orderToken": orderToken,
	})

	return nil
}

// ExpireStaleOrders marks every non-terminal order whose expiry date is at
// least a day old as expired, returning the count. Re-running with no newly
// stale orders is a no-op.
func (s *OrderService) ExpireStaleOrders(ctx context.Context) (int64, error) {
	cutoff := millisString(s.now().AddDate(0, 0, -1))
	targets := []string{models.StatusProcessing, models.StatusPlaced, models.StatusReady}
	return s.store.ExpireBefore(ctx, cutoff, targets, s.now())
}

// millisString encodes a timestamp the way the order documents store expiry
// dates: Unix milliseconds as a decimal string.
func millisString(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
