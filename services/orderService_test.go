package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/Abhin-Krishna-MP/CakeFarm/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// testEnv wires an order service against in-memory collaborators.
type testEnv struct {
	store    *memOrderStore
	catalog  *memCatalog
	users    *memUserDirectory
	settings *memSettingsStore
	notifier *recordingNotifier
	lunch    *LunchService
	orders   *OrderService
}

func newTestEnv(now time.Time, products ...*models.Product) *testEnv {
	env := &testEnv{
		store:    newMemOrderStore(),
		catalog:  newMemCatalog(products...),
		users:    newMemUserDirectory(),
		settings: &memSettingsStore{},
		notifier: &recordingNotifier{},
	}
	env.lunch = NewLunchService(env.settings).WithClock(fixedClock(now))
	env.orders = NewOrderService(env.store, env.catalog, env.users, env.lunch, env.notifier, 1).WithClock(fixedClock(now))
	return env
}

func TestCreateOrder(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	env := newTestEnv(now,
		&models.Product{ProductId: "p1", ProductName: "Veg Thali", Price: 50},
	)

	orderId, err := env.orders.CreateOrder(context.Background(), "u1", models.Cart{
		PickUpTime: "12:30",
		CartItems:  []models.CartItem{{ProductId: "p1", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	order, err := env.store.GetByID(context.Background(), orderId)
	if err != nil || order == nil {
		t.Fatalf("order not persisted: %v", err)
	}

	if order.Total != 100 {
		t.Errorf("total = %d, want 100", order.Total)
	}
	if order.OrderStatus.Status != models.StatusPlaced {
		t.Errorf("status = %q, want %q", order.OrderStatus.Status, models.StatusPlaced)
	}
	if order.TicketStatus != models.TicketActive {
		t.Errorf("ticketStatus = %q, want %q", order.TicketStatus, models.TicketActive)
	}
	if len(order.OrderToken) != 64 {
		t.Errorf("orderToken length = %d, want 64", len(order.OrderToken))
	}
	if order.OrderNumber != 1 {
		t.Errorf("orderNumber = %d, want 1", order.OrderNumber)
	}

	wantExpiry := strconv.FormatInt(now.AddDate(0, 0, 1).UnixMilli(), 10)
	if order.ExpiryDate != wantExpiry {
		t.Errorf("expiryDate = %q, want %q", order.ExpiryDate, wantExpiry)
	}

	events := env.notifier.byName(EventNewOrder)
	if len(events) != 1 {
		t.Fatalf("newOrder events = %d, want 1", len(events))
	}
	if events[0].payload["orderId"] != orderId || events[0].payload["userId"] != "u1" {
		t.Errorf("newOrder payload = %v", events[0].payload)
	}
}

func TestCreateOrderSubtotalTruncatesPrice(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	env := newTestEnv(now,
		&models.Product{ProductId: "p1", ProductName: "Juice", Price: 49.99},
	)

	orderId, err := env.orders.CreateOrder(context.Background(), "u1", models.Cart{
		PickUpTime: "12:30",
		CartItems:  []models.CartItem{{ProductId: "p1", Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	order, _ := env.store.GetByID(context.Background(), orderId)
	if order.OrderItems[0].Subtotal != 147 { // floor(49.99) * 3
		t.Errorf("subtotal = %d, want 147", order.OrderItems[0].Subtotal)
	}
}

func TestCreateOrderMissingProductLeavesNoOrder(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	env := newTestEnv(now,
		&models.Product{ProductId: "p1", ProductName: "Tea", Price: 10},
		&models.Product{ProductId: "p3", ProductName: "Coffee", Price: 15},
	)

	_, err := env.orders.CreateOrder(context.Background(), "u1", models.Cart{
		PickUpTime: "12:30",
		CartItems: []models.CartItem{
			{ProductId: "p1", Quantity: 1},
			{ProductId: "p2", Quantity: 1}, // does not exist
			{ProductId: "p3", Quantity: 1},
		},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	orders, _ := env.store.ListByUser(context.Background(), "u1")
	if len(orders) != 0 {
		t.Errorf("orders persisted = %d, want 0", len(orders))
	}
	if len(env.notifier.byName(EventNewOrder)) != 0 {
		t.Error("newOrder event published for a failed creation")
	}
}

func TestCreateOrderLunchAdmission(t *testing.T) {
	lunchProduct := &models.Product{ProductId: "l1", ProductName: "Lunch Special", Price: 60, IsLunchItem: true}
	cart := models.Cart{
		PickUpTime: "12:30",
		CartItems:  []models.CartItem{{ProductId: "l1", Quantity: 1}},
	}

	t.Run("open before deadline", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 9, 59, 59, 0, time.Local)
		env := newTestEnv(now, lunchProduct)

		if _, err := env.orders.CreateOrder(context.Background(), "u1", cart); err != nil {
			t.Fatalf("CreateOrder before deadline: %v", err)
		}
	})

	t.Run("closed after deadline", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 10, 0, 1, 0, time.Local)
		env := newTestEnv(now, lunchProduct)

		_, err := env.orders.CreateOrder(context.Background(), "u1", cart)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("err = %v, want ErrInvalidRequest", err)
		}

		orders, _ := env.store.ListByUser(context.Background(), "u1")
		if len(orders) != 0 {
			t.Errorf("orders persisted = %d, want 0", len(orders))
		}
	})

	t.Run("non-lunch cart ignores deadline", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.Local)
		env := newTestEnv(now, &models.Product{ProductId: "p1", ProductName: "Snack", Price: 20})

		_, err := env.orders.CreateOrder(context.Background(), "u1", models.Cart{
			PickUpTime: "16:00",
			CartItems:  []models.CartItem{{ProductId: "p1", Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
	})
}

func TestCreateOrderStoreFailurePublishesNothing(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	env := newTestEnv(now, &models.Product{ProductId: "p1", ProductName: "Tea", Price: 10})
	env.store.failOn = errors.New("connection reset")

	_, err := env.orders.CreateOrder(context.Background(), "u1", models.Cart{
		PickUpTime: "12:30",
		CartItems:  []models.CartItem{{ProductId: "p1", Quantity: 1}},
	})
	if err == nil {
		t.Fatal("expected store failure to surface")
	}
	if len(env.notifier.events) != 0 {
		t.Error("event published for a failed persist")
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	env := newTestEnv(now, &models.Product{ProductId: "p1", ProductName: "Tea", Price: 10})

	orderId, err := env.orders.CreateOrder(context.Background(), "u1", models.Cart{
		PickUpTime: "12:30",
		CartItems:  []models.CartItem{{ProductId: "p1", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := env.orders.UpdateOrderStatus(context.Background(), orderId, models.StatusReady); err != nil {
		t.Fatalf("placed -> ready: %v", err)
	}
	if err := env.orders.UpdateOrderStatus(context.Background(), orderId, models.StatusCompleted); err != nil {
		t.Fatalf("ready -> completed: %v", err)
	}

	// Terminal states reject further transitions.
	err = env.orders.UpdateOrderStatus(context.Background(), orderId, models.StatusPlaced)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("completed -> placed err = %v, want ErrInvalidRequest", err)
	}

	err = env.orders.UpdateOrderStatus(context.Background(), orderId, "shipped")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("unknown status err = %v, want ErrInvalidRequest", err)
	}

	err = env.orders.UpdateOrderStatus(context.Background(), "no-such-order", models.StatusReady)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown order err = %v, want ErrNotFound", err)
	}

	events := env.notifier.byName(EventOrderStatusUpdated)
	if len(events) != 2 {
		t.Fatalf("orderStatusUpdated events = %d, want 2", len(events))
	}
	if events[1].payload["status"] != models.StatusCompleted {
		t.Errorf("last event status = %v", events[1].payload["status"])
	}
}

func TestMarkTicketDeliveredIsMonotonic(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	env := newTestEnv(now, &models.Product{ProductId: "p1", ProductName: "Tea", Price: 10})

	orderId, err := env.orders.CreateOrder(context.Background(), "u1", models.Cart{
		PickUpTime: "12:30",
		CartItems:  []models.CartItem{{ProductId: "p1", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	order, _ := env.store.GetByID(context.Background(), orderId)

	if err := env.orders.MarkTicketDelivered(context.Background(), order.OrderToken); err != nil {
		t.Fatalf("first delivery mark: %v", err)
	}

	// Second mark reports not-found; the ticket never regresses to active.
	err = env.orders.MarkTicketDelivered(context.Background(), order.OrderToken)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second delivery err = %v, want ErrNotFound", err)
	}

	updated, _ := env.store.GetByID(context.Background(), orderId)
	if updated.TicketStatus != models.TicketDelivered {
		t.Errorf("ticketStatus = %q, want %q", updated.TicketStatus, models.TicketDelivered)
	}

	err = env.orders.MarkTicketDelivered(context.Background(), "unknown-token")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown token err = %v, want ErrNotFound", err)
	}

	events := env.notifier.byName(EventOrderDelivered)
	if len(events) != 1 {
		t.Fatalf("orderDelivered events = %d, want 1", len(events))
	}
	if events[0].payload["orderToken"] != order.OrderToken {
		t.Errorf("orderDelivered payload = %v, want token", events[0].payload)
	}
}

func TestExpireStaleOrdersOnlyTouchesOpenStatuses(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	env := newTestEnv(base)

	expired := strconv.FormatInt(base.AddDate(0, 0, -2).UnixMilli(), 10)
	for i, status := range []string{models.StatusPlaced, models.StatusCompleted, models.StatusCancelled} {
		env.store.orders[strconv.Itoa(i)] = &models.Order{
			OrderId:     strconv.Itoa(i),
			UserId:      "u1",
			ExpiryDate:  expired,
			OrderStatus: models.OrderStatus{Status: status},
		}
	}

	count, err := env.orders.ExpireStaleOrders(context.Background())
	if err != nil {
		t.Fatalf("ExpireStaleOrders: %v", err)
	}
	if count != 1 {
		t.Errorf("expired count = %d, want 1", count)
	}

	want := []string{models.StatusExpired, models.StatusCompleted, models.StatusCancelled}
	for i, wantStatus := range want {
		order, _ := env.store.GetByID(context.Background(), strconv.Itoa(i))
		if order.OrderStatus.Status != wantStatus {
			t.Errorf("order %d status = %q, want %q", i, order.OrderStatus.Status, wantStatus)
		}
	}

	// Re-running with nothing newly stale is a no-op.
	count, err = env.orders.ExpireStaleOrders(context.Background())
	if err != nil || count != 0 {
		t.Errorf("second sweep = (%d, %v), want (0, nil)", count, err)
	}
}

func TestOrderLifecycleEndToEnd(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	env := newTestEnv(now, &models.Product{ProductId: "p1", ProductName: "Veg Thali", Price: 50})

	orderId, err := env.orders.CreateOrder(context.Background(), "u1", models.Cart{
		PickUpTime: "12:30",
		CartItems:  []models.CartItem{{ProductId: "p1", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	order, _ := env.store.GetByID(context.Background(), orderId)
	if err := env.orders.MarkTicketDelivered(context.Background(), order.OrderToken); err != nil {
		t.Fatalf("MarkTicketDelivered: %v", err)
	}

	view, err := env.orders.GetOrderByToken(context.Background(), order.OrderToken)
	if err != nil {
		t.Fatalf("GetOrderByToken: %v", err)
	}
	if view.TicketStatus != models.TicketDelivered {
		t.Errorf("projection ticketStatus = %q, want %q", view.TicketStatus, models.TicketDelivered)
	}
	if view.Total != 100 {
		t.Errorf("projection total = %d, want 100", view.Total)
	}
}
