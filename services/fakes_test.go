package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Abhin-Krishna-MP/CakeFarm/models"
)

// memOrderStore is an in-memory OrderStore used to exercise the engine
// without a running database.
type memOrderStore struct {
	mu     sync.Mutex
	orders map[string]*models.Order
	seq    int64
	failOn error
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: make(map[string]*models.Order)}
}

func (s *memOrderStore) Create(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != nil {
		return s.failOn
	}
	s.seq++
	order.OrderNumber = s.seq
	stored := *order
	s.orders[order.OrderId] = &stored
	return nil
}

func (s *memOrderStore) GetByID(ctx context.Context, orderId string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderId]
	if !ok {
		return nil, nil
	}
	clone := *order
	return &clone, nil
}

func (s *memOrderStore) GetByToken(ctx context.Context, token string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.OrderToken == token {
			clone := *order
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memOrderStore) UpdateStatusFrom(ctx context.Context, orderId, from, to string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderId]
	if !ok || order.OrderStatus.Status != from {
		return false, nil
	}
	order.OrderStatus.Status = to
	order.OrderStatus.UpdatedAt = at
	order.UpdatedAt = at
	return true, nil
}

func (s *memOrderStore) MarkDelivered(ctx context.Context, token string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.OrderToken == token && order.TicketStatus == models.TicketActive {
			order.TicketStatus = models.TicketDelivered
			order.UpdatedAt = at
			return true, nil
		}
	}
	return false, nil
}

func (s *memOrderStore) ExpireBefore(ctx context.Context, cutoff string, statuses []string, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		target[status] = true
	}
	var count int64
	for _, order := range s.orders {
		if order.ExpiryDate <= cutoff && target[order.OrderStatus.Status] {
			order.OrderStatus.Status = models.StatusExpired
			order.OrderStatus.UpdatedAt = at
			count++
		}
	}
	return count, nil
}

func (s *memOrderStore) ListByUser(ctx context.Context, userId string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []models.Order
	for _, order := range s.orders {
		if order.UserId == userId {
			orders = append(orders, *order)
		}
	}
	sortByNumberDesc(orders)
	return orders, nil
}

func (s *memOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []models.Order
	for _, order := range s.orders {
		orders = append(orders, *order)
	}
	sortByNumberDesc(orders)
	return orders, nil
}

func sortByNumberDesc(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderNumber > orders[j].OrderNumber
	})
}

type memCatalog struct {
	products map[string]*models.Product
}

func newMemCatalog(products ...*models.Product) *memCatalog {
	c := &memCatalog{products: make(map[string]*models.Product)}
	for _, product := range products {
		c.products[product.ProductId] = product
	}
	return c
}

func (c *memCatalog) FindProductById(ctx context.Context, productId string) (*models.Product, error) {
	product, ok := c.products[productId]
	if !ok {
		return nil, nil
	}
	clone := *product
	return &clone, nil
}

type memUserDirectory struct {
	users map[string]*models.User
}

func newMemUserDirectory(users ...*models.User) *memUserDirectory {
	d := &memUserDirectory{users: make(map[string]*models.User)}
	for _, user := range users {
		d.users[user.UserId] = user
	}
	return d
}

func (d *memUserDirectory) FindUserById(ctx context.Context, userId string) (*models.User, error) {
	user, ok := d.users[userId]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

// memSettingsStore mirrors the lazy-default behavior of the Mongo store.
type memSettingsStore struct {
	settings *models.LunchSettings
}

func (s *memSettingsStore) ReadLunchSettings(ctx context.Context) (*models.LunchSettings, error) {
	if s.settings == nil {
		s.settings = &models.LunchSettings{
			OrderDeadlineTime: models.DefaultOrderDeadlineTime,
			IsEnabled:         true,
		}
	}
	clone := *s.settings
	return &clone, nil
}

func (s *memSettingsStore) WriteLunchSettings(ctx context.Context, deadlineTime string, isEnabled bool) (*models.LunchSettings, error) {
	s.settings = &models.LunchSettings{
		OrderDeadlineTime: deadlineTime,
		IsEnabled:         isEnabled,
	}
	clone := *s.settings
	return &clone, nil
}

// recordingNotifier captures published events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	name    string
	payload map[string]interface{}
}

func (n *recordingNotifier) Publish(event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	data, _ := payload.(map[string]interface{})
	n.events = append(n.events, publishedEvent{name: event, payload: data})
}

func (n *recordingNotifier) byName(name string) []publishedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var matched []publishedEvent
	for _, event := range n.events {
		if event.name == name {
			matched = append(matched, event)
		}
	}
	return matched
}
