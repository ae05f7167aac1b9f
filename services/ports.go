package services

import (
	"context"
	"time"

	"github.com/Abhin-Krishna-MP/CakeFarm/models"
)

// OrderStore is the persistence boundary for orders. Create must persist the
// order, its items, status and token as a single atomic unit and assign the
// next order number from an atomic counter.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, orderId string) (*models.Order, error)
	GetByToken(ctx context.Context, token string) (*models.Order, error)
	// UpdateStatusFrom sets the status only if the order is currently in
	// `from`, returning whether a document was modified.
	UpdateStatusFrom(ctx context.Context, orderId, from, to string, at time.Time) (bool, error)
	// MarkDelivered flips ticketStatus active -> delivered, returning whether
	// a document was modified. An unknown token or an already delivered
	// ticket both report false.
	MarkDelivered(ctx context.Context, token string, at time.Time) (bool, error)
	// ExpireBefore marks every order with expiryDate <= cutoff and a status
	// in `statuses` as expired, returning the number of orders touched.
	ExpireBefore(ctx context.Context, cutoff string, statuses []string, at time.Time) (int64, error)
	ListByUser(ctx context.Context, userId string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
}

// Catalog resolves product references. A missing product yields (nil, nil).
type Catalog interface {
	FindProductById(ctx context.Context, productId string) (*models.Product, error)
}

// UserDirectory resolves user references. A missing user yields (nil, nil).
type UserDirectory interface {
	FindUserById(ctx context.Context, userId string) (*models.User, error)
}

// SettingsStore reads and writes the singleton lunch settings record.
// ReadLunchSettings creates the record with defaults when absent.
type SettingsStore interface {
	ReadLunchSettings(ctx context.Context) (*models.LunchSettings, error)
	WriteLunchSettings(ctx context.Context, deadlineTime string, isEnabled bool) (*models.LunchSettings, error)
}

// Notifier fans lifecycle events out to connected observers. Publish is
// fire-and-forget: it never blocks a mutation and its failure is invisible
// to the caller.
type Notifier interface {
	Publish(event string, payload interface{})
}

// NopNotifier drops every event.
type NopNotifier struct{}

func (NopNotifier) Publish(event string, payload interface{}) {}
