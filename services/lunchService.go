package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Abhin-Krishna-MP/CakeFarm/models"
)

// LunchService owns the lunch admission gate and the settings endpoints
// behind it. The deadline is today's wall-clock time rebuilt on every call,
// so a settings change mid-day immediately shifts the cutoff.
type LunchService struct {
	store SettingsStore
	now   func() time.Time
}

func NewLunchService(store SettingsStore) *LunchService {
	return &LunchService{store: store, now: time.Now}
}

// WithClock overrides the service clock.
func (s *LunchService) WithClock(now func() time.Time) *LunchService {
	s.now = now
	return s
}

func (s *LunchService) GetSettings(ctx context.Context) (*models.LunchSettings, error) {
	return s.store.ReadLunchSettings(ctx)
}

func (s *LunchService) UpdateSettings(ctx context.Context, deadlineTime string, isEnabled bool) (*models.LunchSettings, error) {
	if _, err := time.Parse("15:04", deadlineTime); err != nil {
		return nil, fmt.Errorf("%w: orderDeadlineTime must be HH:MM", ErrInvalidRequest)
	}
	return s.store.WriteLunchSettings(ctx, deadlineTime, isEnabled)
}

// IsOrderingOpen reports whether lunch orders are still admitted: false when
// the master switch is off, otherwise true while the local clock is before
// today's deadline.
func (s *LunchService) IsOrderingOpen(ctx context.Context) (bool, error) {
	settings, err := s.store.ReadLunchSettings(ctx)
	if err != nil {
		return false, err
	}

	if !settings.IsEnabled {
		return false, nil
	}

	hm, err := time.Parse("15:04", settings.OrderDeadlineTime)
	if err != nil {
		// A malformed stored deadline closes the gate rather than erroring.
		return false, nil
	}

	now := s.now()
	deadline := time.Date(now.Year(), now.Month(), now.Day(), hm.Hour(), hm.Minute(), 0, 0, now.Location())

	return now.Before(deadline), nil
}
