package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
)

// Window is a reporting period anchored at its start instant.
type Window string

const (
	WindowDaily   Window = "daily"
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
)

// OrderAggregate is the count and summed value of orders in a window.
type OrderAggregate struct {
	Count int64
	Total decimal.Decimal
}

// UserCounts reports sign-up totals around a window boundary.
type UserCounts struct {
	Total        int64
	InWindow     int64
	BeforeWindow int64
}

// Service computes read-only aggregates. Nothing is cached: every call
// recomputes from the live tables.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService constructs the statistics service.
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &Service{db: db, now: time.Now}, nil
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// windowStart maps a reporting window to its start instant. Daily and weekly
// are trailing periods; monthly is calendar month-to-date for orders.
func (s *Service) windowStart(window Window) time.Time {
	now := s.now()
	switch window {
	case WindowDaily:
		return now.Add(-24 * time.Hour)
	case WindowWeekly:
		return now.AddDate(0, 0, -7)
	case WindowMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return now.Add(-24 * time.Hour)
	}
}

// userWindowStart differs from windowStart for monthly: user counts use a
// trailing 30-day period.
func (s *Service) userWindowStart(window Window) time.Time {
	if window == WindowMonthly {
		return s.now().AddDate(0, 0, -30)
	}
	return s.windowStart(window)
}

// TotalUsers counts every known user.
func (s *Service) TotalUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// Users reports sign-up counts for the window.
func (s *Service) Users(ctx context.Context, window Window) (UserCounts, error) {
	start := s.userWindowStart(window)

	var counts UserCounts
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&counts.Total).Error; err != nil {
		return UserCounts{}, err
	}
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("created_at >= ?", start).
		Count(&counts.InWindow).Error
	if err != nil {
		return UserCounts{}, err
	}
	counts.BeforeWindow = counts.Total - counts.InWindow
	return counts, nil
}

// Revenue aggregates delivered orders for the window.
func (s *Service) Revenue(ctx context.Context, window Window) (OrderAggregate, error) {
	return s.aggregateOrders(ctx, enums.OrderStatusDelivered, s.windowStart(window))
}

// Cancelled aggregates cancelled orders for the window.
func (s *Service) Cancelled(ctx context.Context, window Window) (OrderAggregate, error) {
	return s.aggregateOrders(ctx, enums.OrderStatusCancelled, s.windowStart(window))
}

func (s *Service) aggregateOrders(ctx context.Context, status enums.OrderStatus, since time.Time) (OrderAggregate, error) {
	var row struct {
		Count int64
		Total decimal.NullDecimal
	}
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COUNT(*) AS count, SUM(total_price) AS total").
		Where("status = ? AND created_at >= ?", status, since).
		Scan(&row).Error
	if err != nil {
		return OrderAggregate{}, err
	}

	agg := OrderAggregate{Count: row.Count, Total: decimal.Zero}
	if row.Total.Valid {
		agg.Total = row.Total.Decimal
	}
	return agg, nil
}
