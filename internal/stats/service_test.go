package stats

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
)

var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.Order{}))

	svc, err := NewService(conn)
	require.NoError(t, err)
	return svc.WithClock(func() time.Time { return testNow }), conn
}

func mustCreateUserAt(t *testing.T, conn *gorm.DB, tgID int64, at time.Time) {
	t.Helper()
	user := &models.User{TgID: tgID}
	require.NoError(t, conn.Create(user).Error)
	require.NoError(t, conn.Model(user).UpdateColumn("created_at", at).Error)
}

func mustCreateOrderAt(t *testing.T, conn *gorm.DB, status enums.OrderStatus, total int64, at time.Time) {
	t.Helper()
	order := &models.Order{
		UserID:       1,
		TotalPrice:   decimal.NewFromInt(total),
		Status:       status,
		DeliveryType: enums.DeliveryTypeDelivery,
	}
	require.NoError(t, conn.Create(order).Error)
	require.NoError(t, conn.Model(order).UpdateColumn("created_at", at).Error)
}

func TestTotalUsers(t *testing.T) {
	svc, conn := newTestService(t)
	mustCreateUserAt(t, conn, 1, testNow.AddDate(0, 0, -40))
	mustCreateUserAt(t, conn, 2, testNow.AddDate(0, 0, -2))

	total, err := svc.TotalUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestUsersWeeklySplitsAroundWindow(t *testing.T) {
	svc, conn := newTestService(t)
	mustCreateUserAt(t, conn, 1, testNow.AddDate(0, 0, -40))
	mustCreateUserAt(t, conn, 2, testNow.AddDate(0, 0, -10))
	mustCreateUserAt(t, conn, 3, testNow.AddDate(0, 0, -3))
	mustCreateUserAt(t, conn, 4, testNow.Add(-time.Hour))

	counts, err := svc.Users(context.Background(), WindowWeekly)
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Total)
	assert.Equal(t, int64(2), counts.InWindow)
	assert.Equal(t, int64(2), counts.BeforeWindow)
}

func TestUsersMonthlyUsesTrailingThirtyDays(t *testing.T) {
	svc, conn := newTestService(t)
	mustCreateUserAt(t, conn, 1, testNow.AddDate(0, 0, -31))
	mustCreateUserAt(t, conn, 2, testNow.AddDate(0, 0, -29))

	counts, err := svc.Users(context.Background(), WindowMonthly)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.InWindow)
}

func TestRevenueDailyCountsDeliveredOnly(t *testing.T) {
	svc, conn := newTestService(t)
	mustCreateOrderAt(t, conn, enums.OrderStatusDelivered, 50000, testNow.Add(-2*time.Hour))
	mustCreateOrderAt(t, conn, enums.OrderStatusDelivered, 30000, testNow.Add(-30*time.Hour))
	mustCreateOrderAt(t, conn, enums.OrderStatusCancelled, 99999, testNow.Add(-time.Hour))
	mustCreateOrderAt(t, conn, enums.OrderStatusWaiting, 11111, testNow.Add(-time.Hour))

	agg, err := svc.Revenue(context.Background(), WindowDaily)
	require.NoError(t, err)
	assert.Equal(t, int64(1), agg.Count)
	assert.True(t, agg.Total.Equal(decimal.NewFromInt(50000)), agg.Total.String())
}

func TestRevenueMonthlyIsCalendarMonthToDate(t *testing.T) {
	svc, conn := newTestService(t)
	// testNow is March 15; February orders must not count.
	mustCreateOrderAt(t, conn, enums.OrderStatusDelivered, 40000, time.Date(2025, time.February, 27, 10, 0, 0, 0, time.UTC))
	mustCreateOrderAt(t, conn, enums.OrderStatusDelivered, 60000, time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC))

	agg, err := svc.Revenue(context.Background(), WindowMonthly)
	require.NoError(t, err)
	assert.Equal(t, int64(1), agg.Count)
	assert.True(t, agg.Total.Equal(decimal.NewFromInt(60000)), agg.Total.String())
}

func TestCancelledAggregatesValueAndCount(t *testing.T) {
	svc, conn := newTestService(t)
	mustCreateOrderAt(t, conn, enums.OrderStatusCancelled, 20000, testNow.AddDate(0, 0, -2))
	mustCreateOrderAt(t, conn, enums.OrderStatusCancelled, 25000, testNow.AddDate(0, 0, -3))
	mustCreateOrderAt(t, conn, enums.OrderStatusDelivered, 90000, testNow.AddDate(0, 0, -1))

	agg, err := svc.Cancelled(context.Background(), WindowWeekly)
	require.NoError(t, err)
	assert.Equal(t, int64(2), agg.Count)
	assert.True(t, agg.Total.Equal(decimal.NewFromInt(45000)), agg.Total.String())
}

func TestAggregateEmptyWindowIsZero(t *testing.T) {
	svc, _ := newTestService(t)

	agg, err := svc.Revenue(context.Background(), WindowWeekly)
	require.NoError(t, err)
	assert.Zero(t, agg.Count)
	assert.True(t, agg.Total.IsZero())
}
