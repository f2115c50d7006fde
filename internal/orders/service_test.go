package orders

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/massfitdev/massfit-bot/internal/basket"
	"github.com/massfitdev/massfit-bot/pkg/db"
	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

type fixture struct {
	svc     Service
	baskets *basket.Repository
	db      *gorm.DB
	user    *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Branch{},
		&models.BasketItem{}, &models.Order{}, &models.OrderItem{},
	))

	baskets := basket.NewRepository(conn)
	svc, err := NewService(NewRepository(conn), baskets, db.NewFromConn(conn))
	require.NoError(t, err)

	user := &models.User{TgID: 515151}
	require.NoError(t, conn.Create(user).Error)

	return &fixture{svc: svc, baskets: baskets, db: conn, user: user}
}

func (f *fixture) mustFillBasket(t *testing.T) (p1, p2 *models.Product) {
	t.Helper()
	p1 = &models.Product{Name: "Set A", Price: decimal.NewFromInt(10000), Category: enums.ProductCategoryWeightLoss}
	p2 = &models.Product{Name: "Set B", Price: decimal.NewFromInt(15500), Category: enums.ProductCategoryDetox}
	require.NoError(t, f.db.Create(p1).Error)
	require.NoError(t, f.db.Create(p2).Error)
	require.NoError(t, f.baskets.Upsert(context.Background(), f.user.ID, p1.ID, 2))
	require.NoError(t, f.baskets.Upsert(context.Background(), f.user.ID, p2.ID, 3))
	return p1, p2
}

func TestPlaceSnapshotsBasketAndClearsIt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p1, _ := f.mustFillBasket(t)

	addr := "Chilonzor 9-kvartal, 12-uy"
	order, err := f.svc.Place(ctx, PlaceOrderInput{
		UserID:       f.user.ID,
		DeliveryType: enums.DeliveryTypeDelivery,
		Address:      &addr,
	})
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	assert.Equal(t, enums.OrderStatusWaiting, order.Status)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(2*10000+3*15500)), order.TotalPrice.String())
	require.Len(t, order.Items, 2)
	assert.Equal(t, p1.ID, order.Items[0].ProductID)
	assert.Equal(t, "Set A", order.Items[0].ProductName)

	remaining, err := f.baskets.ItemsWithProducts(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestPlaceTotalIgnoresLaterPriceEdits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p1, _ := f.mustFillBasket(t)

	order, err := f.svc.Place(ctx, PlaceOrderInput{
		UserID:       f.user.ID,
		DeliveryType: enums.DeliveryTypeDelivery,
	})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(p1).UpdateColumn("price", decimal.NewFromInt(99999)).Error)

	reloaded, err := f.svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.TotalPrice.Equal(order.TotalPrice))
	assert.True(t, reloaded.Items[0].ProductPrice.Equal(decimal.NewFromInt(10000)))
}

func TestPlaceEmptyBasketFails(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Place(context.Background(), PlaceOrderInput{
		UserID:       f.user.ID,
		DeliveryType: enums.DeliveryTypeDelivery,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestPlacePickupRequiresBranch(t *testing.T) {
	f := newFixture(t)
	f.mustFillBasket(t)

	_, err := f.svc.Place(context.Background(), PlaceOrderInput{
		UserID:       f.user.ID,
		DeliveryType: enums.DeliveryTypePickup,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestPlacePickupKeepsBranchReference(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.mustFillBasket(t)

	branch := &models.Branch{Name: "Chilonzor", Location: "Chilonzor 9-kvartal"}
	require.NoError(t, f.db.Create(branch).Error)

	order, err := f.svc.Place(ctx, PlaceOrderInput{
		UserID:       f.user.ID,
		DeliveryType: enums.DeliveryTypePickup,
		BranchID:     &branch.ID,
	})
	require.NoError(t, err)

	reloaded, err := f.svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Branch)
	assert.Equal(t, "Chilonzor", reloaded.Branch.Name)
}

func TestUpdateStatusFirstWriteWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.mustFillBasket(t)

	order, err := f.svc.Place(ctx, PlaceOrderInput{
		UserID:       f.user.ID,
		DeliveryType: enums.DeliveryTypeDelivery,
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, order.ID, enums.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, updated.Status)

	again, err := f.svc.UpdateStatus(ctx, order.ID, enums.OrderStatusCancelled)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.CodeOf(err))
	require.NotNil(t, again)
	assert.Equal(t, enums.OrderStatusDelivered, again.Status)
}

func TestUpdateStatusRejectsNonTerminalTarget(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), 1, enums.OrderStatusWaiting)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestSetGroupMessageID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.mustFillBasket(t)

	order, err := f.svc.Place(ctx, PlaceOrderInput{
		UserID:       f.user.ID,
		DeliveryType: enums.DeliveryTypeDelivery,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.SetGroupMessageID(ctx, order.ID, 777))

	reloaded, err := f.svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.GroupMessageID)
	assert.Equal(t, 777, *reloaded.GroupMessageID)
}
