package basket

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

	"github.com/massfitdev/massfit-bot/internal/catalog"
	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

type fixture struct {
	svc  Service
	db   *gorm.DB
	user *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.Product{}, &models.BasketItem{}))

	svc, err := NewService(NewRepository(conn), catalog.NewProductRepository(conn))
	require.NoError(t, err)

	user := &models.User{TgID: 424242}
	require.NoError(t, conn.Create(user).Error)

	return &fixture{svc: svc, db: conn, user: user}
}

func (f *fixture) mustCreateProduct(t *testing.T, name string, price int64) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: enums.ProductCategoryWeightLoss,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func TestSaveCreatesAndReplacesQuantity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	product := f.mustCreateProduct(t, "Detox Tea", 30000)

	require.NoError(t, f.svc.Save(ctx, f.user.ID, product.ID, 2))
	require.NoError(t, f.svc.Save(ctx, f.user.ID, product.ID, 5))

	items, err := f.svc.Items(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Detox Tea", items[0].Product.Name)
}

func TestSaveUnknownProductFails(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Save(context.Background(), f.user.ID, 9999, 1)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestSaveRejectsZeroQuantity(t *testing.T) {
	f := newFixture(t)
	product := f.mustCreateProduct(t, "Fruit Mix", 20000)

	err := f.svc.Save(context.Background(), f.user.ID, product.ID, 0)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestSetQuantityBelowOneRemovesLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	product := f.mustCreateProduct(t, "Tushlik Set", 45000)

	require.NoError(t, f.svc.Save(ctx, f.user.ID, product.ID, 1))
	require.NoError(t, f.svc.SetQuantity(ctx, f.user.ID, product.ID, 0))

	items, err := f.svc.Items(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSetQuantityMissingLineIsNotFound(t *testing.T) {
	f := newFixture(t)
	product := f.mustCreateProduct(t, "Gainer", 90000)

	err := f.svc.SetQuantity(context.Background(), f.user.ID, product.ID, 3)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestClearEmptyBasketIsNoop(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Clear(context.Background(), f.user.ID))
}

func TestClearRemovesAllLines(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p1 := f.mustCreateProduct(t, "Set A", 10000)
	p2 := f.mustCreateProduct(t, "Set B", 15000)

	require.NoError(t, f.svc.Save(ctx, f.user.ID, p1.ID, 1))
	require.NoError(t, f.svc.Save(ctx, f.user.ID, p2.ID, 2))
	require.NoError(t, f.svc.Clear(ctx, f.user.ID))

	items, err := f.svc.Items(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTotalSumsPriceTimesQuantity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p1 := f.mustCreateProduct(t, "Set A", 10000)
	p2 := f.mustCreateProduct(t, "Set B", 15500)

	require.NoError(t, f.svc.Save(ctx, f.user.ID, p1.ID, 2))
	require.NoError(t, f.svc.Save(ctx, f.user.ID, p2.ID, 3))

	items, err := f.svc.Items(ctx, f.user.ID)
	require.NoError(t, err)

	total := Total(items)
	assert.True(t, total.Equal(decimal.NewFromInt(2*10000+3*15500)), total.String())
}
