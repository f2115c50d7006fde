package bot

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
)

func TestBasketViewText(t *testing.T) {
	items := []models.BasketItem{
		{
			ProductID: 1,
			Quantity:  2,
			Product:   &models.Product{ID: 1, Name: "Detox kokteyli", Price: decimal.NewFromInt(25000)},
		},
		{
			ProductID: 2,
			Quantity:  1,
			Product:   &models.Product{ID: 2, Name: "Nonushta to'plami", Price: decimal.NewFromInt(40000)},
		},
	}
	total := decimal.NewFromInt(90000)

	got := basketViewText(items, total)
	assert.Contains(t, got, "Detox kokteyli")
	assert.Contains(t, got, "25.000.0 so'm x 2 = 50.000.0 so'm")
	assert.Contains(t, got, "Jami: 90.000.0 so'm")
}

func TestBasketLinesSkipsOrphanedRows(t *testing.T) {
	items := []models.BasketItem{
		{ProductID: 7, Quantity: 3, Product: nil},
	}
	assert.Empty(t, basketLines(items))
}

func TestGroupOrderTextDelivery(t *testing.T) {
	phone := "+998 90 123 4567"
	fullName := "Aziz Karimov"
	address := "Toshkent sh., Yunusobod tumani"
	order := &models.Order{
		ID:              12,
		Status:          enums.OrderStatusWaiting,
		DeliveryType:    enums.DeliveryTypeDelivery,
		DeliveryAddress: &address,
		TotalPrice:      decimal.NewFromInt(150000),
		Items: []models.OrderItem{
			{ProductName: "FruitMix", ProductPrice: decimal.NewFromInt(50000), Quantity: 3},
		},
	}
	user := &models.User{TgID: 555, FullName: &fullName, PhoneNumber: &phone}

	got := groupOrderText(order, user)
	assert.Contains(t, got, "Yangi Buyurtma #12")
	assert.Contains(t, got, "Aziz Karimov")
	assert.Contains(t, got, "+998 90 123 4567")
	assert.Contains(t, got, address)
	assert.Contains(t, got, "50.000.0 so'm x 3 = 150.000.0 so'm")
	assert.Contains(t, got, "Jami: 150.000.0 so'm")
}

func TestGroupOrderTextTerminal(t *testing.T) {
	branch := &models.Branch{Name: "Chilonzor", Location: "Chilonzor 9-kvartal"}
	order := &models.Order{
		ID:           3,
		Status:       enums.OrderStatusDelivered,
		DeliveryType: enums.DeliveryTypePickup,
		Branch:       branch,
		TotalPrice:   decimal.NewFromInt(30000),
	}
	user := &models.User{TgID: 9}

	got := groupOrderText(order, user)
	assert.Contains(t, got, "Buyurtma #3")
	assert.NotContains(t, got, "Yangi Buyurtma")
	assert.Contains(t, got, "✅ YETKAZILDI")
	assert.Contains(t, got, "Chilonzor")
	assert.Contains(t, got, "Berilmagan")
}

func TestCustomerStatusText(t *testing.T) {
	delivered := customerStatusText(5, enums.OrderStatusDelivered)
	assert.Contains(t, delivered, "✅")
	assert.Contains(t, delivered, "Buyurtma #5")
	assert.Contains(t, delivered, "YETKAZILDI")

	cancelled := customerStatusText(5, enums.OrderStatusCancelled)
	assert.Contains(t, cancelled, "❌")
	assert.Contains(t, cancelled, "BEKOR QILINDI")
}

func TestCategoryHeader(t *testing.T) {
	withProducts := categoryHeader(enums.ProductCategoryWeightLoss, true)
	assert.Contains(t, withProducts, "🔻")
	assert.Contains(t, withProducts, "Vazn yo'qotish mahsulotlari")
	assert.Contains(t, withProducts, "mahsulotni tanlang")

	empty := categoryHeader(enums.ProductCategoryDetox, false)
	assert.Contains(t, empty, "mahsulotlar mavjud emas")
}
