package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
)

// Every inline button's callback data must survive the parser, otherwise a
// tap produces a silent validation error instead of an action.
func TestKeyboardCallbacksParse(t *testing.T) {
	product := &models.Product{ID: 7, Name: "Detox", Price: decimal.NewFromInt(25000), Category: enums.ProductCategoryDetox}
	items := []models.BasketItem{
		{ProductID: 7, Quantity: 2, Product: product},
	}

	keyboards := map[string]tgbotapi.InlineKeyboardMarkup{
		"admin panel":            adminPanelKeyboard(),
		"cancel":                 cancelKeyboard(),
		"product list":           productListKeyboard([]models.Product{*product}, CbProductView),
		"product detail":         productDetailKeyboard(7),
		"confirm delete product": confirmDeleteProductKeyboard(7),
		"edit product fields":    editProductFieldsKeyboard(7),
		"category picker create": categoryPickerKeyboard(0),
		"category picker edit":   categoryPickerKeyboard(7),
		"branches panel":         branchesPanelKeyboard(),
		"branch list":            branchListKeyboard([]models.Branch{{ID: 2, Name: "Chilonzor"}}, CbBranchView),
		"branch detail":          branchDetailKeyboard(2),
		"confirm delete branch":  confirmDeleteBranchKeyboard(2),
		"edit branch fields":     editBranchFieldsKeyboard(2),
		"stats menu":             statsMenuKeyboard(),
		"user stats":             userStatsKeyboard(),
		"revenue stats":          revenueStatsKeyboard(),
		"cancelled stats":        cancelledStatsKeyboard(),
		"broadcast confirm":      broadcastConfirmKeyboard(),
		"user product list":      userProductListKeyboard([]models.Product{*product}),
		"other categories":       otherCategoriesKeyboard(),
		"user product detail":    userProductDetailKeyboard(product),
		"quantity":               quantityKeyboard(product, 3),
		"basket":                 basketKeyboard(items),
		"delivery method":        deliveryMethodKeyboard(),
		"delivery address":       deliveryAddressKeyboard(),
		"confirm order pickup":   confirmOrderKeyboard(CbConfirmOrderYesPickup),
		"confirm order delivery": confirmOrderKeyboard(CbConfirmOrderYesDelivery),
		"pickup branch":          pickupBranchKeyboard(2),
		"order status":           orderStatusKeyboard(12),
	}

	for name, kb := range keyboards {
		for _, row := range kb.InlineKeyboard {
			for _, button := range row {
				if button.CallbackData == nil {
					continue
				}
				_, err := ParseCallback(*button.CallbackData)
				require.NoError(t, err, "%s keyboard button %q", name, *button.CallbackData)
			}
		}
	}
}

func TestQuantityKeyboardCarriesState(t *testing.T) {
	product := &models.Product{ID: 5, Category: enums.ProductCategoryFruitMix}
	kb := quantityKeyboard(product, 4)

	inc, err := ParseCallback(*kb.InlineKeyboard[0][2].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, CbQtyInc, inc.Kind)
	assert.Equal(t, int64(5), inc.ID)
	assert.Equal(t, 4, inc.Qty)

	save, err := ParseCallback(*kb.InlineKeyboard[1][0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, CbSaveBasket, save.Kind)
	assert.Equal(t, int64(5), save.ID)
	assert.Equal(t, 4, save.Qty)
}

func TestOrderStatusKeyboardTargetsOrder(t *testing.T) {
	kb := orderStatusKeyboard(33)

	cancel, err := ParseCallback(*kb.InlineKeyboard[0][0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, CbOrderStatus, cancel.Kind)
	assert.Equal(t, int64(33), cancel.ID)
	assert.Equal(t, enums.OrderStatusCancelled, cancel.Status)

	deliver, err := ParseCallback(*kb.InlineKeyboard[0][1].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, deliver.Status)
}
