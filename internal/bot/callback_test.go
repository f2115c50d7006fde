package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massfitdev/massfit-bot/pkg/enums"
)

func TestParseCallbackStatic(t *testing.T) {
	tests := map[string]CallbackKind{
		"admin_panel":                CbAdminPanel,
		"admin_statistics":           CbAdminStatistics,
		"monthly_cancelled_stats":    CbMonthlyCancelledStats,
		"broadcast_confirm":          CbBroadcastConfirm,
		"qty_display":                CbQtyDisplay,
		"confirm_order_yes_delivery": CbConfirmOrderYesDelivery,
		"check_subscription":         CbCheckSubscription,
	}
	for data, kind := range tests {
		cb, err := ParseCallback(data)
		require.NoError(t, err, data)
		assert.Equal(t, kind, cb.Kind, data)
	}
}

func TestParseCallbackWithID(t *testing.T) {
	cb, err := ParseCallback("product_confirm_delete_42")
	require.NoError(t, err)
	assert.Equal(t, CbProductConfirmDelete, cb.Kind)
	assert.EqualValues(t, 42, cb.ID)

	cb, err = ParseCallback("product_delete_7")
	require.NoError(t, err)
	assert.Equal(t, CbProductDelete, cb.Kind)
	assert.EqualValues(t, 7, cb.ID)

	cb, err = ParseCallback("edit_branch_location_3")
	require.NoError(t, err)
	assert.Equal(t, CbEditBranchLocation, cb.Kind)
	assert.EqualValues(t, 3, cb.ID)
}

func TestParseCallbackWithQuantity(t *testing.T) {
	cb, err := ParseCallback("save_basket_15_4")
	require.NoError(t, err)
	assert.Equal(t, CbSaveBasket, cb.Kind)
	assert.EqualValues(t, 15, cb.ID)
	assert.Equal(t, 4, cb.Qty)

	cb, err = ParseCallback("basket_dec_8_1")
	require.NoError(t, err)
	assert.Equal(t, CbBasketDec, cb.Kind)
	assert.EqualValues(t, 8, cb.ID)
	assert.Equal(t, 1, cb.Qty)
}

func TestParseCallbackCategoryWithUnderscores(t *testing.T) {
	cb, err := ParseCallback("type_weight_loss")
	require.NoError(t, err)
	assert.Equal(t, CbTypePick, cb.Kind)
	assert.Equal(t, enums.ProductCategoryWeightLoss, cb.Category)

	cb, err = ParseCallback("edittype_kechki_ovqat_12")
	require.NoError(t, err)
	assert.Equal(t, CbEditTypePick, cb.Kind)
	assert.Equal(t, enums.ProductCategoryDinner, cb.Category)
	assert.EqualValues(t, 12, cb.ID)

	cb, err = ParseCallback("back_to_weight_gain")
	require.NoError(t, err)
	assert.Equal(t, CbBackToType, cb.Kind)
	assert.Equal(t, enums.ProductCategoryWeightGain, cb.Category)
}

func TestParseCallbackOrderStatus(t *testing.T) {
	cb, err := ParseCallback("order_status_99_delivered")
	require.NoError(t, err)
	assert.Equal(t, CbOrderStatus, cb.Kind)
	assert.EqualValues(t, 99, cb.ID)
	assert.Equal(t, enums.OrderStatusDelivered, cb.Status)

	_, err = ParseCallback("order_status_99_shipped")
	assert.Error(t, err)
}

func TestParseCallbackRejectsGarbage(t *testing.T) {
	for _, data := range []string{
		"",
		"product_view_abc",
		"qty_inc_5",
		"type_smoothies",
		"totally_unknown",
	} {
		_, err := ParseCallback(data)
		assert.Error(t, err, data)
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	callbacks := []Callback{
		{Kind: CbAdminPanel},
		{Kind: CbProductView, ID: 5},
		{Kind: CbBranchConfirmDelete, ID: 2},
		{Kind: CbQtyInc, ID: 3, Qty: 2},
		{Kind: CbBasketInc, ID: 10, Qty: 7},
		{Kind: CbTypePick, Category: enums.ProductCategoryDetox},
		{Kind: CbEditTypePick, ID: 4, Category: enums.ProductCategoryWeightLoss},
		{Kind: CbBackToType, Category: enums.ProductCategoryFruitMix},
		{Kind: CbCategory, Category: enums.ProductCategoryLunch},
		{Kind: CbOrderStatus, ID: 17, Status: enums.OrderStatusCancelled},
		{Kind: CbPickupBranch, ID: 1},
		{Kind: CbConfirmOrderNo},
	}
	for _, want := range callbacks {
		got, err := ParseCallback(want.Encode())
		require.NoError(t, err, want.Encode())
		assert.Equal(t, want, got, want.Encode())
	}
}
