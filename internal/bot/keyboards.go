package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
	"github.com/massfitdev/massfit-bot/pkg/format"
)

func phoneKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(btnSendContact)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnTypePhone)),
	)
	kb.OneTimeKeyboard = true
	return kb
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnOtherProducts)),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnWeightLoss),
			tgbotapi.NewKeyboardButton(btnWeightGain),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnMyOrders)),
	)
}

func locationKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonLocation(btnSendLocation)),
	)
	kb.OneTimeKeyboard = true
	return kb
}

func btn(text string, cb Callback) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, cb.Encode())
}

func adminPanelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("📦 Barcha mahsulotlar", Callback{Kind: CbAdminViewProducts})),
		tgbotapi.NewInlineKeyboardRow(btn("➕ Yangi mahsulot qo'shish", Callback{Kind: CbAdminAddProduct})),
		tgbotapi.NewInlineKeyboardRow(btn("✏️ Mahsulotni tahrirlash", Callback{Kind: CbAdminEditProduct})),
		tgbotapi.NewInlineKeyboardRow(btn("🗑 Mahsulotni o'chirish", Callback{Kind: CbAdminDeleteProduct})),
		tgbotapi.NewInlineKeyboardRow(btn("🏢 Filiallarni boshqarish", Callback{Kind: CbAdminBranches})),
		tgbotapi.NewInlineKeyboardRow(btn("📊 Statistika", Callback{Kind: CbAdminStatistics})),
		tgbotapi.NewInlineKeyboardRow(btn("📢 Habar yuborish", Callback{Kind: CbAdminBroadcast})),
		tgbotapi.NewInlineKeyboardRow(btn("🔙 Asosiy menyuga qaytish", Callback{Kind: CbAdminBackMain})),
	)
}

func cancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("❌ Bekor qilish", Callback{Kind: CbAdminPanel})),
	)
}

func productListKeyboard(products []models.Product, kind CallbackKind) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range products {
		label := p.Name
		switch kind {
		case CbProductView:
			label = fmt.Sprintf("%s - %s so'm", p.Name, format.Price(p.Price))
		case CbProductDelete:
			label = "❌ " + p.Name
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn(label, Callback{Kind: kind, ID: p.ID})))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn("🔙 Admin panelga qaytish", Callback{Kind: CbAdminPanel})))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func productDetailKeyboard(productID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("✏️ Tahrirlash", Callback{Kind: CbProductEdit, ID: productID})),
		tgbotapi.NewInlineKeyboardRow(btn("🗑 O'chirish", Callback{Kind: CbProductDelete, ID: productID})),
		tgbotapi.NewInlineKeyboardRow(btn("🔙 Mahsulotlarga qaytish", Callback{Kind: CbAdminViewProducts})),
	)
}

func confirmDeleteProductKeyboard(productID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn("✅ Ha, o'chirish", Callback{Kind: CbProductConfirmDelete, ID: productID}),
			btn("❌ Bekor qilish", Callback{Kind: CbAdminViewProducts}),
		),
	)
}

func editProductFieldsKeyboard(productID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("📝 Nomini tahrirlash", Callback{Kind: CbEditName, ID: productID})),
		tgbotapi.NewInlineKeyboardRow(btn("💰 Narxini tahrirlash", Callback{Kind: CbEditPrice, ID: productID})),
		tgbotapi.NewInlineKeyboardRow(btn("🏷 Turini tahrirlash", Callback{Kind: CbEditType, ID: productID})),
		tgbotapi.NewInlineKeyboardRow(btn("📄 Tavsifni tahrirlash", Callback{Kind: CbEditDesc, ID: productID})),
		tgbotapi.NewInlineKeyboardRow(btn("🖼 Rasmni tahrirlash", Callback{Kind: CbEditImage, ID: productID})),
		tgbotapi.NewInlineKeyboardRow(btn("🔙 Ortga", Callback{Kind: CbAdminEditProduct})),
	)
}

// categoryPickerKeyboard covers both the create flow (productID == 0) and the
// per-product type edit (productID > 0); the two use different wire formats.
func categoryPickerKeyboard(productID int64) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, category := range enums.Categories() {
		cb := Callback{Kind: CbTypePick, Category: category}
		if productID > 0 {
			cb = Callback{Kind: CbEditTypePick, Category: category, ID: productID}
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn(CategoryLabel(category), cb)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn("❌ Bekor qilish", Callback{Kind: CbAdminPanel})))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func branchesPanelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("🏢 Barcha filiallar", Callback{Kind: CbAdminViewBranches})),
		tgbotapi.NewInlineKeyboardRow(btn("➕ Yangi filial qo'shish", Callback{Kind: CbAdminAddBranch})),
		tgbotapi.NewInlineKeyboardRow(btn("✏️ Filialni tahrirlash", Callback{Kind: CbAdminEditBranch})),
		tgbotapi.NewInlineKeyboardRow(btn("🗑 Filialni o'chirish", Callback{Kind: CbAdminDeleteBranch})),
		tgbotapi.NewInlineKeyboardRow(btn("🔙 Admin panelga qaytish", Callback{Kind: CbAdminPanel})),
	)
}

func branchListKeyboard(branches []models.Branch, kind CallbackKind) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, b := range branches {
		label := b.Name
		if kind == CbBranchDelete {
			label = "❌ " + b.Name
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn(label, Callback{Kind: kind, ID: b.ID})))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn("🔙 Filiallar paneliga qaytish", Callback{Kind: CbAdminBranches})))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func branchDetailKeyboard(branchID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("✏️ Tahrirlash", Callback{Kind: CbBranchEdit, ID: branchID})),
		tgbotapi.NewInlineKeyboardRow(btn("🗑 O'chirish", Callback{Kind: CbBranchDelete, ID: branchID})),
		tgbotapi.NewInlineKeyboardRow(btn("🔙 Filiallarga qaytish", Callback{Kind: CbAdminViewBranches})),
	)
}

func confirmDeleteBranchKeyboard(branchID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn("✅ Ha, o'chirish", Callback{Kind: CbBranchConfirmDelete, ID: branchID}),
			btn("❌ Bekor qilish", Callback{Kind: CbAdminViewBranches}),
		),
	)
}

func editBranchFieldsKeyboard(branchID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("📝 Nomini tahrirlash", Callback{Kind: CbEditBranchName, ID: branchID})),
		tgbotapi.NewInlineKeyboardRow(btn("📍 Joylashuvini tahrirlash", Callback{Kind: CbEditBranchLocation, ID: branchID})),
		tgbotapi.NewInlineKeyboardRow(btn("📄 Tavsifni tahrirlash", Callback{Kind: CbEditBranchDesc, ID: branchID})),
		tgbotapi.NewInlineKeyboardRow(btn("🖼 Rasmni tahrirlash", Callback{Kind: CbEditBranchImage, ID: branchID})),
		tgbotapi.NewInlineKeyboardRow(btn("🔙 Ortga", Callback{Kind: CbAdminEditBranch})),
	)
}

func statsMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("👥 User statistikasi", Callback{Kind: CbUserStats})),
		tgbotapi.NewInlineKeyboardRow(btn("💰 Daromad statistikasi", Callback{Kind: CbRevenueStats})),
		tgbotapi.NewInlineKeyboardRow(btn("❌ Bekor qilingan buyurtmalar", Callback{Kind: CbCancelledOrdersStats})),
		tgbotapi.NewInlineKeyboardRow(btn("🔙 Admin panelga qaytish", Callback{Kind: CbAdminPanel})),
	)
}

func userStatsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("👥 Barcha foydalanuvchilar", Callback{Kind: CbAllUsersStats})),
		tgbotapi.NewInlineKeyboardRow(btn("📅 Haftalik", Callback{Kind: CbWeeklyUsersStats})),
		tgbotapi.NewInlineKeyboardRow(btn("📆 Oylik", Callback{Kind: CbMonthlyUsersStats})),
		tgbotapi.NewInlineKeyboardRow(btn("🔙 Ortga", Callback{Kind: CbAdminStatistics})),
	)
}

func revenueStatsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("📅 1 kunlik", Callback{Kind: CbDailyRevenueStats})),
		tgbotapi.NewInlineKeyboardRow(btn("📊 1 haftalik", Callback{Kind: CbWeeklyRevenueStats})),
		tgbotapi.NewInlineKeyboardRow(btn("📈 1 oylik", Callback{Kind: CbMonthlyRevenueStats})),
		tgbotapi.NewInlineKeyboardRow(btn("🔙 Ortga", Callback{Kind: CbAdminStatistics})),
	)
}

func cancelledStatsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("📅 1 kunlik", Callback{Kind: CbDailyCancelledStats})),
		tgbotapi.NewInlineKeyboardRow(btn("📊 1 haftalik", Callback{Kind: CbWeeklyCancelledStats})),
		tgbotapi.NewInlineKeyboardRow(btn("📈 1 oylik", Callback{Kind: CbMonthlyCancelledStats})),
		tgbotapi.NewInlineKeyboardRow(btn("🔙 Ortga", Callback{Kind: CbAdminStatistics})),
	)
}

func broadcastConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn("✅ Yuborish", Callback{Kind: CbBroadcastConfirm}),
			btn("❌ Bekor qilish", Callback{Kind: CbBroadcastCancel}),
		),
	)
}

func userProductListKeyboard(products []models.Product) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range products {
		label := fmt.Sprintf("%s - %s so'm", p.Name, format.Price(p.Price))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn(label, Callback{Kind: CbUserProduct, ID: p.ID})))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func otherCategoriesKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, category := range enums.Categories() {
		if category == enums.ProductCategoryWeightLoss || category == enums.ProductCategoryWeightGain {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			btn(CategoryLabel(category), Callback{Kind: CbCategory, Category: category})))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func userProductDetailKeyboard(p *models.Product) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("🛒 Savatga qo'shish", Callback{Kind: CbAddBasket, ID: p.ID})),
		tgbotapi.NewInlineKeyboardRow(btn("🔙 Mahsulotlarga qaytish", Callback{Kind: CbBackToType, Category: p.Category})),
	)
}

func quantityKeyboard(p *models.Product, qty int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn("➖", Callback{Kind: CbQtyDec, ID: p.ID, Qty: qty}),
			btn(fmt.Sprintf("%d", qty), Callback{Kind: CbQtyDisplay}),
			btn("➕", Callback{Kind: CbQtyInc, ID: p.ID, Qty: qty}),
		),
		tgbotapi.NewInlineKeyboardRow(btn("💾 Savatga saqlash", Callback{Kind: CbSaveBasket, ID: p.ID, Qty: qty})),
		tgbotapi.NewInlineKeyboardRow(btn("🔙 Mahsulotlarga qaytish", Callback{Kind: CbBackToType, Category: p.Category})),
	)
}

func basketKeyboard(items []models.BasketItem) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			btn("➖", Callback{Kind: CbBasketDec, ID: item.ProductID, Qty: item.Quantity}),
			btn(fmt.Sprintf("%s: %d", name, item.Quantity), Callback{Kind: CbBasketDisplay}),
			btn("➕", Callback{Kind: CbBasketInc, ID: item.ProductID, Qty: item.Quantity}),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn("✅ Buyurtmani tasdiqlash", Callback{Kind: CbConfirmOrderPrompt})))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func deliveryMethodKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn("🏢 Olish uchun", Callback{Kind: CbOrderPickup}),
			btn("🚚 Yetkazib berish", Callback{Kind: CbOrderDelivery}),
		),
	)
}

func deliveryAddressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("📍 Joylashuv yuborish", Callback{Kind: CbDeliveryLocation})),
		tgbotapi.NewInlineKeyboardRow(btn("✍️ Manzilni yozish", Callback{Kind: CbDeliveryText})),
	)
}

func confirmOrderKeyboard(yes CallbackKind) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn("✅ Ha", Callback{Kind: yes}),
			btn("❌ Yo'q", Callback{Kind: CbConfirmOrderNo}),
		),
	)
}

func pickupBranchKeyboard(branchID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("📦 Buyurtma berish", Callback{Kind: CbPickupBranch, ID: branchID})),
	)
}

func orderStatusKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn("❌ Bekor qilish", Callback{Kind: CbOrderStatus, ID: orderID, Status: enums.OrderStatusCancelled}),
			btn("✅ Yetkazildi", Callback{Kind: CbOrderStatus, ID: orderID, Status: enums.OrderStatusDelivered}),
		),
	)
}

func subscriptionKeyboard(channelURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("📣 Kanalga obuna bo'lish", channelURL)),
		tgbotapi.NewInlineKeyboardRow(btn("✅ Tekshirish", Callback{Kind: CbCheckSubscription})),
	)
}
