package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/massfitdev/massfit-bot/internal/session"
	"github.com/massfitdev/massfit-bot/pkg/enums"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx = b.logg.WithUpdateID(ctx, update.UpdateID)

	switch {
	case update.Message != nil:
		b.metrics.IncUpdate("message")
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.metrics.IncUpdate("callback")
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	ctx = b.logg.WithChatID(ctx, msg.Chat.ID)

	var err error
	switch {
	case msg.IsCommand():
		err = b.handleCommand(ctx, msg)
	case msg.Contact != nil:
		err = b.handleContact(ctx, msg)
	case msg.Text == btnWeightLoss || msg.Text == btnWeightGain ||
		msg.Text == btnOtherProducts || msg.Text == btnMyOrders ||
		msg.Text == btnTypePhone:
		err = b.handleMenuButton(ctx, msg)
	default:
		err = b.handleSessionMessage(ctx, msg)
	}

	if err != nil {
		meta := pkgerrors.MetadataFor(pkgerrors.CodeOf(err))
		b.metrics.IncHandlerFailure("message")
		b.logg.Error(ctx, "message handler failed", err)
		_ = b.send(msg.Chat.ID, meta.AlertText, nil)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "admin":
		return b.handleAdminCommand(ctx, msg)
	case "skip":
		// Skips only mean something mid-flow.
		return b.handleSessionMessage(ctx, msg)
	default:
		return nil
	}
}

func (b *Bot) handleMenuButton(ctx context.Context, msg *tgbotapi.Message) error {
	if ok, err := b.ensureSubscribed(ctx, msg.Chat.ID, msg.From.ID); err != nil || !ok {
		return err
	}

	switch msg.Text {
	case btnWeightLoss:
		return b.showCategoryMenu(ctx, msg.Chat.ID, enums.ProductCategoryWeightLoss)
	case btnWeightGain:
		return b.showCategoryMenu(ctx, msg.Chat.ID, enums.ProductCategoryWeightGain)
	case btnOtherProducts:
		return b.showOtherProducts(ctx, msg.Chat.ID)
	case btnMyOrders:
		return b.showBasket(ctx, msg.Chat.ID, msg.From.ID)
	case btnTypePhone:
		return b.promptManualPhone(ctx, msg.Chat.ID)
	}
	return nil
}

func (b *Bot) handleSessionMessage(ctx context.Context, msg *tgbotapi.Message) error {
	state, err := b.sessions.Get(ctx, msg.Chat.ID)
	if err != nil {
		return err
	}

	switch state.Step {
	case stepAwaitingPhone:
		return b.processManualPhone(ctx, msg)

	case stepProductName, stepProductPrice, stepProductDescription, stepProductImage,
		stepEditProductName, stepEditProductPrice, stepEditProductDescription, stepEditProductImage:
		if !b.cfg.IsAdmin(msg.From.ID) {
			return nil
		}
		return b.processProductStep(ctx, msg, state)

	case stepBranchName, stepBranchLocation, stepBranchDescription, stepBranchImage,
		stepEditBranchName, stepEditBranchLocation, stepEditBranchDescription, stepEditBranchImage:
		if !b.cfg.IsAdmin(msg.From.ID) {
			return nil
		}
		return b.processBranchStep(ctx, msg, state)

	case stepBroadcastMessage:
		if !b.cfg.IsAdmin(msg.From.ID) {
			return nil
		}
		return b.processBroadcastMessage(ctx, msg)

	case stepDeliveryLocation:
		if msg.Location == nil {
			return nil
		}
		return b.processDeliveryLocation(ctx, msg)

	case stepDeliveryAddress:
		return b.processDeliveryAddress(ctx, msg)
	}

	return nil
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		b.answer(cq.ID, "", false)
		return
	}
	ctx = b.logg.WithChatID(ctx, cq.Message.Chat.ID)

	cb, err := ParseCallback(cq.Data)
	if err == nil {
		err = b.dispatchCallback(ctx, cq, cb)
	}

	if err != nil {
		meta := pkgerrors.MetadataFor(pkgerrors.CodeOf(err))
		b.metrics.IncHandlerFailure("callback")
		b.logg.Error(ctx, "callback handler failed", err)
		b.answer(cq.ID, meta.AlertText, meta.ShowAlert)
		return
	}

	// Handlers that need a custom toast answer themselves; a duplicate ack
	// is ignored by Telegram.
	b.answer(cq.ID, "", false)
}

func (b *Bot) dispatchCallback(ctx context.Context, cq *tgbotapi.CallbackQuery, cb Callback) error {
	if isAdminCallback(cb.Kind) && !b.cfg.IsAdmin(cq.From.ID) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin callback from non-admin")
	}

	switch cb.Kind {
	// Admin panel.
	case CbAdminPanel:
		return b.showAdminPanel(ctx, cq)
	case CbAdminBackMain:
		return b.adminBackToMain(ctx, cq)

	// Admin: products.
	case CbAdminViewProducts:
		return b.adminViewProducts(ctx, cq)
	case CbAdminAddProduct:
		return b.adminStartAddProduct(ctx, cq)
	case CbAdminEditProduct:
		return b.adminPickProductToEdit(ctx, cq)
	case CbAdminDeleteProduct:
		return b.adminPickProductToDelete(ctx, cq)
	case CbProductView:
		return b.adminViewProductDetail(ctx, cq, cb.ID)
	case CbProductEdit:
		return b.adminShowProductEditMenu(ctx, cq, cb.ID)
	case CbProductDelete:
		return b.adminConfirmProductDelete(ctx, cq, cb.ID)
	case CbProductConfirmDelete:
		return b.adminDeleteProduct(ctx, cq, cb.ID)
	case CbEditName, CbEditPrice, CbEditDesc, CbEditImage:
		return b.adminStartProductFieldEdit(ctx, cq, cb)
	case CbEditType:
		return b.adminStartProductTypeEdit(ctx, cq, cb.ID)
	case CbTypePick:
		return b.adminPickProductCategory(ctx, cq, cb.Category)
	case CbEditTypePick:
		return b.adminApplyProductCategory(ctx, cq, cb.ID, cb.Category)

	// Admin: branches.
	case CbAdminBranches:
		return b.adminShowBranchesPanel(ctx, cq)
	case CbAdminViewBranches:
		return b.adminViewBranches(ctx, cq)
	case CbAdminAddBranch:
		return b.adminStartAddBranch(ctx, cq)
	case CbAdminEditBranch:
		return b.adminPickBranchToEdit(ctx, cq)
	case CbAdminDeleteBranch:
		return b.adminPickBranchToDelete(ctx, cq)
	case CbBranchView:
		return b.adminViewBranchDetail(ctx, cq, cb.ID)
	case CbBranchEdit:
		return b.adminShowBranchEditMenu(ctx, cq, cb.ID)
	case CbBranchDelete:
		return b.adminConfirmBranchDelete(ctx, cq, cb.ID)
	case CbBranchConfirmDelete:
		return b.adminDeleteBranch(ctx, cq, cb.ID)
	case CbEditBranchName, CbEditBranchLocation, CbEditBranchDesc, CbEditBranchImage:
		return b.adminStartBranchFieldEdit(ctx, cq, cb)

	// Admin: statistics.
	case CbAdminStatistics:
		return b.adminShowStatsMenu(ctx, cq)
	case CbUserStats, CbAllUsersStats, CbWeeklyUsersStats, CbMonthlyUsersStats,
		CbRevenueStats, CbDailyRevenueStats, CbWeeklyRevenueStats, CbMonthlyRevenueStats,
		CbCancelledOrdersStats, CbDailyCancelledStats, CbWeeklyCancelledStats, CbMonthlyCancelledStats:
		return b.adminShowStats(ctx, cq, cb.Kind)

	// Admin: broadcast.
	case CbAdminBroadcast:
		return b.adminStartBroadcast(ctx, cq)
	case CbBroadcastConfirm:
		return b.adminConfirmBroadcast(ctx, cq)
	case CbBroadcastCancel:
		return b.adminCancelBroadcast(ctx, cq)

	// Storefront.
	case CbUserProduct:
		return b.showProductDetail(ctx, cq, cb.ID)
	case CbBackToType:
		return b.backToCategory(ctx, cq, cb.Category)
	case CbCategory:
		return b.showCategoryList(ctx, cq, cb.Category)
	case CbAddBasket:
		return b.startQuantityPick(ctx, cq, cb.ID)
	case CbQtyInc:
		return b.adjustQuantity(ctx, cq, cb.ID, cb.Qty+1)
	case CbQtyDec:
		return b.adjustQuantity(ctx, cq, cb.ID, cb.Qty-1)
	case CbSaveBasket:
		return b.saveToBasket(ctx, cq, cb.ID, cb.Qty)
	case CbBasketInc:
		return b.adjustBasketLine(ctx, cq, cb.ID, cb.Qty+1)
	case CbBasketDec:
		return b.adjustBasketLine(ctx, cq, cb.ID, cb.Qty-1)
	case CbQtyDisplay, CbBasketDisplay:
		return nil

	// Checkout.
	case CbConfirmOrderPrompt:
		return b.promptDeliveryMethod(ctx, cq)
	case CbOrderDelivery:
		return b.promptDeliveryAddress(ctx, cq)
	case CbDeliveryLocation:
		return b.promptLocationShare(ctx, cq)
	case CbDeliveryText:
		return b.promptTextAddress(ctx, cq)
	case CbOrderPickup:
		return b.showPickupBranches(ctx, cq)
	case CbPickupBranch:
		return b.confirmPickupBranch(ctx, cq, cb.ID)
	case CbConfirmOrderYesDelivery, CbConfirmOrderYesPickup:
		return b.placeOrder(ctx, cq)
	case CbConfirmOrderNo:
		return b.cancelOrderConfirmation(ctx, cq)
	case CbOrderStatus:
		return b.updateOrderStatus(ctx, cq, cb.ID, cb.Status)

	case CbCheckSubscription:
		return b.recheckSubscription(ctx, cq)
	}

	return pkgerrors.New(pkgerrors.CodeValidation, "unhandled callback kind")
}

func isAdminCallback(kind CallbackKind) bool {
	switch kind {
	case CbAdminPanel, CbAdminBackMain,
		CbAdminViewProducts, CbAdminAddProduct, CbAdminEditProduct, CbAdminDeleteProduct,
		CbProductView, CbProductEdit, CbProductDelete, CbProductConfirmDelete,
		CbEditName, CbEditPrice, CbEditType, CbEditDesc, CbEditImage,
		CbTypePick, CbEditTypePick,
		CbAdminBranches, CbAdminViewBranches, CbAdminAddBranch, CbAdminEditBranch, CbAdminDeleteBranch,
		CbBranchView, CbBranchEdit, CbBranchDelete, CbBranchConfirmDelete,
		CbEditBranchName, CbEditBranchLocation, CbEditBranchDesc, CbEditBranchImage,
		CbAdminStatistics, CbUserStats, CbAllUsersStats, CbWeeklyUsersStats, CbMonthlyUsersStats,
		CbRevenueStats, CbDailyRevenueStats, CbWeeklyRevenueStats, CbMonthlyRevenueStats,
		CbCancelledOrdersStats, CbDailyCancelledStats, CbWeeklyCancelledStats, CbMonthlyCancelledStats,
		CbAdminBroadcast, CbBroadcastConfirm, CbBroadcastCancel:
		return true
	}
	return false
}

// clearStateQuietly drops session state; failures only get logged.
func (b *Bot) clearStateQuietly(ctx context.Context, chatID int64) {
	if err := b.sessions.Clear(ctx, chatID); err != nil {
		b.logg.Warn(b.logg.WithChatID(ctx, chatID), "failed to clear session state")
	}
}

// setStep resets the state to just a step, dropping captured fields.
func (b *Bot) setStep(ctx context.Context, chatID int64, step string) error {
	if err := b.sessions.Clear(ctx, chatID); err != nil {
		return err
	}
	return b.sessions.Update(ctx, chatID, func(s *session.State) {
		s.Step = step
	})
}
