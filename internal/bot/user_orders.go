package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/massfitdev/massfit-bot/internal/basket"
	"github.com/massfitdev/massfit-bot/internal/orders"
	"github.com/massfitdev/massfit-bot/internal/session"
	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
	"github.com/massfitdev/massfit-bot/pkg/format"
)

func (b *Bot) showBasket(ctx context.Context, chatID, tgID int64) error {
	user, err := b.users.FindByTgID(ctx, tgID)
	if err != nil {
		return err
	}

	items, err := b.baskets.Items(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return b.send(chatID, emptyBasketText, nil)
	}

	return b.send(chatID, basketViewText(items, basket.Total(items)), basketKeyboard(items))
}

// adjustBasketLine changes one line's quantity from the basket view.
// Decrementing past one removes the line entirely.
func (b *Bot) adjustBasketLine(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64, qty int) error {
	user, err := b.users.FindByTgID(ctx, cq.From.ID)
	if err != nil {
		return err
	}

	if qty < 1 {
		if err := b.baskets.Remove(ctx, user.ID, productID); err != nil {
			return err
		}
	} else {
		if err := b.baskets.SetQuantity(ctx, user.ID, productID, qty); err != nil {
			return err
		}
	}

	items, err := b.baskets.Items(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return b.respond(cq, emptyBasketText, nil)
	}

	markup := basketKeyboard(items)
	return b.respond(cq, basketViewText(items, basket.Total(items)), &markup)
}

func (b *Bot) promptDeliveryMethod(_ context.Context, cq *tgbotapi.CallbackQuery) error {
	markup := deliveryMethodKeyboard()
	return b.respond(cq, "📦 <b>Buyurtmangizni qanday olishni xohlaysiz?</b>\n\nYetkazib berish usulini tanlang:", &markup)
}

func (b *Bot) promptDeliveryAddress(_ context.Context, cq *tgbotapi.CallbackQuery) error {
	markup := deliveryAddressKeyboard()
	text := "📍 <b>Yetkazib berish manzili</b>\n\n" +
		"Manzilni qanday ko'rsatishni xohlaysiz?\n\n" +
		"• 📍 Joylashuv yuborish - aniq koordinatalar\n" +
		"• ✍️ Manzilni yozish - matn ko'rinishida"
	return b.respond(cq, text, &markup)
}

func (b *Bot) promptLocationShare(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	if err := b.setStep(ctx, cq.Message.Chat.ID, stepDeliveryLocation); err != nil {
		return err
	}
	b.delete(cq.Message.Chat.ID, cq.Message.MessageID)
	return b.send(cq.Message.Chat.ID,
		"📍 <b>Joylashuvni yuborish</b>\n\nIltimos, yetkazib berish uchun joylashuvingizni yuboring.",
		locationKeyboard())
}

func (b *Bot) promptTextAddress(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	if err := b.setStep(ctx, cq.Message.Chat.ID, stepDeliveryAddress); err != nil {
		return err
	}
	text := "✍️ <b>Manzilni yozish</b>\n\n" +
		"Iltimos, yetkazib berish manzilini matn ko'rinishida yozing.\n\n" +
		"Masalan: Toshkent sh., Yunusobod tumani, Amir Temur ko'chasi, 123-uy\n\n" +
		"⚠️ Manzil 500 belgidan oshmasligi kerak."
	return b.respond(cq, text, nil)
}

func (b *Bot) processDeliveryLocation(ctx context.Context, msg *tgbotapi.Message) error {
	latitude := msg.Location.Latitude
	longitude := msg.Location.Longitude

	address := "Manzil aniqlanmadi"
	if b.geocoder != nil {
		address = b.geocoder.ReverseOrFallback(ctx, latitude, longitude)
	}

	if err := b.sessions.Update(ctx, msg.Chat.ID, func(s *session.State) {
		s.Step = ""
		s.Fields[fieldDeliveryType] = enums.DeliveryTypeDelivery.String()
		s.Fields[fieldLatitude] = strconv.FormatFloat(latitude, 'f', -1, 64)
		s.Fields[fieldLongitude] = strconv.FormatFloat(longitude, 'f', -1, 64)
		s.Fields[fieldAddress] = address
	}); err != nil {
		return err
	}

	text := fmt.Sprintf("📍 <b>Joylashuv qabul qilindi</b>\n\n🏠 Manzil: %s\n\n❓ Buyurtmangizni tasdiqlaysizmi?", address)
	return b.send(msg.Chat.ID, text, confirmOrderKeyboard(CbConfirmOrderYesDelivery))
}

func (b *Bot) processDeliveryAddress(ctx context.Context, msg *tgbotapi.Message) error {
	// Limits are in characters, not bytes; addresses arrive in Cyrillic too.
	address := strings.TrimSpace(msg.Text)
	if utf8.RuneCountInString(address) > 500 {
		return b.send(msg.Chat.ID, "❌ <b>Manzil juda uzun!</b>\n\nIltimos, 500 belgidan kam bo'lgan manzilni kiriting.", nil)
	}
	if utf8.RuneCountInString(address) < 10 {
		return b.send(msg.Chat.ID, "❌ <b>Manzil juda qisqa!</b>\n\nIltimos, to'liq manzilni kiriting.", nil)
	}

	if err := b.sessions.Update(ctx, msg.Chat.ID, func(s *session.State) {
		s.Step = ""
		s.Fields[fieldDeliveryType] = enums.DeliveryTypeDelivery.String()
		s.Fields[fieldAddress] = address
		delete(s.Fields, fieldLatitude)
		delete(s.Fields, fieldLongitude)
	}); err != nil {
		return err
	}

	text := fmt.Sprintf("✍️ <b>Manzil qabul qilindi</b>\n\n🏠 Manzil: %s\n\n❓ Buyurtmangizni tasdiqlaysizmi?", address)
	return b.send(msg.Chat.ID, text, confirmOrderKeyboard(CbConfirmOrderYesDelivery))
}

func (b *Bot) showPickupBranches(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	branches, err := b.catalog.ListBranches(ctx)
	if err != nil {
		return err
	}

	if len(branches) == 0 {
		return b.respond(cq,
			"🏢 <b>Filiallar mavjud emas</b>\n\nAfsuski, hozirda olish uchun filiallar mavjud emas.\nIltimos, qo'llab-quvvatlash xizmatiga murojaat qiling.", nil)
	}

	if err := b.respond(cq, "🏢 <b>Olish uchun filialni tanlang</b>\n\nBuyurtmangizni olish uchun filialni tanlang:", nil); err != nil {
		return err
	}

	chatID := cq.Message.Chat.ID
	for _, branch := range branches {
		description := noDescriptionText
		if branch.Description != nil && *branch.Description != "" {
			description = *branch.Description
		}
		text := fmt.Sprintf("🏢 <b>%s</b>\n\n📝 %s\n📍 Joylashuv: %s", branch.Name, description, branch.Location)
		markup := pickupBranchKeyboard(branch.ID)

		if branch.ImageFileID != nil && *branch.ImageFileID != "" {
			if err := b.sendPhoto(chatID, *branch.ImageFileID, text, markup); err != nil {
				return err
			}
			continue
		}
		if err := b.send(chatID, text, markup); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) confirmPickupBranch(ctx context.Context, cq *tgbotapi.CallbackQuery, branchID int64) error {
	if err := b.sessions.Update(ctx, cq.Message.Chat.ID, func(s *session.State) {
		s.Fields[fieldDeliveryType] = enums.DeliveryTypePickup.String()
		s.Fields[fieldBranchID] = strconv.FormatInt(branchID, 10)
	}); err != nil {
		return err
	}

	return b.send(cq.Message.Chat.ID,
		"❓ <b>Buyurtmani tasdiqlash</b>\n\nBuyurtmangizni tasdiqlaysizmi?",
		confirmOrderKeyboard(CbConfirmOrderYesPickup))
}

// placeOrder turns the captured checkout state into a persisted order, then
// notifies the staff group. Notification failures never undo the order.
func (b *Bot) placeOrder(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	chatID := cq.Message.Chat.ID

	user, err := b.users.FindByTgID(ctx, cq.From.ID)
	if err != nil {
		return err
	}

	state, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		return err
	}

	input, err := checkoutInput(user.ID, state)
	if err != nil {
		return err
	}

	order, err := b.orders.Place(ctx, input)
	if err != nil {
		return err
	}
	b.metrics.IncOrderCreated()
	ctx = b.logg.WithOrderID(ctx, order.ID)
	b.logg.Info(ctx, "order placed")

	// Reload with items and branch preloaded for the notification text.
	order, err = b.orders.GetByID(ctx, order.ID)
	if err != nil {
		return err
	}

	b.notifyStaffGroup(ctx, order, user)
	b.clearStateQuietly(ctx, chatID)

	return b.respond(cq, orderPlacedText(order), nil)
}

func checkoutInput(userID int64, state session.State) (orders.PlaceOrderInput, error) {
	deliveryType, err := enums.ParseDeliveryType(state.Field(fieldDeliveryType))
	if err != nil {
		return orders.PlaceOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "checkout state has no delivery type")
	}

	input := orders.PlaceOrderInput{UserID: userID, DeliveryType: deliveryType}

	switch deliveryType {
	case enums.DeliveryTypePickup:
		branchID, err := strconv.ParseInt(state.Field(fieldBranchID), 10, 64)
		if err != nil {
			return orders.PlaceOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "checkout state has no branch")
		}
		input.BranchID = &branchID

	case enums.DeliveryTypeDelivery:
		if address := state.Field(fieldAddress); address != "" {
			input.Address = &address
		}
		if raw := state.Field(fieldLatitude); raw != "" {
			if latitude, err := strconv.ParseFloat(raw, 64); err == nil {
				input.Latitude = &latitude
			}
		}
		if raw := state.Field(fieldLongitude); raw != "" {
			if longitude, err := strconv.ParseFloat(raw, 64); err == nil {
				input.Longitude = &longitude
			}
		}
	}

	return input, nil
}

func orderPlacedText(order *models.Order) string {
	if order.DeliveryType == enums.DeliveryTypePickup {
		branchName := ""
		if order.Branch != nil {
			branchName = order.Branch.Name
		}
		return fmt.Sprintf(
			"✅ <b>Buyurtma tasdiqlandi!</b>\n\nMahsulotingiz haqida ma'lumot filialga yuborildi.\nUlar tez orada siz bilan bog'lanishadi!\n\n📦 Buyurtma #%d\n💵 Jami: %s so'm\n🏢 Filial: %s",
			order.ID, format.Price(order.TotalPrice), branchName)
	}
	return fmt.Sprintf(
		"✅ <b>Buyurtma tasdiqlandi!</b>\n\nSizning buyurtmangiz #%d muvaffaqiyatli joylashtirildi.\nJami: %s so'm\nYetkazib berish turi: Yetkazib berish\n\nTez orada joylashuvingizga yetkazib beramiz!",
		order.ID, format.Price(order.TotalPrice))
}

// notifyStaffGroup posts the order card to the staff group, pins the
// location underneath when present, and remembers the message ID so status
// updates can edit it later. Everything here is best effort.
func (b *Bot) notifyStaffGroup(ctx context.Context, order *models.Order, user *models.User) {
	if b.cfg.GroupID == 0 {
		return
	}

	card := tgbotapi.NewMessage(b.cfg.GroupID, groupOrderText(order, user))
	card.ParseMode = tgbotapi.ModeHTML
	card.ReplyMarkup = orderStatusKeyboard(order.ID)

	sent, err := b.api.Send(card)
	if err != nil {
		b.metrics.IncNotifyFailure()
		b.logg.Error(ctx, "failed to notify staff group", err)
		return
	}

	if order.DeliveryLatitude != nil && order.DeliveryLongitude != nil {
		pin := tgbotapi.NewLocation(b.cfg.GroupID, *order.DeliveryLatitude, *order.DeliveryLongitude)
		pin.ReplyToMessageID = sent.MessageID
		if _, err := b.api.Send(pin); err != nil {
			b.logg.Warn(ctx, "failed to send order location to staff group")
		}
	}

	if err := b.orders.SetGroupMessageID(ctx, order.ID, sent.MessageID); err != nil {
		b.logg.Error(ctx, "failed to store group message id", err)
	}
}

// cancelOrderConfirmation backs out of checkout and re-renders the basket.
func (b *Bot) cancelOrderConfirmation(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	b.clearStateQuietly(ctx, cq.Message.Chat.ID)

	user, err := b.users.FindByTgID(ctx, cq.From.ID)
	if err != nil {
		return err
	}
	items, err := b.baskets.Items(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return b.respond(cq, emptyBasketText, nil)
	}

	markup := basketKeyboard(items)
	return b.respond(cq, basketViewText(items, basket.Total(items)), &markup)
}

// updateOrderStatus is pressed by staff inside the group. The first press
// wins; later presses surface a state-conflict alert.
func (b *Bot) updateOrderStatus(ctx context.Context, cq *tgbotapi.CallbackQuery, orderID int64, status enums.OrderStatus) error {
	ctx = b.logg.WithOrderID(ctx, orderID)

	order, err := b.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return err
	}

	customer, err := b.users.FindByID(ctx, order.UserID)
	if err != nil {
		return err
	}

	// Rewrite the group card without buttons.
	if err := b.edit(cq.Message.Chat.ID, cq.Message.MessageID, groupOrderText(order, customer), nil); err != nil {
		b.logg.Warn(ctx, "failed to edit group order card")
	}

	// Tell the customer; their blocking the bot must not fail the update.
	note := tgbotapi.NewMessage(customer.TgID, customerStatusText(order.ID, status))
	note.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(note); err != nil {
		b.metrics.IncNotifyFailure()
		b.logg.Warn(ctx, "failed to notify customer about status change")
	}

	b.answer(cq.ID, fmt.Sprintf("Buyurtma holati yangilandi: %s!", statusLabel(status)), true)
	b.logg.Info(ctx, "order status updated")
	return nil
}
