package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/massfitdev/massfit-bot/internal/catalog"
	"github.com/massfitdev/massfit-bot/internal/session"
	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
	"github.com/massfitdev/massfit-bot/pkg/format"
)

const invalidPriceText = "❌ Noto'g'ri narx! Iltimos, to'g'ri raqam kiriting (masalan, 10.99):"

func adminProductDetailText(p *models.Product) string {
	description := noDescriptionText
	if p.Description != nil && *p.Description != "" {
		description = *p.Description
	}
	image := "Rasm yo'q"
	if p.ImageFileID != nil && *p.ImageFileID != "" {
		image = "Ha"
	}
	return fmt.Sprintf(
		"📦 <b>%s</b>\n\n💰 Narxi: %s so'm\n🏷 Turi: %s\n📝 Tavsif: %s\n🖼 Rasm: %s\n\n📅 Yaratilgan: %s",
		p.Name, format.Price(p.Price), CategoryLabel(p.Category), description, image,
		p.CreatedAt.Format("2006-01-02 15:04"))
}

func productEditMenuText(p *models.Product) string {
	description := noDescriptionText
	if p.Description != nil && *p.Description != "" {
		description = *p.Description
	}
	image := "Rasm yo'q"
	if p.ImageFileID != nil && *p.ImageFileID != "" {
		image = "Ha"
	}
	return fmt.Sprintf(
		"✏️ <b>Tahrirlanmoqda: %s</b>\n\nJoriy narx: %s so'm\nJoriy tur: %s\nJoriy tavsif: %s\nJoriy rasm: %s\n\nNimani tahrirlashni xohlaysiz?",
		p.Name, format.Price(p.Price), CategoryLabel(p.Category), description, image)
}

func (b *Bot) adminViewProducts(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	products, err := b.catalog.ListAllProducts(ctx)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		markup := adminPanelKeyboard()
		return b.respond(cq, "📦 <b>Mahsulotlar ro'yxati</b>\n\nMahsulotlar topilmadi. Birinchi mahsulotingizni qo'shing!", &markup)
	}

	text := fmt.Sprintf("📦 <b>Mahsulotlar ro'yxati</b>\n\nJami mahsulotlar: %d\nBatafsil ma'lumot olish uchun mahsulotni tanlang:", len(products))
	markup := productListKeyboard(products, CbProductView)
	return b.respond(cq, text, &markup)
}

func (b *Bot) adminViewProductDetail(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64) error {
	product, err := b.catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	markup := productDetailKeyboard(productID)
	if product.ImageFileID != nil && *product.ImageFileID != "" {
		b.delete(cq.Message.Chat.ID, cq.Message.MessageID)
		return b.sendPhoto(cq.Message.Chat.ID, *product.ImageFileID, adminProductDetailText(product), markup)
	}
	return b.respond(cq, adminProductDetailText(product), &markup)
}

func (b *Bot) adminStartAddProduct(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	if err := b.setStep(ctx, cq.Message.Chat.ID, stepProductName); err != nil {
		return err
	}
	markup := cancelKeyboard()
	return b.respond(cq, "➕ <b>Yangi mahsulot qo'shish</b>\n\nIltimos, mahsulot nomini kiriting:", &markup)
}

func (b *Bot) adminPickProductToEdit(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	products, err := b.catalog.ListAllProducts(ctx)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		markup := adminPanelKeyboard()
		return b.respond(cq, "📦 Tahrirlash uchun mahsulotlar mavjud emas.\nAvval mahsulotlar qo'shing!", &markup)
	}

	markup := productListKeyboard(products, CbProductEdit)
	return b.respond(cq, "✏️ <b>Mahsulotni tahrirlash</b>\n\nTahrirlash uchun mahsulotni tanlang:", &markup)
}

func (b *Bot) adminPickProductToDelete(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	products, err := b.catalog.ListAllProducts(ctx)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		markup := adminPanelKeyboard()
		return b.respond(cq, "📦 O'chirish uchun mahsulotlar mavjud emas.", &markup)
	}

	markup := productListKeyboard(products, CbProductDelete)
	return b.respond(cq, "🗑 <b>Mahsulotni o'chirish</b>\n\n⚠️ O'chirish uchun mahsulotni tanlang:", &markup)
}

func (b *Bot) adminShowProductEditMenu(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64) error {
	product, err := b.catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	markup := editProductFieldsKeyboard(productID)
	return b.respond(cq, productEditMenuText(product), &markup)
}

func (b *Bot) adminStartProductFieldEdit(ctx context.Context, cq *tgbotapi.CallbackQuery, cb Callback) error {
	var step, prompt string
	switch cb.Kind {
	case CbEditName:
		step = stepEditProductName
		prompt = "✏️ <b>Mahsulot nomini tahrirlash</b>\n\nIltimos, yangi mahsulot nomini kiriting:"
	case CbEditPrice:
		step = stepEditProductPrice
		prompt = "✏️ <b>Mahsulot narxini tahrirlash</b>\n\nIltimos, yangi narxni kiriting (masalan, 10.99):"
	case CbEditDesc:
		step = stepEditProductDescription
		prompt = "✏️ <b>Mahsulot tavsifini tahrirlash</b>\n\nIltimos, yangi tavsifni kiriting:"
	case CbEditImage:
		step = stepEditProductImage
		prompt = "✏️ <b>Mahsulot rasmini tahrirlash</b>\n\nIltimos, yangi mahsulot rasmini yuboring (yoki rasmni o'chirish uchun /skip yuboring):"
	}

	chatID := cq.Message.Chat.ID
	if err := b.setStep(ctx, chatID, step); err != nil {
		return err
	}
	if err := b.sessions.Update(ctx, chatID, func(s *session.State) {
		s.Fields[fieldProductID] = fmt.Sprintf("%d", cb.ID)
	}); err != nil {
		return err
	}

	markup := cancelKeyboard()
	return b.respond(cq, prompt, &markup)
}

func (b *Bot) adminStartProductTypeEdit(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64) error {
	markup := categoryPickerKeyboard(productID)
	return b.respond(cq, "✏️ <b>Mahsulot turini tahrirlash</b>\n\nIltimos, yangi mahsulot turini tanlang:", &markup)
}

// adminPickProductCategory lands the category choice in the create flow and
// moves on to the description step.
func (b *Bot) adminPickProductCategory(ctx context.Context, cq *tgbotapi.CallbackQuery, category enums.ProductCategory) error {
	chatID := cq.Message.Chat.ID
	if err := b.sessions.Update(ctx, chatID, func(s *session.State) {
		s.Step = stepProductDescription
		s.Fields[fieldCategory] = category.String()
	}); err != nil {
		return err
	}

	text := fmt.Sprintf("✅ Turi: <b>%s</b>\n\nEndi mahsulot tavsifini kiriting (yoki o'tkazib yuborish uchun /skip yuboring):", CategoryLabel(category))
	return b.respond(cq, text, nil)
}

func (b *Bot) adminApplyProductCategory(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64, category enums.ProductCategory) error {
	product, err := b.catalog.UpdateProduct(ctx, productID, catalog.UpdateProductInput{Category: &category})
	if err != nil {
		return err
	}

	markup := adminPanelKeyboard()
	text := fmt.Sprintf("✅ <b>Mahsulot turi yangilandi!</b>\n\nYangi tur: %s", CategoryLabel(product.Category))
	return b.respond(cq, text, &markup)
}

func (b *Bot) adminConfirmProductDelete(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64) error {
	product, err := b.catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	text := fmt.Sprintf(
		"⚠️ <b>O'chirishni tasdiqlash</b>\n\nUshbu mahsulotni o'chirishni xohlaysizmi?\n\n📦 Nomi: %s\n💰 Narxi: %s so'm",
		product.Name, format.Price(product.Price))
	markup := confirmDeleteProductKeyboard(productID)
	return b.respond(cq, text, &markup)
}

func (b *Bot) adminDeleteProduct(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64) error {
	if err := b.catalog.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	markup := adminPanelKeyboard()
	return b.respond(cq, "✅ <b>Mahsulot muvaffaqiyatli o'chirildi!</b>", &markup)
}

// processProductStep advances the create and per-field edit flows on
// incoming admin text or photo messages.
func (b *Bot) processProductStep(ctx context.Context, msg *tgbotapi.Message, state session.State) error {
	chatID := msg.Chat.ID

	switch state.Step {
	case stepProductName:
		if err := b.sessions.Update(ctx, chatID, func(s *session.State) {
			s.Step = stepProductPrice
			s.Fields[fieldName] = strings.TrimSpace(msg.Text)
		}); err != nil {
			return err
		}
		return b.send(chatID,
			fmt.Sprintf("✅ Mahsulot nomi: <b>%s</b>\n\nEndi mahsulot narxini kiriting (faqat raqamlar, masalan, 10.99):", strings.TrimSpace(msg.Text)), nil)

	case stepProductPrice:
		price, err := parsePrice(msg.Text)
		if err != nil {
			return b.send(chatID, invalidPriceText, nil)
		}
		if err := b.sessions.Update(ctx, chatID, func(s *session.State) {
			s.Step = stepProductCategory
			s.Fields[fieldPrice] = price.String()
		}); err != nil {
			return err
		}
		return b.send(chatID,
			fmt.Sprintf("✅ Narxi: <b>%s so'm</b>\n\nEndi mahsulot turini tanlang:", format.Price(price)),
			categoryPickerKeyboard(0))

	case stepProductDescription:
		description := strings.TrimSpace(msg.Text)
		if msg.Text == "/skip" {
			description = ""
		}
		if err := b.sessions.Update(ctx, chatID, func(s *session.State) {
			s.Step = stepProductImage
			s.Fields[fieldDescription] = description
		}); err != nil {
			return err
		}
		shown := description
		if shown == "" {
			shown = skippedText
		}
		return b.send(chatID,
			fmt.Sprintf("✅ Tavsif: <b>%s</b>\n\nNihoyat, mahsulot rasmini yuboring (yoki o'tkazib yuborish uchun /skip yuboring):", shown), nil)

	case stepProductImage:
		return b.finishProductCreate(ctx, msg, state)

	case stepEditProductName:
		return b.applyProductEdit(ctx, msg, state, func(input *catalog.UpdateProductInput) error {
			name := strings.TrimSpace(msg.Text)
			input.Name = &name
			return nil
		}, func(p *models.Product) string {
			return fmt.Sprintf("✅ <b>Mahsulot nomi yangilandi!</b>\n\nYangi nom: %s", p.Name)
		})

	case stepEditProductPrice:
		price, err := parsePrice(msg.Text)
		if err != nil {
			return b.send(chatID, invalidPriceText, nil)
		}
		return b.applyProductEdit(ctx, msg, state, func(input *catalog.UpdateProductInput) error {
			input.Price = &price
			return nil
		}, func(p *models.Product) string {
			return fmt.Sprintf("✅ <b>Mahsulot narxi yangilandi!</b>\n\nYangi narx: %s so'm", format.Price(p.Price))
		})

	case stepEditProductDescription:
		return b.applyProductEdit(ctx, msg, state, func(input *catalog.UpdateProductInput) error {
			description := strings.TrimSpace(msg.Text)
			input.Description = &description
			return nil
		}, func(p *models.Product) string {
			description := noDescriptionText
			if p.Description != nil && *p.Description != "" {
				description = *p.Description
			}
			return fmt.Sprintf("✅ <b>Mahsulot tavsifi yangilandi!</b>\n\nYangi tavsif: %s", description)
		})

	case stepEditProductImage:
		return b.processProductImageEdit(ctx, msg, state)
	}

	return nil
}

func (b *Bot) finishProductCreate(ctx context.Context, msg *tgbotapi.Message, state session.State) error {
	chatID := msg.Chat.ID

	var imageFileID string
	if len(msg.Photo) > 0 {
		imageFileID = msg.Photo[len(msg.Photo)-1].FileID
	} else if msg.Text != "/skip" {
		return b.send(chatID, "Iltimos, rasm yuboring yoki o'tkazib yuborish uchun /skip yuboring.", nil)
	}

	price, err := decimal.NewFromString(state.Field(fieldPrice))
	if err != nil {
		return err
	}
	category, err := enums.ParseProductCategory(state.Field(fieldCategory))
	if err != nil {
		return err
	}

	input := catalog.CreateProductInput{
		Name:     state.Field(fieldName),
		Price:    price,
		Category: category,
	}
	if description := state.Field(fieldDescription); description != "" {
		input.Description = &description
	}
	if imageFileID != "" {
		input.ImageFileID = &imageFileID
	}

	product, err := b.catalog.CreateProduct(ctx, input)
	if err != nil {
		return err
	}
	b.clearStateQuietly(ctx, chatID)

	description := noDescriptionText
	if product.Description != nil && *product.Description != "" {
		description = *product.Description
	}
	text := fmt.Sprintf(
		"✅ <b>Mahsulot muvaffaqiyatli qo'shildi!</b>\n\n📦 Nomi: %s\n💰 Narxi: %s so'm\n🏷 Turi: %s\n📝 Tavsif: %s",
		product.Name, format.Price(product.Price), CategoryLabel(product.Category), description)

	if imageFileID != "" {
		return b.sendPhoto(chatID, imageFileID, text, adminPanelKeyboard())
	}
	return b.send(chatID, text, adminPanelKeyboard())
}

func (b *Bot) applyProductEdit(ctx context.Context, msg *tgbotapi.Message, state session.State,
	fill func(*catalog.UpdateProductInput) error, success func(*models.Product) string) error {

	productID, err := parseFieldID(state.Field(fieldProductID))
	if err != nil {
		return err
	}

	var input catalog.UpdateProductInput
	if err := fill(&input); err != nil {
		return err
	}

	product, err := b.catalog.UpdateProduct(ctx, productID, input)
	if err != nil {
		return err
	}

	b.clearStateQuietly(ctx, msg.Chat.ID)
	return b.send(msg.Chat.ID, success(product), adminPanelKeyboard())
}

func (b *Bot) processProductImageEdit(ctx context.Context, msg *tgbotapi.Message, state session.State) error {
	productID, err := parseFieldID(state.Field(fieldProductID))
	if err != nil {
		return err
	}

	if msg.Text == "/skip" {
		empty := ""
		product, err := b.catalog.UpdateProduct(ctx, productID, catalog.UpdateProductInput{ImageFileID: &empty})
		if err != nil {
			return err
		}
		b.clearStateQuietly(ctx, msg.Chat.ID)
		return b.send(msg.Chat.ID,
			fmt.Sprintf("✅ <b>Mahsulot rasmi o'chirildi!</b>\n\nMahsulot: %s", product.Name), adminPanelKeyboard())
	}

	if len(msg.Photo) == 0 {
		return b.send(msg.Chat.ID, "Iltimos, rasm yuboring yoki rasmni o'chirish uchun /skip yuboring.", nil)
	}

	fileID := msg.Photo[len(msg.Photo)-1].FileID
	product, err := b.catalog.UpdateProduct(ctx, productID, catalog.UpdateProductInput{ImageFileID: &fileID})
	if err != nil {
		return err
	}

	b.clearStateQuietly(ctx, msg.Chat.ID)
	return b.sendPhoto(msg.Chat.ID, fileID,
		fmt.Sprintf("✅ <b>Mahsulot rasmi yangilandi!</b>\n\nMahsulot: %s", product.Name), adminPanelKeyboard())
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, err
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("price must be positive")
	}
	return price, nil
}

func parseFieldID(raw string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
		return 0, fmt.Errorf("missing entity id in session state")
	}
	return id, nil
}
