package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/massfitdev/massfit-bot/pkg/enums"
)

func (b *Bot) showCategoryMenu(ctx context.Context, chatID int64, category enums.ProductCategory) error {
	products, err := b.catalog.ListProductsByCategory(ctx, category)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		return b.send(chatID, categoryHeader(category, false), nil)
	}
	return b.send(chatID, categoryHeader(category, true), userProductListKeyboard(products))
}

func (b *Bot) showOtherProducts(_ context.Context, chatID int64) error {
	return b.send(chatID, otherProductsText, otherCategoriesKeyboard())
}

// showCategoryList is the inline variant used by the other-products submenu.
func (b *Bot) showCategoryList(ctx context.Context, cq *tgbotapi.CallbackQuery, category enums.ProductCategory) error {
	products, err := b.catalog.ListProductsByCategory(ctx, category)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		return b.respond(cq, categoryHeader(category, false), nil)
	}
	markup := userProductListKeyboard(products)
	return b.respond(cq, categoryHeader(category, true), &markup)
}

func (b *Bot) showProductDetail(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64) error {
	product, err := b.catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	markup := userProductDetailKeyboard(product)
	if product.ImageFileID != nil && *product.ImageFileID != "" {
		b.delete(cq.Message.Chat.ID, cq.Message.MessageID)
		return b.sendPhoto(cq.Message.Chat.ID, *product.ImageFileID, userProductDetailText(product), markup)
	}
	return b.respond(cq, userProductDetailText(product), &markup)
}

func (b *Bot) backToCategory(ctx context.Context, cq *tgbotapi.CallbackQuery, category enums.ProductCategory) error {
	return b.showCategoryList(ctx, cq, category)
}
