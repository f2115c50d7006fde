package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// startQuantityPick shows the product with a quantity selector starting at 1.
func (b *Bot) startQuantityPick(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64) error {
	return b.showQuantity(ctx, cq, productID, 1)
}

// adjustQuantity re-renders the selector. Decrementing past one backs out
// to the product card; removal of saved lines happens from the basket view.
func (b *Bot) adjustQuantity(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64, qty int) error {
	if qty < 1 {
		return b.showProductDetail(ctx, cq, productID)
	}
	return b.showQuantity(ctx, cq, productID, qty)
}

func (b *Bot) showQuantity(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64, qty int) error {
	product, err := b.catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	markup := quantityKeyboard(product, qty)
	return b.respond(cq, quantityAdjustText(product, qty), &markup)
}

// saveToBasket upserts the chosen quantity and returns to the product card.
func (b *Bot) saveToBasket(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64, qty int) error {
	user, err := b.users.FindByTgID(ctx, cq.From.ID)
	if err != nil {
		return err
	}

	if err := b.baskets.Save(ctx, user.ID, productID, qty); err != nil {
		return err
	}

	b.answer(cq.ID, "✅ Savatga qo'shildi!", true)

	product, err := b.catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	markup := userProductDetailKeyboard(product)
	return b.respond(cq, userProductDetailText(product), &markup)
}
