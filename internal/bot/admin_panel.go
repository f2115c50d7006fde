package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) showAdminPanel(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	b.clearStateQuietly(ctx, cq.Message.Chat.ID)
	markup := adminPanelKeyboard()
	return b.respond(cq, adminPanelText, &markup)
}

func (b *Bot) adminBackToMain(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	b.delete(cq.Message.Chat.ID, cq.Message.MessageID)
	return b.showMainMenu(ctx, cq.Message.Chat.ID)
}
