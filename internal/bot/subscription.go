package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

const subscriptionPromptText = "📣 <b>Kanalga obuna bo'ling</b>\n\n" +
	"Botdan foydalanish uchun avval kanalimizga obuna bo'lishingiz kerak.\n" +
	"Obuna bo'lgach, \"✅ Tekshirish\" tugmasini bosing."

const subscriptionOKText = "✅ Obuna tasdiqlandi! Endi botdan foydalanishingiz mumkin."

// ensureSubscribed gates storefront flows behind a channel subscription when
// the feature is enabled. Admins always pass. Lookups that fail on the
// Telegram side let the user through rather than locking the bot.
func (b *Bot) ensureSubscribed(ctx context.Context, chatID, userID int64) (bool, error) {
	if !b.cfg.SubscriptionCheck || b.cfg.ChannelID == 0 || b.cfg.IsAdmin(userID) {
		return true, nil
	}

	subscribed, err := b.isChannelMember(userID)
	if err != nil {
		b.logg.Warn(b.logg.WithUserID(ctx, userID), "subscription check failed, letting user through")
		return true, nil
	}
	if subscribed {
		return true, nil
	}

	return false, b.send(chatID, subscriptionPromptText, subscriptionKeyboard(b.cfg.ChannelURL))
}

func (b *Bot) isChannelMember(userID int64) (bool, error) {
	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: b.cfg.ChannelID,
			UserID: userID,
		},
	})
	if err != nil {
		return false, err
	}

	switch member.Status {
	case "creator", "administrator", "member":
		return true, nil
	}
	return false, nil
}

func (b *Bot) recheckSubscription(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	subscribed, err := b.isChannelMember(cq.From.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking channel membership")
	}
	if !subscribed {
		b.answer(cq.ID, "❌ Siz hali kanalga obuna bo'lmagansiz.", true)
		return nil
	}

	b.answer(cq.ID, subscriptionOKText, false)
	b.delete(cq.Message.Chat.ID, cq.Message.MessageID)
	return b.showMainMenu(ctx, cq.Message.Chat.ID)
}
