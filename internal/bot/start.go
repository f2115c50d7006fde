package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/massfitdev/massfit-bot/internal/users"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

// validUzbekPhone reports whether the input is a +998 number with nine
// digits after the prefix. Spaces and dashes are ignored.
func validUzbekPhone(phone string) bool {
	phone = stripPhoneSeparators(phone)
	if !strings.HasPrefix(phone, "+998") || len(phone) != 13 {
		return false
	}
	for _, r := range phone[4:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// formatUzbekPhone renders a valid number as "+998 XX XXX XXXX".
func formatUzbekPhone(phone string) string {
	cleaned := stripPhoneSeparators(phone)
	if !strings.HasPrefix(cleaned, "+998") || len(cleaned) != 13 {
		return phone
	}
	return fmt.Sprintf("+998 %s %s %s", cleaned[4:6], cleaned[6:9], cleaned[9:13])
}

func stripPhoneSeparators(phone string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if b.cfg.IsAdmin(msg.From.ID) {
		reply := tgbotapi.NewMessage(msg.Chat.ID, adminPanelText)
		reply.ParseMode = tgbotapi.ModeHTML
		reply.ReplyMarkup = adminPanelKeyboard()
		_, err := b.api.Send(reply)
		return err
	}

	if ok, err := b.ensureSubscribed(ctx, msg.Chat.ID, msg.From.ID); err != nil || !ok {
		return err
	}

	user, err := b.users.FindByTgID(ctx, msg.From.ID)
	if err != nil {
		if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
			return err
		}
		fullName := strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
		user, err = b.users.Create(ctx, users.CreateUserDTO{
			TgID:      msg.From.ID,
			Username:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
			FullName:  fullName,
		})
		if err != nil {
			return err
		}
		b.logg.Info(b.logg.WithUserID(ctx, user.ID), "registered new user")
	}

	if user.PhoneNumber == nil || *user.PhoneNumber == "" {
		return b.send(msg.Chat.ID, phoneRequestText, phoneKeyboard())
	}

	return b.showMainMenu(ctx, msg.Chat.ID)
}

func (b *Bot) handleAdminCommand(ctx context.Context, msg *tgbotapi.Message) error {
	if !b.cfg.IsAdmin(msg.From.ID) {
		return b.send(msg.Chat.ID, adminDeniedText, nil)
	}
	return b.send(msg.Chat.ID, adminPanelText, adminPanelKeyboard())
}

func (b *Bot) showMainMenu(ctx context.Context, chatID int64) error {
	b.clearStateQuietly(ctx, chatID)
	return b.send(chatID, mainMenuText, mainMenuKeyboard())
}

func (b *Bot) promptManualPhone(ctx context.Context, chatID int64) error {
	if err := b.setStep(ctx, chatID, stepAwaitingPhone); err != nil {
		return err
	}
	reply := tgbotapi.NewMessage(chatID, phoneManualPromptText)
	reply.ParseMode = tgbotapi.ModeHTML
	reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	_, err := b.api.Send(reply)
	return err
}

func (b *Bot) processManualPhone(ctx context.Context, msg *tgbotapi.Message) error {
	phone := strings.TrimSpace(msg.Text)
	if !validUzbekPhone(phone) {
		return b.send(msg.Chat.ID, phoneInvalidText, nil)
	}

	if err := b.savePhone(ctx, msg.From.ID, formatUzbekPhone(phone)); err != nil {
		return err
	}
	b.clearStateQuietly(ctx, msg.Chat.ID)
	return b.showMainMenu(ctx, msg.Chat.ID)
}

// handleContact accepts any shared contact; numbers matching the local
// format get normalized first.
func (b *Bot) handleContact(ctx context.Context, msg *tgbotapi.Message) error {
	phone := msg.Contact.PhoneNumber
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	if validUzbekPhone(phone) {
		phone = formatUzbekPhone(phone)
	}

	if err := b.savePhone(ctx, msg.From.ID, phone); err != nil {
		return err
	}
	b.clearStateQuietly(ctx, msg.Chat.ID)
	return b.showMainMenu(ctx, msg.Chat.ID)
}

func (b *Bot) savePhone(ctx context.Context, tgID int64, phone string) error {
	user, err := b.users.FindByTgID(ctx, tgID)
	if err != nil {
		return err
	}
	return b.users.UpdatePhone(ctx, user.ID, phone)
}
