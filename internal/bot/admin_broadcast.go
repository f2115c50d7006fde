package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/massfitdev/massfit-bot/internal/broadcast"
	"github.com/massfitdev/massfit-bot/internal/session"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

func (b *Bot) adminStartBroadcast(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	if err := b.setStep(ctx, cq.Message.Chat.ID, stepBroadcastMessage); err != nil {
		return err
	}
	markup := cancelKeyboard()
	return b.respond(cq, broadcastPromptText, &markup)
}

// broadcastPayload extracts the broadcastable content of an admin message.
func broadcastPayload(msg *tgbotapi.Message) (broadcast.Message, string, bool) {
	// Cut on rune boundaries; a byte slice could split a multibyte character
	// and Telegram rejects invalid UTF-8.
	truncate := func(s string) string {
		runes := []rune(s)
		if len(runes) > 100 {
			return string(runes[:100]) + "..."
		}
		return s
	}
	captionSuffix := ""
	if msg.Caption != "" {
		captionSuffix = fmt.Sprintf(" (%s)", msg.Caption)
	}

	switch {
	case msg.Text != "":
		return broadcast.Message{Type: broadcast.ContentText, Text: msg.Text},
			fmt.Sprintf("Matn: <i>%s</i>", truncate(msg.Text)), true
	case len(msg.Photo) > 0:
		return broadcast.Message{Type: broadcast.ContentPhoto, Text: msg.Caption, FileID: msg.Photo[len(msg.Photo)-1].FileID},
			"Rasm" + captionSuffix, true
	case msg.Video != nil:
		return broadcast.Message{Type: broadcast.ContentVideo, Text: msg.Caption, FileID: msg.Video.FileID},
			"Video" + captionSuffix, true
	case msg.Animation != nil:
		return broadcast.Message{Type: broadcast.ContentAnimation, Text: msg.Caption, FileID: msg.Animation.FileID},
			"GIF" + captionSuffix, true
	case msg.Document != nil:
		return broadcast.Message{Type: broadcast.ContentDocument, Text: msg.Caption, FileID: msg.Document.FileID},
			"Hujjat" + captionSuffix, true
	case msg.Audio != nil:
		return broadcast.Message{Type: broadcast.ContentAudio, Text: msg.Caption, FileID: msg.Audio.FileID},
			"Audio" + captionSuffix, true
	case msg.Voice != nil:
		return broadcast.Message{Type: broadcast.ContentVoice, FileID: msg.Voice.FileID},
			"Ovozli habar", true
	}
	return broadcast.Message{}, "", false
}

func (b *Bot) processBroadcastMessage(ctx context.Context, msg *tgbotapi.Message) error {
	payload, preview, ok := broadcastPayload(msg)
	if !ok {
		return b.send(msg.Chat.ID,
			"❌ Bu turdagi habar qo'llab-quvvatlanmaydi.\nMatn, rasm, video, GIF, hujjat, audio yoki ovozli habar yuboring.", nil)
	}

	recipients, err := b.users.All(ctx)
	if err != nil {
		return err
	}

	if err := b.sessions.Update(ctx, msg.Chat.ID, func(s *session.State) {
		s.Step = stepBroadcastConfirmation
		s.Fields[fieldBroadcastType] = string(payload.Type)
		s.Fields[fieldBroadcastText] = payload.Text
		s.Fields[fieldBroadcastFileID] = payload.FileID
	}); err != nil {
		return err
	}

	return b.send(msg.Chat.ID, broadcastConfirmText(preview, len(recipients)), broadcastConfirmKeyboard())
}

func (b *Bot) adminConfirmBroadcast(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	chatID := cq.Message.Chat.ID

	state, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if state.Step != stepBroadcastConfirmation {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no pending broadcast to confirm")
	}

	payload := broadcast.Message{
		Type:   broadcast.ContentType(state.Field(fieldBroadcastType)),
		Text:   state.Field(fieldBroadcastText),
		FileID: state.Field(fieldBroadcastFileID),
	}

	recipients, err := b.users.All(ctx)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		b.clearStateQuietly(ctx, chatID)
		markup := adminPanelKeyboard()
		return b.respond(cq, "❌ <b>Foydalanuvchilar topilmadi</b>\n\nHabar yuborish uchun kamida bitta foydalanuvchi bo'lishi kerak.", &markup)
	}

	progress := fmt.Sprintf("📤 <b>Habar yuborilmoqda...</b>\n\nJami foydalanuvchilar: %d\nTur: %s", len(recipients), payload.Type)
	if err := b.respond(cq, progress, nil); err != nil {
		return err
	}

	summary, runErr := b.broadcast.Run(ctx, recipients, payload)
	if runErr != nil {
		b.logg.Warn(b.logg.WithField(ctx, "broadcast_run_id", summary.RunID), "broadcast finished with failures")
	}

	b.clearStateQuietly(ctx, chatID)
	result := broadcastResultText(summary.Sent, summary.Failed, len(recipients))
	markup := adminPanelKeyboard()
	return b.send(chatID, result, markup)
}

func (b *Bot) adminCancelBroadcast(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	b.clearStateQuietly(ctx, cq.Message.Chat.ID)
	markup := adminPanelKeyboard()
	return b.respond(cq, "❌ <b>Habar yuborish bekor qilindi</b>", &markup)
}
