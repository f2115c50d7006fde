package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/massfitdev/massfit-bot/internal/catalog"
	"github.com/massfitdev/massfit-bot/internal/session"
	"github.com/massfitdev/massfit-bot/pkg/db/models"
)

func adminBranchDetailText(branch *models.Branch) string {
	description := noDescriptionText
	if branch.Description != nil && *branch.Description != "" {
		description = *branch.Description
	}
	image := "Rasm yo'q"
	if branch.ImageFileID != nil && *branch.ImageFileID != "" {
		image = "Ha"
	}
	return fmt.Sprintf(
		"🏢 <b>%s</b>\n\n📝 Tavsif: %s\n📍 Joylashuv: %s\n🖼 Rasm: %s\n\n📅 Yaratilgan: %s",
		branch.Name, description, branch.Location, image, branch.CreatedAt.Format("2006-01-02 15:04"))
}

func branchEditMenuText(branch *models.Branch) string {
	description := noDescriptionText
	if branch.Description != nil && *branch.Description != "" {
		description = *branch.Description
	}
	image := "Rasm yo'q"
	if branch.ImageFileID != nil && *branch.ImageFileID != "" {
		image = "Ha"
	}
	return fmt.Sprintf(
		"✏️ <b>Tahrirlanmoqda: %s</b>\n\nJoriy joylashuv: %s\nJoriy tavsif: %s\nJoriy rasm: %s\n\nNimani tahrirlashni xohlaysiz?",
		branch.Name, branch.Location, description, image)
}

func (b *Bot) adminShowBranchesPanel(_ context.Context, cq *tgbotapi.CallbackQuery) error {
	markup := branchesPanelKeyboard()
	return b.respond(cq, "🏢 <b>Filiallarni boshqarish</b>\n\nBu yerda filiallaringizni boshqaring.\nQuyidagi variantlardan birini tanlang:", &markup)
}

func (b *Bot) adminViewBranches(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	branches, err := b.catalog.ListBranches(ctx)
	if err != nil {
		return err
	}

	if len(branches) == 0 {
		markup := branchesPanelKeyboard()
		return b.respond(cq, "🏢 <b>Filiallar ro'yxati</b>\n\nFiliallar topilmadi. Birinchi filialingizni qo'shing!", &markup)
	}

	text := fmt.Sprintf("🏢 <b>Filiallar ro'yxati</b>\n\nJami filiallar: %d\nBatafsil ma'lumot olish uchun filialni tanlang:", len(branches))
	markup := branchListKeyboard(branches, CbBranchView)
	return b.respond(cq, text, &markup)
}

func (b *Bot) adminViewBranchDetail(ctx context.Context, cq *tgbotapi.CallbackQuery, branchID int64) error {
	branch, err := b.catalog.GetBranch(ctx, branchID)
	if err != nil {
		return err
	}

	markup := branchDetailKeyboard(branchID)
	if branch.ImageFileID != nil && *branch.ImageFileID != "" {
		b.delete(cq.Message.Chat.ID, cq.Message.MessageID)
		return b.sendPhoto(cq.Message.Chat.ID, *branch.ImageFileID, adminBranchDetailText(branch), markup)
	}
	return b.respond(cq, adminBranchDetailText(branch), &markup)
}

func (b *Bot) adminStartAddBranch(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	if err := b.setStep(ctx, cq.Message.Chat.ID, stepBranchName); err != nil {
		return err
	}
	markup := cancelKeyboard()
	return b.respond(cq, "➕ <b>Yangi filial qo'shish</b>\n\nIltimos, filial nomini kiriting:", &markup)
}

func (b *Bot) adminPickBranchToEdit(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	branches, err := b.catalog.ListBranches(ctx)
	if err != nil {
		return err
	}

	if len(branches) == 0 {
		markup := branchesPanelKeyboard()
		return b.respond(cq, "🏢 Tahrirlash uchun filiallar mavjud emas.\nAvval filiallar qo'shing!", &markup)
	}

	markup := branchListKeyboard(branches, CbBranchEdit)
	return b.respond(cq, "✏️ <b>Filialni tahrirlash</b>\n\nTahrirlash uchun filialni tanlang:", &markup)
}

func (b *Bot) adminPickBranchToDelete(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	branches, err := b.catalog.ListBranches(ctx)
	if err != nil {
		return err
	}

	if len(branches) == 0 {
		markup := branchesPanelKeyboard()
		return b.respond(cq, "🏢 O'chirish uchun filiallar mavjud emas.", &markup)
	}

	markup := branchListKeyboard(branches, CbBranchDelete)
	return b.respond(cq, "🗑 <b>Filialni o'chirish</b>\n\n⚠️ O'chirish uchun filialni tanlang:", &markup)
}

func (b *Bot) adminShowBranchEditMenu(ctx context.Context, cq *tgbotapi.CallbackQuery, branchID int64) error {
	branch, err := b.catalog.GetBranch(ctx, branchID)
	if err != nil {
		return err
	}
	markup := editBranchFieldsKeyboard(branchID)
	return b.respond(cq, branchEditMenuText(branch), &markup)
}

func (b *Bot) adminStartBranchFieldEdit(ctx context.Context, cq *tgbotapi.CallbackQuery, cb Callback) error {
	var step, prompt string
	switch cb.Kind {
	case CbEditBranchName:
		step = stepEditBranchName
		prompt = "✏️ <b>Filial nomini tahrirlash</b>\n\nIltimos, yangi filial nomini kiriting:"
	case CbEditBranchLocation:
		step = stepEditBranchLocation
		prompt = "✏️ <b>Filial joylashuvini tahrirlash</b>\n\nIltimos, yangi joylashuvni kiriting:"
	case CbEditBranchDesc:
		step = stepEditBranchDescription
		prompt = "✏️ <b>Filial tavsifini tahrirlash</b>\n\nIltimos, yangi tavsifni kiriting:"
	case CbEditBranchImage:
		step = stepEditBranchImage
		prompt = "✏️ <b>Filial rasmini tahrirlash</b>\n\nIltimos, yangi filial rasmini yuboring (yoki rasmni o'chirish uchun /skip yuboring):"
	}

	chatID := cq.Message.Chat.ID
	if err := b.setStep(ctx, chatID, step); err != nil {
		return err
	}
	if err := b.sessions.Update(ctx, chatID, func(s *session.State) {
		s.Fields[fieldBranchID] = fmt.Sprintf("%d", cb.ID)
	}); err != nil {
		return err
	}

	markup := cancelKeyboard()
	return b.respond(cq, prompt, &markup)
}

func (b *Bot) adminConfirmBranchDelete(ctx context.Context, cq *tgbotapi.CallbackQuery, branchID int64) error {
	branch, err := b.catalog.GetBranch(ctx, branchID)
	if err != nil {
		return err
	}

	text := fmt.Sprintf(
		"⚠️ <b>O'chirishni tasdiqlash</b>\n\nUshbu filialni o'chirishni xohlaysizmi?\n\n🏢 Nomi: %s\n📍 Joylashuv: %s",
		branch.Name, branch.Location)
	markup := confirmDeleteBranchKeyboard(branchID)
	return b.respond(cq, text, &markup)
}

func (b *Bot) adminDeleteBranch(ctx context.Context, cq *tgbotapi.CallbackQuery, branchID int64) error {
	if err := b.catalog.DeleteBranch(ctx, branchID); err != nil {
		return err
	}
	markup := adminPanelKeyboard()
	return b.respond(cq, "✅ <b>Filial muvaffaqiyatli o'chirildi!</b>", &markup)
}

// processBranchStep advances the branch create and edit flows.
func (b *Bot) processBranchStep(ctx context.Context, msg *tgbotapi.Message, state session.State) error {
	chatID := msg.Chat.ID

	switch state.Step {
	case stepBranchName:
		if err := b.sessions.Update(ctx, chatID, func(s *session.State) {
			s.Step = stepBranchLocation
			s.Fields[fieldName] = strings.TrimSpace(msg.Text)
		}); err != nil {
			return err
		}
		return b.send(chatID,
			fmt.Sprintf("✅ Filial nomi: <b>%s</b>\n\nEndi joylashuvni kiriting (Google Maps havolasi yoki manzil):", strings.TrimSpace(msg.Text)), nil)

	case stepBranchLocation:
		if err := b.sessions.Update(ctx, chatID, func(s *session.State) {
			s.Step = stepBranchDescription
			s.Fields[fieldLocation] = strings.TrimSpace(msg.Text)
		}); err != nil {
			return err
		}
		return b.send(chatID, "✅ Joylashuv saqlandi\n\nEndi filial tavsifini kiriting (yoki o'tkazib yuborish uchun /skip yuboring):", nil)

	case stepBranchDescription:
		description := strings.TrimSpace(msg.Text)
		if msg.Text == "/skip" {
			description = ""
		}
		if err := b.sessions.Update(ctx, chatID, func(s *session.State) {
			s.Step = stepBranchImage
			s.Fields[fieldDescription] = description
		}); err != nil {
			return err
		}
		shown := description
		if shown == "" {
			shown = skippedText
		}
		return b.send(chatID,
			fmt.Sprintf("✅ Tavsif: <b>%s</b>\n\nNihoyat, filial rasmini yuboring (yoki o'tkazib yuborish uchun /skip yuboring):", shown), nil)

	case stepBranchImage:
		return b.finishBranchCreate(ctx, msg, state)

	case stepEditBranchName:
		return b.applyBranchEdit(ctx, msg, state, func(input *catalog.UpdateBranchInput) {
			name := strings.TrimSpace(msg.Text)
			input.Name = &name
		}, func(branch *models.Branch) string {
			return fmt.Sprintf("✅ <b>Filial nomi yangilandi!</b>\n\nYangi nom: %s", branch.Name)
		})

	case stepEditBranchLocation:
		return b.applyBranchEdit(ctx, msg, state, func(input *catalog.UpdateBranchInput) {
			location := strings.TrimSpace(msg.Text)
			input.Location = &location
		}, func(branch *models.Branch) string {
			return fmt.Sprintf("✅ <b>Filial joylashuvi yangilandi!</b>\n\nYangi joylashuv: %s", branch.Location)
		})

	case stepEditBranchDescription:
		return b.applyBranchEdit(ctx, msg, state, func(input *catalog.UpdateBranchInput) {
			description := strings.TrimSpace(msg.Text)
			input.Description = &description
		}, func(branch *models.Branch) string {
			description := noDescriptionText
			if branch.Description != nil && *branch.Description != "" {
				description = *branch.Description
			}
			return fmt.Sprintf("✅ <b>Filial tavsifi yangilandi!</b>\n\nYangi tavsif: %s", description)
		})

	case stepEditBranchImage:
		return b.processBranchImageEdit(ctx, msg, state)
	}

	return nil
}

func (b *Bot) finishBranchCreate(ctx context.Context, msg *tgbotapi.Message, state session.State) error {
	chatID := msg.Chat.ID

	var imageFileID string
	if len(msg.Photo) > 0 {
		imageFileID = msg.Photo[len(msg.Photo)-1].FileID
	} else if msg.Text != "/skip" {
		return b.send(chatID, "Iltimos, rasm yuboring yoki o'tkazib yuborish uchun /skip yuboring.", nil)
	}

	input := catalog.CreateBranchInput{
		Name:     state.Field(fieldName),
		Location: state.Field(fieldLocation),
	}
	if description := state.Field(fieldDescription); description != "" {
		input.Description = &description
	}
	if imageFileID != "" {
		input.ImageFileID = &imageFileID
	}

	branch, err := b.catalog.CreateBranch(ctx, input)
	if err != nil {
		return err
	}
	b.clearStateQuietly(ctx, chatID)

	description := noDescriptionText
	if branch.Description != nil && *branch.Description != "" {
		description = *branch.Description
	}
	text := fmt.Sprintf(
		"✅ <b>Filial muvaffaqiyatli qo'shildi!</b>\n\n🏢 Nomi: %s\n📍 Joylashuv: %s\n📝 Tavsif: %s",
		branch.Name, branch.Location, description)

	if imageFileID != "" {
		return b.sendPhoto(chatID, imageFileID, text, adminPanelKeyboard())
	}
	return b.send(chatID, text, adminPanelKeyboard())
}

func (b *Bot) applyBranchEdit(ctx context.Context, msg *tgbotapi.Message, state session.State,
	fill func(*catalog.UpdateBranchInput), success func(*models.Branch) string) error {

	branchID, err := parseFieldID(state.Field(fieldBranchID))
	if err != nil {
		return err
	}

	var input catalog.UpdateBranchInput
	fill(&input)

	branch, err := b.catalog.UpdateBranch(ctx, branchID, input)
	if err != nil {
		return err
	}

	b.clearStateQuietly(ctx, msg.Chat.ID)
	return b.send(msg.Chat.ID, success(branch), adminPanelKeyboard())
}

func (b *Bot) processBranchImageEdit(ctx context.Context, msg *tgbotapi.Message, state session.State) error {
	branchID, err := parseFieldID(state.Field(fieldBranchID))
	if err != nil {
		return err
	}

	if msg.Text == "/skip" {
		empty := ""
		branch, err := b.catalog.UpdateBranch(ctx, branchID, catalog.UpdateBranchInput{ImageFileID: &empty})
		if err != nil {
			return err
		}
		b.clearStateQuietly(ctx, msg.Chat.ID)
		return b.send(msg.Chat.ID,
			fmt.Sprintf("✅ <b>Filial rasmi o'chirildi!</b>\n\nFilial: %s", branch.Name), adminPanelKeyboard())
	}

	if len(msg.Photo) == 0 {
		return b.send(msg.Chat.ID, "Iltimos, rasm yuboring yoki rasmni o'chirish uchun /skip yuboring.", nil)
	}

	fileID := msg.Photo[len(msg.Photo)-1].FileID
	branch, err := b.catalog.UpdateBranch(ctx, branchID, catalog.UpdateBranchInput{ImageFileID: &fileID})
	if err != nil {
		return err
	}

	b.clearStateQuietly(ctx, msg.Chat.ID)
	return b.sendPhoto(msg.Chat.ID, fileID,
		fmt.Sprintf("✅ <b>Filial rasmi yangilandi!</b>\n\nFilial: %s", branch.Name), adminPanelKeyboard())
}
