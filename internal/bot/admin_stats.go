package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/massfitdev/massfit-bot/internal/stats"
	"github.com/massfitdev/massfit-bot/pkg/format"
)

const revenueFootnote = "\n\n⚠️ <i>Faqat yetkazilgan buyurtmalar hisobga olingan</i>"

func (b *Bot) adminShowStatsMenu(_ context.Context, cq *tgbotapi.CallbackQuery) error {
	markup := statsMenuKeyboard()
	return b.respond(cq, "📊 <b>Statistika</b>\n\nKerakli statistika turini tanlang:", &markup)
}

func (b *Bot) adminShowStats(ctx context.Context, cq *tgbotapi.CallbackQuery, kind CallbackKind) error {
	var (
		text   string
		markup tgbotapi.InlineKeyboardMarkup
		err    error
	)

	switch kind {
	case CbUserStats:
		text = "👥 <b>User statistikasi</b>\n\nKerakli statistika turini tanlang:"
		markup = userStatsKeyboard()

	case CbAllUsersStats:
		var total int64
		total, err = b.stats.TotalUsers(ctx)
		text = fmt.Sprintf("👥 <b>Barcha foydalanuvchilar</b>\n\n📊 Jami foydalanuvchilar soni: <b>%d</b>", total)
		markup = userStatsKeyboard()

	case CbWeeklyUsersStats:
		var counts stats.UserCounts
		counts, err = b.stats.Users(ctx, stats.WindowWeekly)
		text = fmt.Sprintf(
			"📅 <b>Haftalik foydalanuvchilar statistikasi</b>\n\n🆕 Bu hafta qo'shilganlar: <b>%d</b>\n👥 Bir hafta oldin mavjud bo'lganlar: <b>%d</b>\n📊 Jami: <b>%d</b>",
			counts.InWindow, counts.BeforeWindow, counts.Total)
		markup = userStatsKeyboard()

	case CbMonthlyUsersStats:
		var counts stats.UserCounts
		counts, err = b.stats.Users(ctx, stats.WindowMonthly)
		text = fmt.Sprintf("📆 <b>Oylik foydalanuvchilar statistikasi</b>\n\n🆕 Bu oy qo'shilganlar: <b>%d</b>", counts.InWindow)
		markup = userStatsKeyboard()

	case CbRevenueStats:
		text = "💰 <b>Daromad statistikasi</b>\n\nKerakli davr statistikasini tanlang:\n\n⚠️ <i>Faqat yetkazilgan buyurtmalar hisobga olinadi</i>"
		markup = revenueStatsKeyboard()

	case CbDailyRevenueStats:
		var agg stats.OrderAggregate
		agg, err = b.stats.Revenue(ctx, stats.WindowDaily)
		text = fmt.Sprintf("📅 <b>1 kunlik daromad</b>\n\n💵 So'nggi 24 soat davridagi daromad: <b>%s so'm</b>%s",
			format.Price(agg.Total), revenueFootnote)
		markup = revenueStatsKeyboard()

	case CbWeeklyRevenueStats:
		var agg stats.OrderAggregate
		agg, err = b.stats.Revenue(ctx, stats.WindowWeekly)
		text = fmt.Sprintf("📊 <b>1 haftalik daromad</b>\n\n💵 So'nggi 7 kun davridagi daromad: <b>%s so'm</b>%s",
			format.Price(agg.Total), revenueFootnote)
		markup = revenueStatsKeyboard()

	case CbMonthlyRevenueStats:
		var agg stats.OrderAggregate
		agg, err = b.stats.Revenue(ctx, stats.WindowMonthly)
		text = fmt.Sprintf("📈 <b>1 oylik daromad</b>\n\n💵 Joriy oy boshidan bugungi kungacha daromad: <b>%s so'm</b>%s",
			format.Price(agg.Total), revenueFootnote)
		markup = revenueStatsKeyboard()

	case CbCancelledOrdersStats:
		text = "❌ <b>Bekor qilingan buyurtmalar statistikasi</b>\n\nKerakli davr statistikasini tanlang:"
		markup = cancelledStatsKeyboard()

	case CbDailyCancelledStats:
		var agg stats.OrderAggregate
		agg, err = b.stats.Cancelled(ctx, stats.WindowDaily)
		text = fmt.Sprintf(
			"📅 <b>1 kunlik bekor qilingan buyurtmalar</b>\n\n❌ So'nggi 24 soat davomida bekor qilingan: <b>%d</b> ta buyurtma\n💸 Bekor qilingan buyurtmalar umumiy qiymati: <b>%s so'm</b>",
			agg.Count, format.Price(agg.Total))
		markup = cancelledStatsKeyboard()

	case CbWeeklyCancelledStats:
		var agg stats.OrderAggregate
		agg, err = b.stats.Cancelled(ctx, stats.WindowWeekly)
		text = fmt.Sprintf(
			"📊 <b>1 haftalik bekor qilingan buyurtmalar</b>\n\n❌ So'nggi 7 kun davomida bekor qilingan: <b>%d</b> ta buyurtma\n💸 Bekor qilingan buyurtmalar umumiy qiymati: <b>%s so'm</b>",
			agg.Count, format.Price(agg.Total))
		markup = cancelledStatsKeyboard()

	case CbMonthlyCancelledStats:
		var agg stats.OrderAggregate
		agg, err = b.stats.Cancelled(ctx, stats.WindowMonthly)
		text = fmt.Sprintf(
			"📈 <b>1 oylik bekor qilingan buyurtmalar</b>\n\n❌ Joriy oy boshidan bugungi kungacha bekor qilingan: <b>%d</b> ta buyurtma\n💸 Bekor qilingan buyurtmalar umumiy qiymati: <b>%s so'm</b>",
			agg.Count, format.Price(agg.Total))
		markup = cancelledStatsKeyboard()
	}

	if err != nil {
		return err
	}
	return b.respond(cq, text, &markup)
}
