package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
	"github.com/massfitdev/massfit-bot/pkg/format"
)

const (
	btnOtherProducts = "🥥 Boshqa mahsulotlar"
	btnWeightLoss    = "🌿 Vazn yo'qotish"
	btnWeightGain    = "⚖️ Vazn olish"
	btnMyOrders      = "📦 Mening buyurtmalarim"
	btnSendContact   = "📱 Telefon raqamni yuborish"
	btnTypePhone     = "✍️ Telefon raqamni yozish"
	btnSendLocation  = "📍 Lokatsiyani jo'natish"
)

const adminPanelText = "🔐 <b>Admin Panelga xush kelibsiz</b>\n\n" +
	"Bu yerda siz mahsulotlarni boshqarishingiz va statistikani ko'rishingiz mumkin.\n" +
	"Quyidagi variantlardan birini tanlang:"

const adminDeniedText = "⛔️ Sizda admin panelga kirish huquqi yo'q."

const mainMenuText = "🥗 <b>MassFit - Shaxsiy ovqatlanish yordamchingizga xush kelibsiz!</b>\n\n" +
	"Biz sizga to'g'ri ovqatlanish orqali salomatlik va fitnes maqsadlaringizga erishishda yordam beramiz. " +
	"Bizning bot sizning ehtiyojlaringizga moslashtirilgan shaxsiy ovqatlanish rejalari va professional tavsiyalarni taqdim etadi.\n\n" +
	"✨ <b>Biz taklif qilamiz:</b>\n" +
	"• Vazn yo'qotish yoki mushak massasini oshirish uchun maxsus ovqatlanish rejalari\n" +
	"• Muvozanatli ovqatlanish bo'yicha tavsiyalar\n" +
	"• Sog'lom retseptlar va ovqatlanish g'oyalari\n" +
	"• Professional parhez bo'yicha yo'riqnoma\n" +
	"• Buyurtmalaringiz va taraqqiyotingizni kuzatish\n\n" +
	"Boshlash uchun maqsadingizni tanlang! 👇"

const phoneRequestText = "Assalomu alaykum! Telefon raqamingizni yuboring.\n\n" +
	"📱 Kontakt yuborish tugmasini bosing yoki\n" +
	"✍️ Qo'lda yozish tugmasini bosing.\n\n" +
	"Bu siz bilan bog'lanishimiz uchun kerak."

const phoneManualPromptText = "✍️ <b>Telefon raqamini kiriting</b>\n\n" +
	"Iltimos, telefon raqamingizni +998 XX XXX XXXX formatida kiriting.\n\n" +
	"Masalan: +998 90 123 4567"

const phoneInvalidText = "❌ <b>Noto'g'ri format!</b>\n\n" +
	"Iltimos, telefon raqamni to'g'ri formatda kiriting:\n" +
	"+998 XX XXX XXXX\n\n" +
	"Masalan: +998 90 123 4567"

const (
	noDescriptionText = "Tavsif yo'q"
	notProvidedText   = "Berilmagan"
	skippedText       = "Otkazib yuborildi"
)

var categoryEmojis = map[enums.ProductCategory]string{
	enums.ProductCategoryWeightLoss: "🔻",
	enums.ProductCategoryWeightGain: "🔺",
	enums.ProductCategoryBreakfast:  "🍳",
	enums.ProductCategoryDetox:      "🥤",
	enums.ProductCategoryLunch:      "🍽",
	enums.ProductCategoryFruitMix:   "🍓",
	enums.ProductCategoryDinner:     "🌙",
}

var categoryNames = map[enums.ProductCategory]string{
	enums.ProductCategoryWeightLoss: "Vazn yo'qotish",
	enums.ProductCategoryWeightGain: "Vazn olish",
	enums.ProductCategoryBreakfast:  "Nonushta",
	enums.ProductCategoryDetox:      "Detox",
	enums.ProductCategoryLunch:      "Tushliklar",
	enums.ProductCategoryFruitMix:   "FruitMix",
	enums.ProductCategoryDinner:     "Kechki ovqat",
}

// CategoryLabel is the picker-button text for a category tag.
func CategoryLabel(category enums.ProductCategory) string {
	return categoryEmojis[category] + " " + categoryNames[category]
}

func categoryHeader(category enums.ProductCategory, hasProducts bool) string {
	var description string
	switch category {
	case enums.ProductCategoryWeightLoss:
		description = "Bu toifadagi mahsulotlar tanangizning ortiqcha vaznini yo'qotishga yordam beradi."
	case enums.ProductCategoryWeightGain:
		description = "Bu toifadagi mahsulotlar tanangizga sog'lom vazn va mushak massasini oshirishga yordam beradi."
	default:
		description = "Bu toifadagi mahsulotlar sog'lom ovqatlanishingiz uchun tayyorlangan."
	}

	header := fmt.Sprintf("%s <b>%s mahsulotlari</b>\n\n%s\n\n",
		categoryEmojis[category], categoryNames[category], description)
	if !hasProducts {
		return header + "Hozircha bu toifada mahsulotlar mavjud emas."
	}
	return header + "Batafsil ma'lumot olish uchun mahsulotni tanlang:"
}

const otherProductsText = "🥥 <b>Boshqa mahsulotlar</b>\n\n" +
	"Quyidagi toifalardan birini tanlang:"

func userProductDetailText(p *models.Product) string {
	description := "Tavsif berilmagan"
	if p.Description != nil && *p.Description != "" {
		description = *p.Description
	}
	return fmt.Sprintf(
		"📦 <b>%s</b>\n\n💰 Narxi: %s so'm\n📝 Tavsif: %s\n\nBu mahsulotni buyurtma qilish uchun savatga qo'shing!",
		p.Name, format.Price(p.Price), description)
}

func quantityAdjustText(p *models.Product, qty int) string {
	total := p.Price.Mul(decimal.NewFromInt(int64(qty)))
	return fmt.Sprintf(
		"📦 <b>%s</b>\n\n💰 Bir dona narxi: %s so'm\n📊 Miqdori: %d\n💵 Jami: %s so'm\n\nMiqdorni sozlang va savatga saqlang:",
		p.Name, format.Price(p.Price), qty, format.Price(total))
}

func basketLines(items []models.BasketItem) string {
	var b strings.Builder
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&b, "• %s\n  💰 %s so'm x %d = %s so'm\n\n",
			item.Product.Name, format.Price(item.Product.Price), item.Quantity, format.Price(lineTotal))
	}
	return b.String()
}

func orderItemLines(items []models.OrderItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "• %s\n  💰 %s so'm x %d = %s so'm\n\n",
			item.ProductName, format.Price(item.ProductPrice), item.Quantity, format.Price(item.LineTotal()))
	}
	return b.String()
}

func basketViewText(items []models.BasketItem, total decimal.Decimal) string {
	return fmt.Sprintf(
		"🛒 <b>Mening savatim</b>\n\n%s━━━━━━━━━━━━━━━\n💵 <b>Jami: %s so'm</b>",
		basketLines(items), format.Price(total))
}

const emptyBasketText = "🛒 <b>Mening savatim</b>\n\n" +
	"Savatingiz bo'sh.\n" +
	"Buyurtma yaratish uchun mahsulotlarni savatga qo'shing!"

func orderDeliveryInfo(order *models.Order) string {
	switch order.DeliveryType {
	case enums.DeliveryTypeDelivery:
		info := "🚚 Yetkazib berish turi: <b>Yetkazib berish</b>\n"
		if order.DeliveryAddress != nil && *order.DeliveryAddress != "" {
			info += fmt.Sprintf("🏠 Manzil: %s\n", *order.DeliveryAddress)
		} else if order.DeliveryLatitude != nil && order.DeliveryLongitude != nil {
			info += "📍 Joylashuv koordinatalari yuborilgan\n"
		}
		return info
	case enums.DeliveryTypePickup:
		if order.Branch != nil {
			return fmt.Sprintf("🏢 Olib ketish filiali: <b>%s</b>\n📍 Filial manzili: %s\n",
				order.Branch.Name, order.Branch.Location)
		}
	}
	return ""
}

func groupOrderText(order *models.Order, user *models.User) string {
	phone := notProvidedText
	if user.PhoneNumber != nil && *user.PhoneNumber != "" {
		phone = *user.PhoneNumber
	}

	var status string
	switch order.Status {
	case enums.OrderStatusDelivered:
		status = "<b>✅ YETKAZILDI</b>"
	case enums.OrderStatusCancelled:
		status = "<b>❌ BEKOR QILINDI</b>"
	default:
		status = order.Status.String()
	}

	header := "🆕 <b>Yangi Buyurtma #%d</b>"
	if order.Status.IsTerminal() {
		header = "🆕 <b>Buyurtma #%d</b>"
	}

	return fmt.Sprintf(header+"\n\n"+
		"👤 Mijoz: %s\n"+
		"📱 Telefon: %s\n"+
		"🆔 Foydalanuvchi ID: %d\n"+
		"%s\n"+
		"📦 <b>Buyurtma mahsulotlari:</b>\n"+
		"%s"+
		"━━━━━━━━━━━━━━━\n"+
		"💵 <b>Jami: %s so'm</b>\n"+
		"📊 Holati: %s",
		order.ID, user.DisplayName(), phone, user.TgID,
		orderDeliveryInfo(order), orderItemLines(order.Items),
		format.Price(order.TotalPrice), status)
}

func statusLabel(status enums.OrderStatus) string {
	if status == enums.OrderStatusDelivered {
		return "YETKAZILDI"
	}
	return "BEKOR QILINDI"
}

func statusEmoji(status enums.OrderStatus) string {
	if status == enums.OrderStatusDelivered {
		return "✅"
	}
	return "❌"
}

func customerStatusText(orderID int64, status enums.OrderStatus) string {
	return fmt.Sprintf("%s <b>Buyurtma #%d holati yangilandi</b>\n\nBuyurtma holati yangilandi: <b>%s</b>",
		statusEmoji(status), orderID, statusLabel(status))
}

const broadcastHeader = "📢 <b>Admin habari</b>\n\n"

const broadcastPromptText = "📢 <b>Barcha foydalanuvchilarga habar yuborish</b>\n\n" +
	"Iltimos, yubormoqchi bo'lgan habarni yuboring:\n" +
	"• Matn\n" +
	"• Rasm\n" +
	"• Video\n" +
	"• Hujjat\n" +
	"• Audio va boshqalar"

func broadcastConfirmText(preview string, recipients int) string {
	return fmt.Sprintf(
		"📢 <b>Habar tasdiqlash</b>\n\nYuborilgan habar:\n%s\n\n👥 Habar yuboriladi: <b>%d</b> ta foydalanuvchiga\n\nHabar yuborishni tasdiqlaysizmi?",
		preview, recipients)
}

func broadcastResultText(sent, failed, total int) string {
	return fmt.Sprintf(
		"✅ <b>Habar yuborish yakunlandi!</b>\n\n📊 Natija:\n• Muvaffaqiyatli yuborildi: %d\n• Xatolik yuz berdi: %d\n• Jami: %d",
		sent, failed, total)
}
