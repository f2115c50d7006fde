package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/massfitdev/massfit-bot/pkg/enums"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

// CallbackKind tags the parsed callback variant.
type CallbackKind string

const (
	// Admin panel navigation.
	CbAdminPanel         CallbackKind = "admin_panel"
	CbAdminBackMain      CallbackKind = "admin_back_main"
	CbAdminViewProducts  CallbackKind = "admin_view_products"
	CbAdminAddProduct    CallbackKind = "admin_add_product"
	CbAdminEditProduct   CallbackKind = "admin_edit_product"
	CbAdminDeleteProduct CallbackKind = "admin_delete_product"
	CbAdminBranches      CallbackKind = "admin_branches"
	CbAdminViewBranches  CallbackKind = "admin_view_branches"
	CbAdminAddBranch     CallbackKind = "admin_add_branch"
	CbAdminEditBranch    CallbackKind = "admin_edit_branch"
	CbAdminDeleteBranch  CallbackKind = "admin_delete_branch"
	CbAdminStatistics    CallbackKind = "admin_statistics"
	CbAdminBroadcast     CallbackKind = "admin_broadcast"

	// Admin product management.
	CbProductView          CallbackKind = "product_view"
	CbProductEdit          CallbackKind = "product_edit"
	CbProductDelete        CallbackKind = "product_delete"
	CbProductConfirmDelete CallbackKind = "product_confirm_delete"
	CbEditName             CallbackKind = "edit_name"
	CbEditPrice            CallbackKind = "edit_price"
	CbEditType             CallbackKind = "edit_type"
	CbEditDesc             CallbackKind = "edit_desc"
	CbEditImage            CallbackKind = "edit_image"
	CbTypePick             CallbackKind = "type"
	CbEditTypePick         CallbackKind = "edittype"

	// Admin branch management.
	CbBranchView          CallbackKind = "branch_view"
	CbBranchEdit          CallbackKind = "branch_edit"
	CbBranchDelete        CallbackKind = "branch_delete"
	CbBranchConfirmDelete CallbackKind = "branch_confirm_delete"
	CbEditBranchName      CallbackKind = "edit_branch_name"
	CbEditBranchLocation  CallbackKind = "edit_branch_location"
	CbEditBranchDesc      CallbackKind = "edit_branch_desc"
	CbEditBranchImage     CallbackKind = "edit_branch_image"

	// Admin statistics.
	CbUserStats             CallbackKind = "user_stats"
	CbAllUsersStats         CallbackKind = "all_users_stats"
	CbWeeklyUsersStats      CallbackKind = "weekly_users_stats"
	CbMonthlyUsersStats     CallbackKind = "monthly_users_stats"
	CbRevenueStats          CallbackKind = "revenue_stats"
	CbDailyRevenueStats     CallbackKind = "daily_revenue_stats"
	CbWeeklyRevenueStats    CallbackKind = "weekly_revenue_stats"
	CbMonthlyRevenueStats   CallbackKind = "monthly_revenue_stats"
	CbCancelledOrdersStats  CallbackKind = "cancelled_orders_stats"
	CbDailyCancelledStats   CallbackKind = "daily_cancelled_stats"
	CbWeeklyCancelledStats  CallbackKind = "weekly_cancelled_stats"
	CbMonthlyCancelledStats CallbackKind = "monthly_cancelled_stats"

	// Admin broadcast.
	CbBroadcastConfirm CallbackKind = "broadcast_confirm"
	CbBroadcastCancel  CallbackKind = "broadcast_cancel"

	// Storefront.
	CbUserProduct   CallbackKind = "user_product"
	CbBackToType    CallbackKind = "back_to"
	CbCategory      CallbackKind = "category"
	CbAddBasket     CallbackKind = "add_basket"
	CbQtyInc        CallbackKind = "qty_inc"
	CbQtyDec        CallbackKind = "qty_dec"
	CbQtyDisplay    CallbackKind = "qty_display"
	CbSaveBasket    CallbackKind = "save_basket"
	CbBasketInc     CallbackKind = "basket_inc"
	CbBasketDec     CallbackKind = "basket_dec"
	CbBasketDisplay CallbackKind = "basket_display"

	// Checkout.
	CbConfirmOrderPrompt      CallbackKind = "confirm_order_prompt"
	CbOrderPickup             CallbackKind = "order_pickup"
	CbOrderDelivery           CallbackKind = "order_delivery"
	CbDeliveryLocation        CallbackKind = "delivery_location"
	CbDeliveryText            CallbackKind = "delivery_text"
	CbPickupBranch            CallbackKind = "pickup_branch"
	CbConfirmOrderYesDelivery CallbackKind = "confirm_order_yes_delivery"
	CbConfirmOrderYesPickup   CallbackKind = "confirm_order_yes_pickup"
	CbConfirmOrderNo          CallbackKind = "confirm_order_no"
	CbOrderStatus             CallbackKind = "order_status"

	// Subscription gate.
	CbCheckSubscription CallbackKind = "check_subscription"
)

// Callback is the parsed form of inline-button data. Only the fields the
// kind needs are populated.
type Callback struct {
	Kind     CallbackKind
	ID       int64
	Qty      int
	Category enums.ProductCategory
	Status   enums.OrderStatus
}

var staticCallbacks = map[string]CallbackKind{
	"admin_panel":                CbAdminPanel,
	"admin_back_main":            CbAdminBackMain,
	"admin_view_products":        CbAdminViewProducts,
	"admin_add_product":          CbAdminAddProduct,
	"admin_edit_product":         CbAdminEditProduct,
	"admin_delete_product":       CbAdminDeleteProduct,
	"admin_branches":             CbAdminBranches,
	"admin_view_branches":        CbAdminViewBranches,
	"admin_add_branch":           CbAdminAddBranch,
	"admin_edit_branch":          CbAdminEditBranch,
	"admin_delete_branch":        CbAdminDeleteBranch,
	"admin_statistics":           CbAdminStatistics,
	"admin_broadcast":            CbAdminBroadcast,
	"user_stats":                 CbUserStats,
	"all_users_stats":            CbAllUsersStats,
	"weekly_users_stats":         CbWeeklyUsersStats,
	"monthly_users_stats":        CbMonthlyUsersStats,
	"revenue_stats":              CbRevenueStats,
	"daily_revenue_stats":        CbDailyRevenueStats,
	"weekly_revenue_stats":       CbWeeklyRevenueStats,
	"monthly_revenue_stats":      CbMonthlyRevenueStats,
	"cancelled_orders_stats":     CbCancelledOrdersStats,
	"daily_cancelled_stats":      CbDailyCancelledStats,
	"weekly_cancelled_stats":     CbWeeklyCancelledStats,
	"monthly_cancelled_stats":    CbMonthlyCancelledStats,
	"broadcast_confirm":          CbBroadcastConfirm,
	"broadcast_cancel":           CbBroadcastCancel,
	"qty_display":                CbQtyDisplay,
	"basket_display":             CbBasketDisplay,
	"confirm_order_prompt":       CbConfirmOrderPrompt,
	"order_pickup":               CbOrderPickup,
	"order_delivery":             CbOrderDelivery,
	"delivery_location":          CbDeliveryLocation,
	"delivery_text":              CbDeliveryText,
	"confirm_order_yes_delivery": CbConfirmOrderYesDelivery,
	"confirm_order_yes_pickup":   CbConfirmOrderYesPickup,
	"confirm_order_no":           CbConfirmOrderNo,
	"check_subscription":         CbCheckSubscription,
}

// idCallbacks are "<prefix>_<id>" formats. Longer prefixes must be matched
// before their substrings, so the parser walks this slice in order.
var idCallbacks = []struct {
	prefix string
	kind   CallbackKind
}{
	{"product_confirm_delete_", CbProductConfirmDelete},
	{"product_view_", CbProductView},
	{"product_edit_", CbProductEdit},
	{"product_delete_", CbProductDelete},
	{"branch_confirm_delete_", CbBranchConfirmDelete},
	{"branch_view_", CbBranchView},
	{"branch_edit_", CbBranchEdit},
	{"branch_delete_", CbBranchDelete},
	{"edit_branch_name_", CbEditBranchName},
	{"edit_branch_location_", CbEditBranchLocation},
	{"edit_branch_desc_", CbEditBranchDesc},
	{"edit_branch_image_", CbEditBranchImage},
	{"edit_name_", CbEditName},
	{"edit_price_", CbEditPrice},
	{"edit_type_", CbEditType},
	{"edit_desc_", CbEditDesc},
	{"edit_image_", CbEditImage},
	{"user_product_", CbUserProduct},
	{"add_basket_", CbAddBasket},
	{"pickup_branch_", CbPickupBranch},
}

// qtyCallbacks are "<prefix>_<id>_<qty>" formats.
var qtyCallbacks = []struct {
	prefix string
	kind   CallbackKind
}{
	{"qty_inc_", CbQtyInc},
	{"qty_dec_", CbQtyDec},
	{"save_basket_", CbSaveBasket},
	{"basket_inc_", CbBasketInc},
	{"basket_dec_", CbBasketDec},
}

// ParseCallback decodes inline-button data into its typed form. Unknown or
// malformed data yields a validation error; the router answers those with a
// generic alert instead of guessing.
func ParseCallback(data string) (Callback, error) {
	if kind, ok := staticCallbacks[data]; ok {
		return Callback{Kind: kind}, nil
	}

	for _, c := range idCallbacks {
		if rest, ok := strings.CutPrefix(data, c.prefix); ok {
			id, err := strconv.ParseInt(rest, 10, 64)
			if err != nil {
				return Callback{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed callback id")
			}
			return Callback{Kind: c.kind, ID: id}, nil
		}
	}

	for _, c := range qtyCallbacks {
		if rest, ok := strings.CutPrefix(data, c.prefix); ok {
			idRaw, qtyRaw, found := strings.Cut(rest, "_")
			if !found {
				return Callback{}, pkgerrors.New(pkgerrors.CodeValidation, "malformed quantity callback")
			}
			id, err := strconv.ParseInt(idRaw, 10, 64)
			if err != nil {
				return Callback{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed callback id")
			}
			qty, err := strconv.Atoi(qtyRaw)
			if err != nil {
				return Callback{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed callback quantity")
			}
			return Callback{Kind: c.kind, ID: id, Qty: qty}, nil
		}
	}

	// Category suffixes contain underscores, so these parse by prefix.
	if rest, ok := strings.CutPrefix(data, "edittype_"); ok {
		// "<category>_<id>", category itself may hold underscores.
		cut := strings.LastIndex(rest, "_")
		if cut < 1 {
			return Callback{}, pkgerrors.New(pkgerrors.CodeValidation, "malformed edit-type callback")
		}
		category, err := enums.ParseProductCategory(rest[:cut])
		if err != nil {
			return Callback{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed callback category")
		}
		id, err := strconv.ParseInt(rest[cut+1:], 10, 64)
		if err != nil {
			return Callback{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed callback id")
		}
		return Callback{Kind: CbEditTypePick, ID: id, Category: category}, nil
	}
	if rest, ok := strings.CutPrefix(data, "type_"); ok {
		category, err := enums.ParseProductCategory(rest)
		if err != nil {
			return Callback{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed callback category")
		}
		return Callback{Kind: CbTypePick, Category: category}, nil
	}
	if rest, ok := strings.CutPrefix(data, "back_to_"); ok {
		category, err := enums.ParseProductCategory(rest)
		if err != nil {
			return Callback{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed callback category")
		}
		return Callback{Kind: CbBackToType, Category: category}, nil
	}
	if rest, ok := strings.CutPrefix(data, "category_"); ok {
		category, err := enums.ParseProductCategory(rest)
		if err != nil {
			return Callback{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed callback category")
		}
		return Callback{Kind: CbCategory, Category: category}, nil
	}
	if rest, ok := strings.CutPrefix(data, "order_status_"); ok {
		idRaw, statusRaw, found := strings.Cut(rest, "_")
		if !found {
			return Callback{}, pkgerrors.New(pkgerrors.CodeValidation, "malformed order-status callback")
		}
		id, err := strconv.ParseInt(idRaw, 10, 64)
		if err != nil {
			return Callback{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed callback id")
		}
		status, err := enums.ParseOrderStatus(statusRaw)
		if err != nil {
			return Callback{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed callback status")
		}
		return Callback{Kind: CbOrderStatus, ID: id, Status: status}, nil
	}

	return Callback{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown callback %q", data))
}

// Encode renders the callback back to its wire form. Every keyboard builder
// goes through this so parser and builders cannot drift apart.
func (c Callback) Encode() string {
	switch c.Kind {
	case CbTypePick:
		return "type_" + c.Category.String()
	case CbEditTypePick:
		return fmt.Sprintf("edittype_%s_%d", c.Category, c.ID)
	case CbBackToType:
		return "back_to_" + c.Category.String()
	case CbCategory:
		return "category_" + c.Category.String()
	case CbOrderStatus:
		return fmt.Sprintf("order_status_%d_%s", c.ID, c.Status)
	case CbQtyInc, CbQtyDec, CbSaveBasket, CbBasketInc, CbBasketDec:
		return fmt.Sprintf("%s_%d_%d", c.Kind, c.ID, c.Qty)
	case CbProductView, CbProductEdit, CbProductDelete, CbProductConfirmDelete,
		CbBranchView, CbBranchEdit, CbBranchDelete, CbBranchConfirmDelete,
		CbEditName, CbEditPrice, CbEditType, CbEditDesc, CbEditImage,
		CbEditBranchName, CbEditBranchLocation, CbEditBranchDesc, CbEditBranchImage,
		CbUserProduct, CbAddBasket, CbPickupBranch:
		return fmt.Sprintf("%s_%d", c.Kind, c.ID)
	default:
		return string(c.Kind)
	}
}
