package bot

// Session step identifiers. The step plus its captured fields live in the
// Redis-backed session state keyed by chat ID.
const (
	stepAwaitingPhone = "awaiting_phone"

	stepProductName        = "product_name"
	stepProductPrice       = "product_price"
	stepProductCategory    = "product_category"
	stepProductDescription = "product_description"
	stepProductImage       = "product_image"

	stepEditProductName        = "edit_product_name"
	stepEditProductPrice       = "edit_product_price"
	stepEditProductDescription = "edit_product_description"
	stepEditProductImage       = "edit_product_image"

	stepBranchName        = "branch_name"
	stepBranchLocation    = "branch_location"
	stepBranchDescription = "branch_description"
	stepBranchImage       = "branch_image"

	stepEditBranchName        = "edit_branch_name"
	stepEditBranchLocation    = "edit_branch_location"
	stepEditBranchDescription = "edit_branch_description"
	stepEditBranchImage       = "edit_branch_image"

	stepBroadcastMessage      = "broadcast_message"
	stepBroadcastConfirmation = "broadcast_confirmation"

	stepDeliveryLocation = "delivery_location"
	stepDeliveryAddress  = "delivery_address"
)

// Session field keys.
const (
	fieldProductID   = "product_id"
	fieldBranchID    = "branch_id"
	fieldName        = "name"
	fieldPrice       = "price"
	fieldCategory    = "category"
	fieldDescription = "description"
	fieldLocation    = "location"

	fieldDeliveryType = "delivery_type"
	fieldLatitude     = "latitude"
	fieldLongitude    = "longitude"
	fieldAddress      = "address"

	fieldBroadcastType    = "broadcast_type"
	fieldBroadcastText    = "broadcast_text"
	fieldBroadcastFileID  = "broadcast_file_id"
	fieldBroadcastCaption = "broadcast_caption"
)
