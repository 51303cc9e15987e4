package models

// Error codes form a closed catalog per category. Each category keeps a _999
// fallback member for failures that do not map to a specific business rule.

// Authentication / authorization (AUTH0xx).
const (
	CodeAuthInvalidCredentials = "AUTH001"
	CodeAuthInvalidToken       = "AUTH002"
	CodeAuthExpiredToken       = "AUTH003"
	CodeAuthUnexpected         = "AUTH999"
)

// Material availability checks (MAT_AVAIL_0xx).
const (
	CodeMatAvailInvalidInput     = "MAT_AVAIL_001"
	CodeMatAvailMaterialNotFound = "MAT_AVAIL_002"
	CodeMatAvailPlantNotFound    = "MAT_AVAIL_003"
	CodeMatAvailUnexpected       = "MAT_AVAIL_999"
)

// Material master creation (MAT_CREATE_0xx).
const (
	CodeMatCreateMissingID     = "MAT_CREATE_001"
	CodeMatCreateDuplicate     = "MAT_CREATE_002"
	CodeMatCreateMissingFields = "MAT_CREATE_003"
	CodeMatCreateInvalidPlant  = "MAT_CREATE_004"
	CodeMatCreateNegativeStock = "MAT_CREATE_005"
	CodeMatCreateUnexpected    = "MAT_CREATE_999"
)

// Purchase requisition creation and cancellation (PR0xx).
const (
	CodePRMissingFields     = "PR001"
	CodePRMaterialCheck     = "PR002"
	CodePRPlantNotFound     = "PR003"
	CodePRInvalidQuantity   = "PR004"
	CodePRInsufficientStock = "PR005"
	CodePRInvalidDate       = "PR006"
	CodePRNotFound          = "PR007"
	CodePRNotCancellable    = "PR008"
	CodePRUnexpected        = "PR999"
)

// Purchase order creation (PO0xx).
const (
	CodePOMissingFields  = "PO001"
	CodePOPRNotFound     = "PO002"
	CodePOAlreadyOrdered = "PO003"
	CodePOVendorNotFound = "PO004"
	CodePOUnexpected     = "PO999"
)

// Document status checks (DOC0xx).
const (
	CodeDocInvalidType = "DOC001"
	CodeDocNotFound    = "DOC002"
	CodeDocUnexpected  = "DOC999"
)

// Request dispatch.
const (
	CodeUnsupportedOperation = "OPERATION_001"
	CodeRequestUnexpected    = "REQUEST_999"
)
