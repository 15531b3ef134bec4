package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Clients map these codes to display messages; the message field is a
// fallback only.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"       // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthAdminCodeInvalid   = "AUTH_ADMIN_CODE_INVALID" // missing, wrong or already used
	AuthWeakPassword       = "AUTH_WEAK_PASSWORD"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_/VENDOR_/CATEGORY_) ====================
	ProductNotFound    = "PRODUCT_NOT_FOUND"
	ProductOutOfStock  = "PRODUCT_OUT_OF_STOCK"
	VendorNotFound     = "VENDOR_NOT_FOUND"
	CategoryNotFound   = "CATEGORY_NOT_FOUND"
	CatalogInvalidSort = "CATALOG_INVALID_SORT"

	// ==================== Cart (CART_) ====================
	CartEmpty           = "CART_EMPTY"
	CartLineNotFound    = "CART_LINE_NOT_FOUND"
	CartInvalidQuantity = "CART_INVALID_QUANTITY"

	// ==================== Favorites (FAVORITE_) ====================
	FavoriteNotFound = "FAVORITE_NOT_FOUND"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound = "ORDER_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
