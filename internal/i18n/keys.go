// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError  = "error.internal"
	KeyRouteNotFound  = "error.route_not_found"
	KeyRateLimited    = "error.rate_limited"
	KeyBodyTooLarge   = "error.body_too_large"
	KeyInvalidID      = "error.invalid_id"
	KeyInvalidRequest = "validation.invalid"
	KeyFieldRequired  = "validation.required"

	// Authentication
	KeyAuthRequired        = "auth.required"
	KeyAuthInvalidToken    = "auth.invalid_token"
	KeyAuthTokenExpired    = "auth.token_expired"
	KeyAuthMissingFields   = "auth.missing_fields"
	KeyAuthInvalidRole     = "auth.invalid_role"
	KeyAuthUserExists      = "auth.user_exists"
	KeyAuthUserNotFound    = "auth.user_not_found"
	KeyAuthInvalidPassword = "auth.invalid_password"
	KeyAuthArtisanOnly     = "auth.artisan_only"
	KeyUserNotFound        = "user.not_found"

	// Products
	KeyProductNotFound = "product.not_found"

	// Images
	KeyImageRequired    = "image.required"
	KeyImageUnavailable = "image.store_unavailable"

	// Orders
	KeyOrderNotFound          = "order.not_found"
	KeyOrderNumberTaken       = "order.number_taken"
	KeyOrderInvalidTransition = "order.invalid_transition"
	KeyOrderForbidden         = "order.forbidden"
	KeyOrderPlaced            = "order.placed"
	KeyOrderStatusChanged     = "order.status_changed"

	// Wallet
	KeyWalletInsufficientFunds = "wallet.insufficient_funds"
	KeyWalletFundsAdded        = "wallet.funds_added"
	KeyWalletLimitExceeded     = "wallet.limit_exceeded"

	// Notifications
	KeyNotificationNotFound = "notification.not_found"
)
