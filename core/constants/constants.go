package constants

// Context keys
const (
	ContextTokenData = "token_data"
)

// Roles carried in token claims
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Database tuning
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Pagination defaults
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// Cache TTLs (seconds)
const (
	AvailabilityCacheTTL = 15
)

// Booking codes: BK-YYYYMMDD-XXXXXX
const (
	BookingCodePrefix   = "BK"
	BookingCodeAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	BookingCodeLength   = 6
)
