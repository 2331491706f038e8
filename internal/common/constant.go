package common

const (
	// AuthorizationHeader carries the bearer token on outbound requests.
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the token value in the Authorization header.
	BearerPrefix = "Bearer "

	// DateLayout is the calendar-date wire format used for observation dates.
	DateLayout = "2006-01-02"

	// Defaults applied when an entry omits optional metadata.
	DefaultUnit     = "kg"
	DefaultCurrency = "USD"
)
