package middleware

// gin context keys set by this package
const (
	KeyRequestID = "request_id"
	KeyClientIP  = "client_ip"
	KeyClaims    = "claims"
)
