package middleware

// Gin context keys set by this package.
const (
	KeyRequestID = "request_id"
	KeyRealIP    = "real_ip"
	KeyUserID    = "userID"
	KeyIdentity  = "identity"
	keyPayload   = "payload"
)
