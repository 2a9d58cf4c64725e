package http

const (
	HeaderContentType = "Content-Type"
	HeaderValueJson   = "application/json"
	HeaderRequestID   = "X-Request-Id"
	HeaderSessionID   = "X-Session-Id"
)

const SessionDefault = "default"
