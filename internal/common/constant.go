package common

// AuthorizationHeaderName is the HTTP header carrying "<scheme> <token>".
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName is echoed on every response and accepted from callers.
const RequestIDHeaderName = "X-Request-ID"
