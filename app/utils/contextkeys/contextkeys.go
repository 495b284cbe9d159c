package contextkeys

// RequestId keys the per-request correlation id stored in a request context.
type RequestId struct{}
