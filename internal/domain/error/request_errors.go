package error

// RequestErrorCode defines error codes that are not tied to a single domain area.
type RequestErrorCode string

const (
	// ErrCodeRateLimited is returned when a client exceeds the write rate limit.
	ErrCodeRateLimited RequestErrorCode = "REQ-020003"
	// ErrCodeInvalidID is returned when a path ID is not a positive integer.
	ErrCodeInvalidID RequestErrorCode = "REQ-010001"
	// ErrCodeInvalidQuery is returned when a query parameter cannot be parsed.
	ErrCodeInvalidQuery RequestErrorCode = "REQ-010002"
)
