package notifier

// Common error types shared by the outbound notification channels.

// ClientError represents a 4xx client error from a remote API.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError represents a 5xx server error from a remote API.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// truncate shortens text to maxLength characters.
// If truncated, suffix is appended to indicate continuation.
func truncate(text string, maxLength int, suffix string) string {
	if len(text) <= maxLength {
		return text
	}
	return text[:maxLength] + suffix
}
