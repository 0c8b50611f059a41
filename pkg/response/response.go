// Package response defines the JSON envelope every API endpoint returns.
// Clients switch on the status field; data and error are mutually exclusive.
package response

// Response is the uniform body shape for both success and error replies.
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // mirrors the HTTP status
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success wraps payload data in a success envelope.
func Success(statusCode int, data interface{}) Response {
	return Response{Status: "success", StatusCode: statusCode, Data: data}
}

// Error wraps a user-facing message in an error envelope. The message is
// shown to API consumers, so services keep internal detail out of it.
func Error(statusCode int, msg string) Response {
	return Response{Status: "error", StatusCode: statusCode, Error: msg}
}
