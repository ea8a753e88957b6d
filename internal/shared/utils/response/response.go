// Package response defines the JSON envelope every driftwood endpoint
// returns, success and error alike, so clients can parse one shape.
package response

import "github.com/gin-gonic/gin"

// StandardApiResponse is the envelope for all API responses. Data carries
// the payload on success; Errors carries validation or failure detail.
type StandardApiResponse struct {
	Status     string      `json:"status"` // "success" or "error"
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}

// RespondJSON writes the envelope with the given HTTP status code.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
