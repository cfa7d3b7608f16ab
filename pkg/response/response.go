package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/askstack/askstack-api/pkg/apierr"
)

// APIResponse is the envelope every endpoint writes. Errors carries the
// structured error list clients display directly.
type APIResponse[T any] struct {
	Status    int           `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id"`
	Success   bool          `json:"success"`
	Message   string        `json:"message,omitempty"`
	Data      T             `json:"data,omitempty"`
	Meta      interface{}   `json:"meta,omitempty"`
	Errors    []apierr.Item `json:"errors,omitempty"`
}

// OK writes a success envelope.
func OK[T any](c *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

// Fail writes the structured error list for err using its mapped status.
func Fail(c *gin.Context, err error) {
	ae := apierr.From(err)
	FailWith(c, ae.HTTPStatus(), ae.Items)
}

// FailWith writes an explicit error list.
func FailWith(c *gin.Context, status int, items []apierr.Item) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   false,
		Errors:    items,
	})
}

// AbortWith writes an error list and stops the handler chain; meant for
// middleware.
func AbortWith(c *gin.Context, status int, msg string) {
	c.Abort()
	FailWith(c, status, []apierr.Item{{Msg: msg}})
}
