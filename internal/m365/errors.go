package m365

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// RequestError is returned for HTTP responses with a status of 400 or above.
type RequestError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *RequestError) Error() string {
	return e.Message
}

// odataMessagePaths lists where the services put the human readable message,
// most specific first.
var odataMessagePaths = []string{
	`odata\.error.message.value`,
	`error.message.value`,
	`error.error.message`,
	`error.message`,
	`error_description`,
}

func newRequestError(status int, body []byte) *RequestError {
	return &RequestError{
		StatusCode: status,
		Message:    errorMessage(status, body),
		Body:       body,
	}
}

func errorMessage(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return fmt.Sprintf("request failed with status %d %s", status, http.StatusText(status))
	}
	if gjson.Valid(trimmed) {
		for _, p := range odataMessagePaths {
			if v := gjson.Get(trimmed, p); v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}
	return trimmed
}

// IsNotFound reports whether err is a RequestError with status 404.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}

// CSOMError is the ErrorInfo of a failed CSOM ProcessQuery call.
type CSOMError struct {
	Message       string
	Code          int64
	TypeName      string
	CorrelationID string
}

func (e *CSOMError) Error() string {
	return e.Message
}

// csomError returns the error described by the first element of a CSOM
// response, or nil when ErrorInfo is empty.
func csomError(head []byte) *CSOMError {
	info := gjson.GetBytes(head, "ErrorInfo")
	if !info.IsObject() {
		return nil
	}
	return &CSOMError{
		Message:       info.Get("ErrorMessage").String(),
		Code:          info.Get("ErrorCode").Int(),
		TypeName:      info.Get("ErrorTypeName").String(),
		CorrelationID: gjson.GetBytes(head, "TraceCorrelationId").String(),
	}
}
