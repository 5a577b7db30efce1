package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ResponseError describes a non-2xx response in terms a user can be shown.
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("status %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// ParseResponseError reads and closes the body of a non-2xx response and
// extracts the error message. Three body shapes are recognised:
//
//	{"error":{"code":"INVALID_INPUT","message":"..."}}
//	{"error":"..."}
//	{"message":"..."}
//
// Anything else is reported verbatim, or as the status text when empty.
func ParseResponseError(resp *http.Response) *ResponseError {
	defer func() { _ = resp.Body.Close() }()

	out := &ResponseError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		out.Message = fmt.Sprintf("%s (failed to read body: %v)", http.StatusText(resp.StatusCode), err)
		return out
	}

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		var structured struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		var plain string
		switch {
		case len(envelope.Error) > 0 && json.Unmarshal(envelope.Error, &structured) == nil && structured.Message != "":
			out.Code = structured.Code
			out.Message = structured.Message
			return out
		case len(envelope.Error) > 0 && json.Unmarshal(envelope.Error, &plain) == nil && plain != "":
			out.Message = plain
			return out
		case envelope.Message != "":
			out.Message = envelope.Message
			return out
		}
	}

	out.Message = strings.TrimSpace(string(body))
	if out.Message == "" {
		out.Message = http.StatusText(resp.StatusCode)
	}
	return out
}

// IsClientError reports whether status is a 4xx code.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
