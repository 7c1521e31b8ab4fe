package margin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrorMessage is the error envelope returned by the margin service.
// It is comparable, so two messages are equal when all four fields match.
type ErrorMessage struct {
	status  int
	reason  string
	message string
	typ     string
	hasType bool
}

// NewErrorMessage creates an error message without type information.
func NewErrorMessage(status int, reason, message string) ErrorMessage {
	return ErrorMessage{status: status, reason: reason, message: message}
}

// NewTypedErrorMessage creates an error message carrying a type, such as an exception class name.
func NewTypedErrorMessage(status int, reason, message, typ string) ErrorMessage {
	return ErrorMessage{status: status, reason: reason, message: message, typ: typ, hasType: true}
}

// ErrorMessageOf builds an error message from nullable decoder output.
// A nil reason or message becomes the empty string, a nil type stays absent.
func ErrorMessageOf(status int, reason, message, typ *string) ErrorMessage {
	em := ErrorMessage{status: status}
	if reason != nil {
		em.reason = *reason
	}
	if message != nil {
		em.message = *message
	}
	if typ != nil {
		em.typ = *typ
		em.hasType = true
	}
	return em
}

// Status returns the HTTP status code.
func (em ErrorMessage) Status() int {
	return em.status
}

// Reason returns the error reason, never absent.
func (em ErrorMessage) Reason() string {
	return em.reason
}

// Message returns the service error message, never absent.
func (em ErrorMessage) Message() string {
	return em.message
}

// Type returns the optional error type and whether it was present.
func (em ErrorMessage) Type() (string, bool) {
	return em.typ, em.hasType
}

func (em ErrorMessage) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "margin service error %d", em.status)
	if em.reason != "" {
		sb.WriteString(" ")
		sb.WriteString(em.reason)
	}
	if em.message != "" {
		sb.WriteString(": ")
		sb.WriteString(em.message)
	}
	if em.hasType {
		fmt.Fprintf(&sb, " [%s]", em.typ)
	}
	return sb.String()
}

func (em ErrorMessage) String() string {
	typ := "null"
	if em.hasType {
		typ = em.typ
	}
	return fmt.Sprintf("ErrorMessage{status=%d, reason=%s, message=%s, type=%s}",
		em.status, em.reason, em.message, typ)
}

type errorMessageJSON struct {
	Status  int     `json:"status"`
	Reason  *string `json:"reason"`
	Message *string `json:"message"`
	Type    *string `json:"type,omitempty"`
}

func (em ErrorMessage) MarshalJSON() ([]byte, error) {
	out := errorMessageJSON{
		Status:  em.status,
		Reason:  &em.reason,
		Message: &em.message,
	}
	if em.hasType {
		out.Type = &em.typ
	}
	return json.Marshal(out)
}

func (em *ErrorMessage) UnmarshalJSON(data []byte) error {
	var in errorMessageJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to decode error message: %w", err)
	}
	*em = ErrorMessageOf(in.Status, in.Reason, in.Message, in.Type)
	return nil
}

// DecodeErrorMessage converts a non-success response into an ErrorMessage.
// It never fails: a body that is not a JSON error envelope becomes the message text.
func DecodeErrorMessage(status int, body []byte) ErrorMessage {
	var em ErrorMessage
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "{") && json.Unmarshal([]byte(trimmed), &em) == nil {
		if em.status == 0 {
			em.status = status
		}
		return em
	}
	return NewErrorMessage(status, http.StatusText(status), trimmed)
}
