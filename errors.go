package scryfall

import (
	"fmt"
	"net/http"
	"strings"
)

// Error codes returned by the Scryfall API in the "code" field of error objects.
const (
	CodeNotFound   = "not_found"
	CodeAmbiguous  = "ambiguous"
	CodeBadRequest = "bad_request"
)

// TransportError is returned when the HTTP request itself failed
// (DNS, connection reset, timeout...). Err is the error returned by the
// underlying *http.Client, unmodified.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("couldn't query %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is an error object returned by Scryfall along with a non-2xx
// status code.
type APIError struct {
	Status   int      `json:"status"`
	Code     string   `json:"code"`
	Type     *string  `json:"type"`
	Details  string   `json:"details"`
	Warnings []string `json:"warnings"`
}

func (e *APIError) Error() string {
	var sb strings.Builder

	sb.WriteString("scryfall: ")
	if e.Code != "" {
		sb.WriteString(e.Code)
	} else {
		sb.WriteString(strings.ToLower(http.StatusText(e.Status)))
	}
	fmt.Fprintf(&sb, " (%d)", e.Status)
	if e.Details != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Details)
	}

	return sb.String()
}

// IsNotFound reports whether the requested object doesn't exist.
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound || e.Code == CodeNotFound
}

// IsAmbiguous reports whether a fuzzy name lookup matched more than one card.
func (e *APIError) IsAmbiguous() bool {
	return e.Code == CodeAmbiguous
}

// DecodeError is returned when a response body doesn't match the shape of
// the expected record. Field is the JSON path of the first offending field,
// when it can be determined.
type DecodeError struct {
	Type  string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("couldn't decode %s: field %s: %v", e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("couldn't decode %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError is returned when a request descriptor carries a value that
// can't be turned into a query string, such as an unknown sort order.
type EncodeError struct {
	Field string
	Value string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}
