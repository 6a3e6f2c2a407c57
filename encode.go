package scryfall

import (
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

// endpoint joins path segments, escaping each one.
func endpoint(segments ...string) string {
	var sb strings.Builder

	for _, segment := range segments {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(segment))
	}

	return sb.String()
}

// withQuery appends the encoded query to path. Keys are sorted, so the
// result only depends on the values.
func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// encodeOptions turns an option struct tagged with `url:"..."` into query
// values.
func encodeOptions(opts interface{}) (url.Values, error) {
	values, err := query.Values(opts)
	if err != nil {
		return nil, &EncodeError{Field: "options", Value: err.Error()}
	}
	return values, nil
}
