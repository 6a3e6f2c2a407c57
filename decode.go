package scryfall

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/multierr"
)

// decodeFunc turns a raw response body into a typed record.
type decodeFunc[T any] func(body []byte) (T, error)

// normalizer is implemented by records that need fixing up after
// unmarshalling (defaulting slices, checking cross-field invariants).
type normalizer interface {
	normalize() error
}

const (
	rootContext      = "(root)"
	contextSeparator = "."
)

const uuidPattern = `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`

func mustCompileSchema(name, schema string) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("scryfall: invalid %s schema: %v", name, err))
	}
	return compiled
}

// objectDecoder builds the decode rule of a single record type: the body is
// checked against the schema (required fields and their types), unmarshalled
// and then normalized.
func objectDecoder[T any](name, schema string) decodeFunc[T] {
	compiled := mustCompileSchema(name, schema)

	return func(body []byte) (T, error) {
		var v T

		if err := validate(name, compiled, body); err != nil {
			return v, err
		}

		if err := json.Unmarshal(body, &v); err != nil {
			return v, unmarshalError(name, err)
		}

		if n, ok := any(&v).(normalizer); ok {
			if err := n.normalize(); err != nil {
				var zero T
				return zero, asDecodeError(name, err)
			}
		}

		return v, nil
	}
}

func validate(name string, schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		// Not even JSON
		return &DecodeError{Type: name, Err: err}
	}
	if result.Valid() {
		return nil
	}

	var (
		errs  error
		field string
	)
	for _, re := range result.Errors() {
		if field == "" {
			field = resultField(re)
		}
		errs = multierr.Append(errs, errors.New(re.String()))
	}

	return &DecodeError{Type: name, Field: field, Err: errs}
}

// resultField returns the dotted path of the field a schema violation is
// about. Missing properties are reported on their parent object by
// gojsonschema, so the property name is appended.
func resultField(re gojsonschema.ResultError) string {
	field := strings.TrimPrefix(re.Context().String(), rootContext)
	field = strings.TrimPrefix(field, contextSeparator)

	if re.Type() != "required" {
		return field
	}

	property, _ := re.Details()["property"].(string)
	switch {
	case property == "":
		return field
	case field == "":
		return property
	case field == property || strings.HasSuffix(field, contextSeparator+property):
		return field
	default:
		return field + contextSeparator + property
	}
}

func unmarshalError(name string, err error) *DecodeError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &DecodeError{Type: name, Field: typeErr.Field, Err: err}
	}
	return &DecodeError{Type: name, Err: err}
}

func asDecodeError(name string, err error) *DecodeError {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	return &DecodeError{Type: name, Err: err}
}

const listSchema = `{
	"type": "object",
	"required": ["data", "has_more"],
	"properties": {
		"object": {"enum": ["list"]},
		"data": {"type": "array"},
		"has_more": {"type": "boolean"},
		"next_page": {"type": ["string", "null"]},
		"total_cards": {"type": ["integer", "null"], "minimum": 0},
		"warnings": {"type": ["array", "null"], "items": {"type": "string"}}
	}
}`

var compiledListSchema = mustCompileSchema("list", listSchema)

type listEnvelope struct {
	Data       []json.RawMessage `json:"data"`
	HasMore    bool              `json:"has_more"`
	NextPage   *string           `json:"next_page"`
	TotalCards *int              `json:"total_cards"`
	Warnings   []string          `json:"warnings"`
}

// listDecoder builds the decode rule of List[T] from the decode rule of T.
// Element errors are reported with their position in the data array.
func listDecoder[T any](elemName string, elem decodeFunc[T]) decodeFunc[List[T]] {
	name := "list of " + elemName

	return func(body []byte) (List[T], error) {
		if err := validate(name, compiledListSchema, body); err != nil {
			return List[T]{}, err
		}

		var env listEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return List[T]{}, unmarshalError(name, err)
		}

		if env.HasMore && env.NextPage == nil {
			return List[T]{}, &DecodeError{
				Type:  name,
				Field: "next_page",
				Err:   errors.New("has_more is set but next_page is missing"),
			}
		}

		data := make([]T, 0, len(env.Data))
		for i, raw := range env.Data {
			v, err := elem(raw)
			if err != nil {
				de := asDecodeError(elemName, err)
				field := fmt.Sprintf("data.%d", i)
				if de.Field != "" {
					field += "." + de.Field
				}
				return List[T]{}, &DecodeError{Type: name, Field: field, Err: de.Err}
			}
			data = append(data, v)
		}

		return List[T]{
			Data:       data,
			HasMore:    env.HasMore,
			NextPage:   env.NextPage,
			TotalCards: env.TotalCards,
			Warnings:   env.Warnings,
		}, nil
	}
}

func decodeImage(body []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, &DecodeError{Type: "image", Err: err}
	}
	return img, nil
}
