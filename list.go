package scryfall

import (
	"context"
	"errors"
)

var errUnpaginatedType = errors.New("Scryfall doesn't paginate this type")

// List is a page of a paginated Scryfall list object.
type List[T any] struct {
	Data    []T  `json:"data"`
	HasMore bool `json:"has_more"`
	// NextPage is always set when HasMore is true.
	NextPage *string `json:"next_page,omitempty"`
	// TotalCards is only sent by card searches, and not always.
	TotalCards *int     `json:"total_cards,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// nextPage fetches the page after a list. Its target is the absolute
// next_page URI sent by Scryfall.
type nextPage[T any] struct {
	uri  string
	rule decodeFunc[List[T]]
}

func (r nextPage[T]) target() (string, error) {
	return r.uri, nil
}

func (r nextPage[T]) decode(body []byte) (List[T], error) {
	return r.rule(body)
}

// NextPage retrieves the page following list. The element decode rule is
// chosen from T; ok is false when list was the last page.
func NextPage[T any](ctx context.Context, c *Client, list List[T]) (next List[T], ok bool, err error) {
	if !list.HasMore || list.NextPage == nil {
		return List[T]{}, false, nil
	}

	rule, err := listDecoderFor[T]()
	if err != nil {
		return List[T]{}, false, err
	}

	next, err = Execute[List[T]](ctx, c, nextPage[T]{uri: *list.NextPage, rule: rule})
	if err != nil {
		return List[T]{}, false, err
	}

	return next, true, nil
}

// listDecoderFor returns the list decode rule of the element types that
// Scryfall paginates.
func listDecoderFor[T any]() (decodeFunc[List[T]], error) {
	var (
		zero T
		rule any
	)

	switch any(zero).(type) {
	case Card:
		rule = decodeCardList
	case Set:
		rule = decodeSetList
	case Ruling:
		rule = decodeRulingList
	case CardSymbol:
		rule = decodeSymbolList
	}

	decode, ok := rule.(decodeFunc[List[T]])
	if !ok {
		return nil, &DecodeError{Type: "list", Err: errUnpaginatedType}
	}

	return decode, nil
}
