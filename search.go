package scryfall

import (
	"context"
	"fmt"
)

// UniqueMode controls how duplicate printings are collapsed in searches.
type UniqueMode string

const (
	// UniqueCards returns one printing per card name.
	UniqueCards UniqueMode = "cards"
	// UniqueArt returns one printing per unique artwork.
	UniqueArt UniqueMode = "art"
	// UniquePrints returns every printing.
	UniquePrints UniqueMode = "prints"
)

// Order is the field search results are sorted by.
type Order string

const (
	// OrderName sorts by name, A → Z.
	OrderName Order = "name"
	// OrderSet sorts by set and collector number, oldest → newest.
	OrderSet      Order = "set"
	OrderReleased Order = "released"
	// OrderRarity sorts common → mythic.
	OrderRarity Order = "rarity"
	// OrderColor sorts WUBRG → multicolor → colorless.
	OrderColor Order = "color"
	// OrderUSD, OrderTIX and OrderEUR sort by lowest known price, cards
	// without a price last.
	OrderUSD Order = "usd"
	OrderTIX Order = "tix"
	OrderEUR Order = "eur"
	OrderCMC Order = "cmc"
	// OrderPower and OrderToughness put cards without the stat last.
	OrderPower     Order = "power"
	OrderToughness Order = "toughness"
	// OrderEDHREC sorts by EDHREC popularity ranking.
	OrderEDHREC Order = "edhrec"
	OrderArtist Order = "artist"
)

// Direction is the sort direction of search results.
type Direction string

const (
	// DirAuto lets Scryfall pick the most intuitive direction.
	DirAuto Direction = "auto"
	DirAsc  Direction = "asc"
	DirDesc Direction = "desc"
)

var (
	uniqueModes = map[UniqueMode]bool{UniqueCards: true, UniqueArt: true, UniquePrints: true}
	orders      = map[Order]bool{
		OrderName: true, OrderSet: true, OrderReleased: true, OrderRarity: true,
		OrderColor: true, OrderUSD: true, OrderTIX: true, OrderEUR: true,
		OrderCMC: true, OrderPower: true, OrderToughness: true, OrderEDHREC: true,
		OrderArtist: true,
	}
	directions = map[Direction]bool{DirAuto: true, DirAsc: true, DirDesc: true}
)

// SearchOptions configures a card search. Empty fields take the default
// value.
type SearchOptions struct {
	Unique              UniqueMode `url:"unique"`
	Order               Order      `url:"order"`
	Dir                 Direction  `url:"dir"`
	IncludeExtras       bool       `url:"include_extras,omitempty"`
	IncludeMultilingual bool       `url:"include_multilingual,omitempty"`
	IncludeVariations   bool       `url:"include_variations,omitempty"`
	// Page starts at 1. Zero means the first page.
	Page int `url:"page,omitempty"`
}

// DefaultSearchOptions returns one printing per card, sorted by name in the
// automatic direction.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Unique: UniqueCards,
		Order:  OrderName,
		Dir:    DirAuto,
	}
}

func (o SearchOptions) withDefaults() SearchOptions {
	defaults := DefaultSearchOptions()
	if o.Unique == "" {
		o.Unique = defaults.Unique
	}
	if o.Order == "" {
		o.Order = defaults.Order
	}
	if o.Dir == "" {
		o.Dir = defaults.Dir
	}
	return o
}

func (o SearchOptions) validate() error {
	if !uniqueModes[o.Unique] {
		return &EncodeError{Field: "unique", Value: string(o.Unique)}
	}
	if !orders[o.Order] {
		return &EncodeError{Field: "order", Value: string(o.Order)}
	}
	if !directions[o.Dir] {
		return &EncodeError{Field: "dir", Value: string(o.Dir)}
	}
	if o.Page < 0 {
		return &EncodeError{Field: "page", Value: fmt.Sprint(o.Page)}
	}
	return nil
}

// SearchCards runs a full-text search using the Scryfall syntax, such as
// "t:merfolk c:u cmc<=2".
type SearchCards struct {
	Query   string
	Options SearchOptions
}

func (r SearchCards) target() (string, error) {
	opts := r.Options.withDefaults()
	if err := opts.validate(); err != nil {
		return "", err
	}

	q, err := encodeOptions(opts)
	if err != nil {
		return "", err
	}
	q.Set("q", r.Query)

	return withQuery(endpoint("cards", "search"), q), nil
}

func (SearchCards) decode(body []byte) (List[Card], error) {
	return decodeCardList(body)
}

// Search runs a card search. A query without any match returns an
// *APIError with the "not_found" code.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (List[Card], error) {
	return Execute[List[Card]](ctx, c, SearchCards{Query: query, Options: opts})
}
