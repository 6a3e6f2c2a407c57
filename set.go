package scryfall

import (
	"context"

	"github.com/google/uuid"
)

// Set is a group of related Magic cards.
type Set struct {
	ID *uuid.UUID `json:"id"`
	// Code is the unique three to five-letter code of the set.
	Code string `json:"code"`
	// MTGOCode is the code of the set on Magic Online, when it differs.
	MTGOCode  *string `json:"mtgo_code"`
	ArenaCode *string `json:"arena_code"`
	Name      string  `json:"name"`
	// SetType is a computer-readable classification such as "core",
	// "expansion" or "promo".
	SetType       string  `json:"set_type"`
	ReleasedAt    *Date   `json:"released_at"`
	BlockCode     *string `json:"block_code"`
	Block         *string `json:"block"`
	ParentSetCode *string `json:"parent_set_code"`
	CardCount     int     `json:"card_count"`
	Digital       bool    `json:"digital"`
	FoilOnly      bool    `json:"foil_only"`
	NonfoilOnly   *bool   `json:"nonfoil_only"`
	IconSVGURI    string  `json:"icon_svg_uri"`
	// SearchURI starts a paginated search over the cards of the set.
	SearchURI   string  `json:"search_uri"`
	ScryfallURI string  `json:"scryfall_uri"`
	URI         *string `json:"uri"`
}

const setSchema = `{
	"type": "object",
	"required": ["code", "name", "set_type", "card_count", "digital", "foil_only", "icon_svg_uri", "search_uri", "scryfall_uri"],
	"properties": {
		"object": {"enum": ["set"]},
		"id": {"type": ["string", "null"], "pattern": "` + uuidPattern + `"},
		"code": {"type": "string", "minLength": 1},
		"mtgo_code": {"type": ["string", "null"]},
		"arena_code": {"type": ["string", "null"]},
		"name": {"type": "string"},
		"set_type": {"type": "string"},
		"released_at": {"type": ["string", "null"], "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"block_code": {"type": ["string", "null"]},
		"block": {"type": ["string", "null"]},
		"parent_set_code": {"type": ["string", "null"]},
		"card_count": {"type": "integer", "minimum": 0},
		"digital": {"type": "boolean"},
		"foil_only": {"type": "boolean"},
		"nonfoil_only": {"type": ["boolean", "null"]},
		"icon_svg_uri": {"type": "string"},
		"search_uri": {"type": "string"},
		"scryfall_uri": {"type": "string"},
		"uri": {"type": ["string", "null"]}
	}
}`

var (
	decodeSet     = objectDecoder[Set]("set", setSchema)
	decodeSetList = listDecoder("set", decodeSet)
)

// ListSets lists every set known to Scryfall.
type ListSets struct{}

func (ListSets) target() (string, error) {
	return endpoint("sets"), nil
}

func (ListSets) decode(body []byte) (List[Set], error) {
	return decodeSetList(body)
}

// GetSet retrieves a set from its code, such as "zen".
type GetSet struct {
	Code string
}

func (r GetSet) target() (string, error) {
	return endpoint("sets", r.Code), nil
}

func (GetSet) decode(body []byte) (Set, error) {
	return decodeSet(body)
}

// Sets lists every set.
func (c *Client) Sets(ctx context.Context) (List[Set], error) {
	return Execute[List[Set]](ctx, c, ListSets{})
}

// Set retrieves the set identified by code.
func (c *Client) Set(ctx context.Context, code string) (Set, error) {
	return Execute[Set](ctx, c, GetSet{Code: code})
}
