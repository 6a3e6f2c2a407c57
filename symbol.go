package scryfall

import (
	"context"
	"net/url"
)

// CardSymbol is a symbol that can appear in mana costs or Oracle text,
// such as "{T}" or "{W/U}".
type CardSymbol struct {
	Symbol             string   `json:"symbol"`
	LooseVariant       *string  `json:"loose_variant"`
	English            string   `json:"english"`
	Transposable       bool     `json:"transposable"`
	RepresentsMana     bool     `json:"represents_mana"`
	CMC                *float64 `json:"cmc"`
	AppearsInManaCosts bool     `json:"appears_in_mana_costs"`
	Funny              bool     `json:"funny"`
	Colors             []Color  `json:"colors"`
	GathererAlternates []string `json:"gatherer_alternates"`
	SVGURI             *string  `json:"svg_uri"`
}

func (s *CardSymbol) normalize() error {
	if s.Colors == nil {
		s.Colors = []Color{}
	}
	return nil
}

// ManaCost is a mana cost normalized by Scryfall.
type ManaCost struct {
	Cost         string  `json:"cost"`
	CMC          float64 `json:"cmc"`
	Colors       []Color `json:"colors"`
	Colorless    bool    `json:"colorless"`
	Monocolored  bool    `json:"monocolored"`
	Multicolored bool    `json:"multicolored"`
}

func (m *ManaCost) normalize() error {
	if m.Colors == nil {
		m.Colors = []Color{}
	}
	return nil
}

const symbolSchema = `{
	"type": "object",
	"required": ["symbol", "english", "transposable", "represents_mana", "appears_in_mana_costs", "funny"],
	"properties": {
		"object": {"enum": ["card_symbol"]},
		"symbol": {"type": "string"},
		"loose_variant": {"type": ["string", "null"]},
		"english": {"type": "string"},
		"transposable": {"type": "boolean"},
		"represents_mana": {"type": "boolean"},
		"cmc": {"type": ["number", "null"]},
		"appears_in_mana_costs": {"type": "boolean"},
		"funny": {"type": "boolean"},
		"colors": {"type": ["array", "null"], "items": {"type": "string"}},
		"gatherer_alternates": {"type": ["array", "null"], "items": {"type": "string"}},
		"svg_uri": {"type": ["string", "null"]}
	}
}`

const manaCostSchema = `{
	"type": "object",
	"required": ["cost", "cmc", "colorless", "monocolored", "multicolored"],
	"properties": {
		"object": {"enum": ["mana_cost"]},
		"cost": {"type": "string"},
		"cmc": {"type": "number", "minimum": 0},
		"colors": {"type": ["array", "null"], "items": {"type": "string"}},
		"colorless": {"type": "boolean"},
		"monocolored": {"type": "boolean"},
		"multicolored": {"type": "boolean"}
	}
}`

var (
	decodeSymbol     = objectDecoder[CardSymbol]("card symbol", symbolSchema)
	decodeSymbolList = listDecoder("card symbol", decodeSymbol)
	decodeManaCost   = objectDecoder[ManaCost]("mana cost", manaCostSchema)
)

// ListSymbology lists every card symbol.
type ListSymbology struct{}

func (ListSymbology) target() (string, error) {
	return endpoint("symbology"), nil
}

func (ListSymbology) decode(body []byte) (List[CardSymbol], error) {
	return decodeSymbolList(body)
}

// ParseMana normalizes a mana cost written in plain text ("RUx") or with
// symbols ("{X}{U}{R}").
type ParseMana struct {
	Cost string
}

func (r ParseMana) target() (string, error) {
	q := url.Values{}
	q.Set("cost", r.Cost)
	return withQuery(endpoint("symbology", "parse-mana"), q), nil
}

func (ParseMana) decode(body []byte) (ManaCost, error) {
	return decodeManaCost(body)
}

// Symbology lists every card symbol.
func (c *Client) Symbology(ctx context.Context) (List[CardSymbol], error) {
	return Execute[List[CardSymbol]](ctx, c, ListSymbology{})
}

// ParseMana normalizes cost.
func (c *Client) ParseMana(ctx context.Context, cost string) (ManaCost, error) {
	return Execute[ManaCost](ctx, c, ParseMana{Cost: cost})
}
