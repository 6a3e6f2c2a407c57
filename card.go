package scryfall

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// Card is a single printing of a Magic card.
type Card struct {
	// ID is the Scryfall ID of this printing.
	ID uuid.UUID `json:"id"`
	// OracleID is shared by every reprint of the same card. Use it to group
	// printings together.
	OracleID uuid.UUID `json:"oracle_id"`

	// Identifiers on other platforms. Many cards have none of them.
	MultiverseIDs []int `json:"multiverse_ids"`
	MTGOID        *int  `json:"mtgo_id"`
	MTGOFoilID    *int  `json:"mtgo_foil_id"`
	ArenaID       *int  `json:"arena_id"`
	TCGPlayerID   *int  `json:"tcgplayer_id"`
	CardmarketID  *int  `json:"cardmarket_id"`

	Name   string `json:"name"`
	Lang   string `json:"lang"`
	Layout string `json:"layout"`

	// ManaCost is nil when the field is missing (multi-faced cards carry it
	// on each face) and "" when the card has no mana cost. Both differ from
	// a cost of "{0}".
	ManaCost *string `json:"mana_cost"`
	// CMC is the converted mana cost. A handful of cards have a fractional
	// one.
	CMC          float64     `json:"cmc"`
	TypeLine     string      `json:"type_line"`
	OracleText   *string     `json:"oracle_text"`
	Power        *FlexString `json:"power"`
	Toughness    *FlexString `json:"toughness"`
	Loyalty      *FlexString `json:"loyalty"`
	LifeModifier *string     `json:"life_modifier"`
	HandModifier *string     `json:"hand_modifier"`

	// Colors and ColorIdentity are never nil after decoding.
	Colors        []Color `json:"colors"`
	ColorIdentity []Color `json:"color_identity"`
	// ColorIndicator is nil when the card has no color indicator.
	ColorIndicator []Color  `json:"color_indicator"`
	Keywords       []string `json:"keywords"`

	Legalities map[string]Legality `json:"legalities"`

	Set             string `json:"set"`
	SetName         string `json:"set_name"`
	CollectorNumber string `json:"collector_number"`
	Rarity          string `json:"rarity"`

	Reserved      bool `json:"reserved"`
	Reprint       bool `json:"reprint"`
	Digital       bool `json:"digital"`
	FullArt       bool `json:"full_art"`
	HighresImage  bool `json:"highres_image"`
	Timeshifted   bool `json:"timeshifted"`
	Colorshifted  bool `json:"colorshifted"`
	Futureshifted bool `json:"futureshifted"`

	EDHRECRank     *int       `json:"edhrec_rank"`
	FlavorText     *string    `json:"flavor_text"`
	Artist         *string    `json:"artist"`
	IllustrationID *uuid.UUID `json:"illustration_id"`
	Watermark      *string    `json:"watermark"`
	BorderColor    string     `json:"border_color"`
	Frame          string     `json:"frame"`

	// ImageURIs is nil for multi-faced cards, which carry images per face.
	ImageURIs map[ImageVersion]string `json:"image_uris"`
	CardFaces []CardFace              `json:"card_faces"`
	AllParts  []RelatedCard           `json:"all_parts"`
	Prices    Prices                  `json:"prices"`

	URI             string `json:"uri"`
	ScryfallURI     string `json:"scryfall_uri"`
	RulingsURI      string `json:"rulings_uri"`
	PrintsSearchURI string `json:"prints_search_uri"`
	SetSearchURI    string `json:"set_search_uri"`
	ScryfallSetURI  string `json:"scryfall_set_uri"`
}

// CardFace is one face of a multi-faced card.
type CardFace struct {
	Name           string                  `json:"name"`
	TypeLine       *string                 `json:"type_line"`
	OracleText     *string                 `json:"oracle_text"`
	ManaCost       string                  `json:"mana_cost"`
	Colors         []Color                 `json:"colors"`
	ColorIndicator []Color                 `json:"color_indicator"`
	Power          *FlexString             `json:"power"`
	Toughness      *FlexString             `json:"toughness"`
	Loyalty        *FlexString             `json:"loyalty"`
	FlavorText     *string                 `json:"flavor_text"`
	Artist         *string                 `json:"artist"`
	IllustrationID *uuid.UUID              `json:"illustration_id"`
	ImageURIs      map[ImageVersion]string `json:"image_uris"`
}

// RelatedCard is a card closely related to another one (meld parts,
// tokens, combo pieces).
type RelatedCard struct {
	ID        uuid.UUID `json:"id"`
	Component string    `json:"component"`
	Name      string    `json:"name"`
	TypeLine  string    `json:"type_line"`
	URI       string    `json:"uri"`
}

// Prices holds the daily prices of a card. Every price is optional.
type Prices struct {
	USD       *string `json:"usd"`
	USDFoil   *string `json:"usd_foil"`
	USDEtched *string `json:"usd_etched"`
	EUR       *string `json:"eur"`
	EURFoil   *string `json:"eur_foil"`
	TIX       *string `json:"tix"`
}

func (c *Card) normalize() error {
	if c.Colors == nil {
		c.Colors = []Color{}
	}
	if c.ColorIdentity == nil {
		c.ColorIdentity = []Color{}
	}
	return nil
}

const colorsSchema = `{"type": ["array", "null"], "items": {"type": "string"}}`

const statSchema = `{"type": ["string", "number", "null"]}`

const cardSchema = `{
	"type": "object",
	"required": ["id", "oracle_id", "name", "cmc", "type_line", "legalities", "set", "set_name", "collector_number", "reserved", "reprint", "digital", "full_art"],
	"properties": {
		"object": {"enum": ["card"]},
		"id": {"type": "string", "pattern": "` + uuidPattern + `"},
		"oracle_id": {"type": "string", "pattern": "` + uuidPattern + `"},
		"multiverse_ids": {"type": ["array", "null"], "items": {"type": "integer"}},
		"mtgo_id": {"type": ["integer", "null"]},
		"mtgo_foil_id": {"type": ["integer", "null"]},
		"arena_id": {"type": ["integer", "null"]},
		"tcgplayer_id": {"type": ["integer", "null"]},
		"cardmarket_id": {"type": ["integer", "null"]},
		"name": {"type": "string"},
		"mana_cost": {"type": ["string", "null"]},
		"cmc": {"type": "number", "minimum": 0},
		"type_line": {"type": "string"},
		"oracle_text": {"type": ["string", "null"]},
		"power": ` + statSchema + `,
		"toughness": ` + statSchema + `,
		"loyalty": ` + statSchema + `,
		"colors": ` + colorsSchema + `,
		"color_identity": ` + colorsSchema + `,
		"color_indicator": ` + colorsSchema + `,
		"legalities": {"type": "object", "additionalProperties": {"type": "string"}},
		"set": {"type": "string"},
		"set_name": {"type": "string"},
		"collector_number": {"type": "string"},
		"reserved": {"type": "boolean"},
		"reprint": {"type": "boolean"},
		"digital": {"type": "boolean"},
		"full_art": {"type": "boolean"},
		"highres_image": {"type": "boolean"},
		"timeshifted": {"type": "boolean"},
		"colorshifted": {"type": "boolean"},
		"futureshifted": {"type": "boolean"},
		"edhrec_rank": {"type": ["integer", "null"]},
		"illustration_id": {"type": ["string", "null"], "pattern": "` + uuidPattern + `"},
		"image_uris": {"type": ["object", "null"], "additionalProperties": {"type": "string"}},
		"card_faces": {"type": ["array", "null"], "items": {"type": "object", "required": ["name"]}},
		"all_parts": {"type": ["array", "null"], "items": {"type": "object", "required": ["id", "name"]}}
	}
}`

var (
	decodeCard     = objectDecoder[Card]("card", cardSchema)
	decodeCardList = listDecoder("card", decodeCard)
)

// NameMatch selects how CardNamed compares names.
type NameMatch int

const (
	// Exact only matches the full card name, case-insensitively.
	Exact NameMatch = iota
	// Fuzzy matches partial names ("aust com") as long as a single card
	// fits.
	Fuzzy
)

func (m NameMatch) key() string {
	if m == Fuzzy {
		return "fuzzy"
	}
	return "exact"
}

// ListCards lists every card in the Scryfall database, 175 cards per page.
type ListCards struct {
	// Page starts at 1. Zero means the first page.
	Page int
}

func (r ListCards) target() (string, error) {
	q := url.Values{}
	if r.Page > 0 {
		q.Set("page", strconv.Itoa(r.Page))
	}
	return withQuery(endpoint("cards"), q), nil
}

func (ListCards) decode(body []byte) (List[Card], error) {
	return decodeCardList(body)
}

// CardNamed retrieves a card from its name.
type CardNamed struct {
	Name string
	Mode NameMatch
	// Set optionally restricts the lookup to one set code.
	Set string
}

func (r CardNamed) target() (string, error) {
	q := url.Values{}
	q.Set(r.Mode.key(), r.Name)
	if r.Set != "" {
		q.Set("set", r.Set)
	}
	return withQuery(endpoint("cards", "named"), q), nil
}

func (CardNamed) decode(body []byte) (Card, error) {
	return decodeCard(body)
}

// AutocompleteCard returns up to 20 card names starting with or containing
// Query.
type AutocompleteCard struct {
	Query         string
	IncludeExtras bool
}

func (r AutocompleteCard) target() (string, error) {
	q := url.Values{}
	q.Set("q", r.Query)
	if r.IncludeExtras {
		q.Set("include_extras", "true")
	}
	return withQuery(endpoint("cards", "autocomplete"), q), nil
}

func (AutocompleteCard) decode(body []byte) (Catalog, error) {
	return decodeCatalog(body)
}

// RandomCard retrieves a random card, optionally restricted to a search
// query.
type RandomCard struct {
	Query string
}

func (r RandomCard) target() (string, error) {
	q := url.Values{}
	if r.Query != "" {
		q.Set("q", r.Query)
	}
	return withQuery(endpoint("cards", "random"), q), nil
}

func (RandomCard) decode(body []byte) (Card, error) {
	return decodeCard(body)
}

// CardByMultiverseID retrieves a card from its Gatherer multiverse ID.
type CardByMultiverseID struct {
	ID int
}

func (r CardByMultiverseID) target() (string, error) {
	return endpoint("cards", "multiverse", strconv.Itoa(r.ID)), nil
}

func (CardByMultiverseID) decode(body []byte) (Card, error) {
	return decodeCard(body)
}

// CardByMTGOID retrieves a card from its Magic Online catalog ID.
type CardByMTGOID struct {
	ID int
}

func (r CardByMTGOID) target() (string, error) {
	return endpoint("cards", "mtgo", strconv.Itoa(r.ID)), nil
}

func (CardByMTGOID) decode(body []byte) (Card, error) {
	return decodeCard(body)
}

// CardByArenaID retrieves a card from its MTG Arena ID.
type CardByArenaID struct {
	ID int
}

func (r CardByArenaID) target() (string, error) {
	return endpoint("cards", "arena", strconv.Itoa(r.ID)), nil
}

func (CardByArenaID) decode(body []byte) (Card, error) {
	return decodeCard(body)
}

// CardByID retrieves a card from its Scryfall ID.
type CardByID struct {
	ID uuid.UUID
}

func (r CardByID) target() (string, error) {
	return endpoint("cards", r.ID.String()), nil
}

func (CardByID) decode(body []byte) (Card, error) {
	return decodeCard(body)
}

// CardByCollectorNumber retrieves a card from its set code and collector
// number. Collector numbers aren't always numeric ("12a", "★").
type CardByCollectorNumber struct {
	Set    string
	Number string
}

func (r CardByCollectorNumber) target() (string, error) {
	return endpoint("cards", r.Set, r.Number), nil
}

func (CardByCollectorNumber) decode(body []byte) (Card, error) {
	return decodeCard(body)
}

// Cards lists one page of the whole card database.
func (c *Client) Cards(ctx context.Context, page int) (List[Card], error) {
	return Execute[List[Card]](ctx, c, ListCards{Page: page})
}

// CardNamed retrieves a card from its exact or fuzzy name. A fuzzy name
// matching several cards returns an *APIError with the "ambiguous" code.
func (c *Client) CardNamed(ctx context.Context, name string, mode NameMatch) (Card, error) {
	return Execute[Card](ctx, c, CardNamed{Name: name, Mode: mode})
}

// Autocomplete returns card names completing query.
func (c *Client) Autocomplete(ctx context.Context, query string) (Catalog, error) {
	return Execute[Catalog](ctx, c, AutocompleteCard{Query: query})
}

// RandomCard retrieves a random card matching query, or any card when query
// is empty.
func (c *Client) RandomCard(ctx context.Context, query string) (Card, error) {
	return Execute[Card](ctx, c, RandomCard{Query: query})
}

// CardByMultiverseID retrieves a card from its multiverse ID.
func (c *Client) CardByMultiverseID(ctx context.Context, id int) (Card, error) {
	return Execute[Card](ctx, c, CardByMultiverseID{ID: id})
}

// CardByMTGOID retrieves a card from its Magic Online ID.
func (c *Client) CardByMTGOID(ctx context.Context, id int) (Card, error) {
	return Execute[Card](ctx, c, CardByMTGOID{ID: id})
}

// CardByArenaID retrieves a card from its Arena ID.
func (c *Client) CardByArenaID(ctx context.Context, id int) (Card, error) {
	return Execute[Card](ctx, c, CardByArenaID{ID: id})
}

// CardByID retrieves a card from its Scryfall ID.
func (c *Client) CardByID(ctx context.Context, id uuid.UUID) (Card, error) {
	return Execute[Card](ctx, c, CardByID{ID: id})
}

// CardByCollectorNumber retrieves a card from its set and collector number.
func (c *Client) CardByCollectorNumber(ctx context.Context, set, number string) (Card, error) {
	return Execute[Card](ctx, c, CardByCollectorNumber{Set: set, Number: number})
}
