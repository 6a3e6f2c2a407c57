package scryfall

import (
	"context"
	"strconv"

	"github.com/google/uuid"
)

// Ruling is an Oracle ruling or a note from Wizards of the Coast about a
// card.
type Ruling struct {
	OracleID *uuid.UUID `json:"oracle_id"`
	// Source is either "wotc" or "scryfall".
	Source      string `json:"source"`
	PublishedAt Date   `json:"published_at"`
	Comment     string `json:"comment"`
}

const rulingSchema = `{
	"type": "object",
	"required": ["source", "published_at", "comment"],
	"properties": {
		"object": {"enum": ["ruling"]},
		"oracle_id": {"type": ["string", "null"], "pattern": "` + uuidPattern + `"},
		"source": {"type": "string"},
		"published_at": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"comment": {"type": "string"}
	}
}`

var (
	decodeRuling     = objectDecoder[Ruling]("ruling", rulingSchema)
	decodeRulingList = listDecoder("ruling", decodeRuling)
)

// RulingsByMultiverseID lists the rulings of a card from its multiverse ID.
type RulingsByMultiverseID struct {
	ID int
}

func (r RulingsByMultiverseID) target() (string, error) {
	return endpoint("cards", "multiverse", strconv.Itoa(r.ID), "rulings"), nil
}

func (RulingsByMultiverseID) decode(body []byte) (List[Ruling], error) {
	return decodeRulingList(body)
}

// RulingsByMTGOID lists the rulings of a card from its Magic Online ID.
type RulingsByMTGOID struct {
	ID int
}

func (r RulingsByMTGOID) target() (string, error) {
	return endpoint("cards", "mtgo", strconv.Itoa(r.ID), "rulings"), nil
}

func (RulingsByMTGOID) decode(body []byte) (List[Ruling], error) {
	return decodeRulingList(body)
}

// RulingsByCollectorNumber lists the rulings of a card from its set code
// and collector number.
type RulingsByCollectorNumber struct {
	Set    string
	Number string
}

func (r RulingsByCollectorNumber) target() (string, error) {
	return endpoint("cards", r.Set, r.Number, "rulings"), nil
}

func (RulingsByCollectorNumber) decode(body []byte) (List[Ruling], error) {
	return decodeRulingList(body)
}

// RulingsByID lists the rulings of a card from its Scryfall ID.
type RulingsByID struct {
	ID uuid.UUID
}

func (r RulingsByID) target() (string, error) {
	return endpoint("cards", r.ID.String(), "rulings"), nil
}

func (RulingsByID) decode(body []byte) (List[Ruling], error) {
	return decodeRulingList(body)
}

// RulingsByMultiverseID lists the rulings of the card with the given
// multiverse ID.
func (c *Client) RulingsByMultiverseID(ctx context.Context, id int) (List[Ruling], error) {
	return Execute[List[Ruling]](ctx, c, RulingsByMultiverseID{ID: id})
}

// RulingsByMTGOID lists the rulings of the card with the given Magic Online
// ID.
func (c *Client) RulingsByMTGOID(ctx context.Context, id int) (List[Ruling], error) {
	return Execute[List[Ruling]](ctx, c, RulingsByMTGOID{ID: id})
}

// RulingsByCollectorNumber lists the rulings of a card from its set and
// collector number.
func (c *Client) RulingsByCollectorNumber(ctx context.Context, set, number string) (List[Ruling], error) {
	return Execute[List[Ruling]](ctx, c, RulingsByCollectorNumber{Set: set, Number: number})
}

// RulingsByID lists the rulings of the card with the given Scryfall ID.
func (c *Client) RulingsByID(ctx context.Context, id uuid.UUID) (List[Ruling], error) {
	return Execute[List[Ruling]](ctx, c, RulingsByID{ID: id})
}
