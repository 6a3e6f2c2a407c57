package scryfall

import "context"

// Catalog is a flat list of strings, such as every creature type.
type Catalog struct {
	URI         *string  `json:"uri"`
	TotalValues int      `json:"total_values"`
	Data        []string `json:"data"`
}

const catalogSchema = `{
	"type": "object",
	"required": ["data"],
	"properties": {
		"object": {"enum": ["catalog"]},
		"uri": {"type": ["string", "null"]},
		"total_values": {"type": "integer", "minimum": 0},
		"data": {"type": "array", "items": {"type": "string"}}
	}
}`

var decodeCatalog = objectDecoder[Catalog]("catalog", catalogSchema)

// CatalogKind names one of the catalogs published by Scryfall.
type CatalogKind string

const (
	CatalogCardNames         CatalogKind = "card-names"
	CatalogArtistNames       CatalogKind = "artist-names"
	CatalogWordBank          CatalogKind = "word-bank"
	CatalogCreatureTypes     CatalogKind = "creature-types"
	CatalogPlaneswalkerTypes CatalogKind = "planeswalker-types"
	CatalogLandTypes         CatalogKind = "land-types"
	CatalogArtifactTypes     CatalogKind = "artifact-types"
	CatalogEnchantmentTypes  CatalogKind = "enchantment-types"
	CatalogSpellTypes        CatalogKind = "spell-types"
	CatalogPowers            CatalogKind = "powers"
	CatalogToughnesses       CatalogKind = "toughnesses"
	CatalogLoyalties         CatalogKind = "loyalties"
	CatalogWatermarks        CatalogKind = "watermarks"
)

// CatalogKinds lists every supported catalog.
var CatalogKinds = []CatalogKind{
	CatalogCardNames,
	CatalogArtistNames,
	CatalogWordBank,
	CatalogCreatureTypes,
	CatalogPlaneswalkerTypes,
	CatalogLandTypes,
	CatalogArtifactTypes,
	CatalogEnchantmentTypes,
	CatalogSpellTypes,
	CatalogPowers,
	CatalogToughnesses,
	CatalogLoyalties,
	CatalogWatermarks,
}

// GetCatalog retrieves one catalog.
type GetCatalog struct {
	Kind CatalogKind
}

func (r GetCatalog) target() (string, error) {
	return endpoint("catalog", string(r.Kind)), nil
}

func (GetCatalog) decode(body []byte) (Catalog, error) {
	return decodeCatalog(body)
}

// Catalog retrieves the catalog of the given kind.
func (c *Client) Catalog(ctx context.Context, kind CatalogKind) (Catalog, error) {
	return Execute[Catalog](ctx, c, GetCatalog{Kind: kind})
}
