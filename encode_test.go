package scryfall

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type targeter interface {
	target() (string, error)
}

func TestTargets(t *testing.T) {
	id := uuid.MustParse("4ed0b94e-4c1c-4b94-91d4-ba9a1ab0e28f")

	tests := []struct {
		name     string
		request  targeter
		expected string
	}{
		{"sets", ListSets{}, "/sets"},
		{"set", GetSet{Code: "zen"}, "/sets/zen"},
		{"cards", ListCards{}, "/cards"},
		{"cards page", ListCards{Page: 3}, "/cards?page=3"},
		{"named exact", CardNamed{Name: "Austere Command"}, "/cards/named?exact=Austere+Command"},
		{"named fuzzy", CardNamed{Name: "aust com", Mode: Fuzzy}, "/cards/named?fuzzy=aust+com"},
		{"named in set", CardNamed{Name: "Forest", Set: "zen"}, "/cards/named?exact=Forest&set=zen"},
		{"autocomplete", AutocompleteCard{Query: "thal"}, "/cards/autocomplete?q=thal"},
		{"autocomplete extras", AutocompleteCard{Query: "thal", IncludeExtras: true}, "/cards/autocomplete?include_extras=true&q=thal"},
		{"random", RandomCard{}, "/cards/random"},
		{"random query", RandomCard{Query: "t:goblin"}, "/cards/random?q=t%3Agoblin"},
		{"multiverse", CardByMultiverseID{ID: 136237}, "/cards/multiverse/136237"},
		{"mtgo", CardByMTGOID{ID: 27355}, "/cards/mtgo/27355"},
		{"arena", CardByArenaID{ID: 67330}, "/cards/arena/67330"},
		{"id", CardByID{ID: id}, "/cards/4ed0b94e-4c1c-4b94-91d4-ba9a1ab0e28f"},
		{"collector number", CardByCollectorNumber{Set: "lrw", Number: "4"}, "/cards/lrw/4"},
		{"rulings multiverse", RulingsByMultiverseID{ID: 136237}, "/cards/multiverse/136237/rulings"},
		{"rulings mtgo", RulingsByMTGOID{ID: 27355}, "/cards/mtgo/27355/rulings"},
		{"rulings collector number", RulingsByCollectorNumber{Set: "lrw", Number: "4"}, "/cards/lrw/4/rulings"},
		{"rulings id", RulingsByID{ID: id}, "/cards/4ed0b94e-4c1c-4b94-91d4-ba9a1ab0e28f/rulings"},
		{"symbology", ListSymbology{}, "/symbology"},
		{"parse mana", ParseMana{Cost: "{X}{U}{R}"}, "/symbology/parse-mana?cost=%7BX%7D%7BU%7D%7BR%7D"},
		{"catalog", GetCatalog{Kind: CatalogCreatureTypes}, "/catalog/creature-types"},
		{"search defaults", SearchCards{Query: "t:merfolk c:u"}, "/cards/search?dir=auto&order=name&q=t%3Amerfolk+c%3Au&unique=cards"},
		{
			"search options",
			SearchCards{
				Query: "cmc<=2",
				Options: SearchOptions{
					Unique:        UniquePrints,
					Order:         OrderCMC,
					Dir:           DirDesc,
					IncludeExtras: true,
					Page:          2,
				},
			},
			"/cards/search?dir=desc&include_extras=true&order=cmc&page=2&q=cmc%3C%3D2&unique=prints",
		},
		{"image", CardImage{ID: id}, "/cards/4ed0b94e-4c1c-4b94-91d4-ba9a1ab0e28f?format=image&version=large"},
		{"image back", CardImage{ID: id, Version: ImageArtCrop, Face: FaceBack}, "/cards/4ed0b94e-4c1c-4b94-91d4-ba9a1ab0e28f?face=back&format=image&version=art_crop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := tt.request.target()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, target)
		})
	}
}

func TestTargetIsDeterministic(t *testing.T) {
	request := SearchCards{
		Query: "o:draw",
		Options: SearchOptions{
			IncludeMultilingual: true,
			IncludeVariations:   true,
			Order:               OrderEDHREC,
		},
	}

	first, err := request.target()
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		target, err := request.target()
		require.NoError(t, err)
		assert.Equal(t, first, target)
	}
}

func TestTargetEscapesReservedCharacters(t *testing.T) {
	target, err := GetSet{Code: "a/b c?d"}.target()
	require.NoError(t, err)
	assert.Equal(t, "/sets/a%2Fb%20c%3Fd", target)

	target, err = CardByCollectorNumber{Set: "plst", Number: "1★"}.target()
	require.NoError(t, err)
	assert.Equal(t, "/cards/plst/1%E2%98%85", target)

	target, err = CardNamed{Name: "Fire // Ice"}.target()
	require.NoError(t, err)
	assert.Equal(t, "/cards/named?exact=Fire+%2F%2F+Ice", target)

	target, err = CardNamed{Name: "R&D's Secret Lair"}.target()
	require.NoError(t, err)
	assert.Equal(t, "/cards/named?exact=R%26D%27s+Secret+Lair", target)

	target, err = AutocompleteCard{Query: "a=b & c?d"}.target()
	require.NoError(t, err)
	assert.Equal(t, "/cards/autocomplete?q=a%3Db+%26+c%3Fd", target)
	query := strings.TrimPrefix(target, "/cards/autocomplete?q=")
	for _, reserved := range []string{"&", "=", "?", " "} {
		assert.NotContains(t, query, reserved)
	}
}

func TestInvalidSearchOptions(t *testing.T) {
	tests := []struct {
		name    string
		options SearchOptions
		field   string
	}{
		{"unique", SearchOptions{Unique: "everything"}, "unique"},
		{"order", SearchOptions{Order: "mana"}, "order"},
		{"dir", SearchOptions{Dir: "up"}, "dir"},
		{"page", SearchOptions{Page: -1}, "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SearchCards{Query: "c:r", Options: tt.options}.target()

			var encodeErr *EncodeError
			require.True(t, errors.As(err, &encodeErr))
			assert.Equal(t, tt.field, encodeErr.Field)
		})
	}
}

func TestInvalidImageOptions(t *testing.T) {
	_, err := CardImage{ID: uuid.New(), Version: "huge"}.target()

	var encodeErr *EncodeError
	require.True(t, errors.As(err, &encodeErr))
	assert.Equal(t, "version", encodeErr.Field)

	_, err = CardImage{ID: uuid.New(), Face: "side"}.target()
	require.True(t, errors.As(err, &encodeErr))
	assert.Equal(t, "face", encodeErr.Field)
}

func TestDefaultSearchOptions(t *testing.T) {
	assert.Equal(t, SearchOptions{Unique: UniqueCards, Order: OrderName, Dir: DirAuto}, DefaultSearchOptions())
	assert.Equal(t, DefaultSearchOptions(), SearchOptions{}.withDefaults())
}
