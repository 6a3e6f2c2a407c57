package scryfall

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	zendikarResponse       = `{"object":"set","id":"a2f58272-bba6-439d-871e-7a46686ac018","code":"zen","mtgo_code":"zen","arena_code":null,"name":"Zendikar","uri":"https://api.scryfall.com/sets/a2f58272-bba6-439d-871e-7a46686ac018","scryfall_uri":"https://scryfall.com/sets/zen","search_uri":"https://api.scryfall.com/cards/search?order=set&q=e%3Azen&unique=prints","released_at":"2009-10-02","set_type":"expansion","card_count":269,"digital":false,"nonfoil_only":false,"foil_only":false,"block_code":"zen","block":"Zendikar","icon_svg_uri":"https://svgs.scryfall.io/sets/zen.svg"}`
	worldwakeResponse      = `{"object":"set","code":"wwk","name":"Worldwake","scryfall_uri":"https://scryfall.com/sets/wwk","search_uri":"https://api.scryfall.com/cards/search?q=e%3Awwk","set_type":"expansion","card_count":145,"digital":false,"foil_only":false,"icon_svg_uri":"https://svgs.scryfall.io/sets/wwk.svg"}`
	austereCommandResponse = `{"object":"card","id":"4ed0b94e-4c1c-4b94-91d4-ba9a1ab0e28f","oracle_id":"0a2012ad-6425-4935-83af-fc7309ec2ece","multiverse_ids":[136237],"mtgo_id":27355,"name":"Austere Command","lang":"en","layout":"normal","mana_cost":"{4}{W}{W}","cmc":6.0,"type_line":"Sorcery","oracle_text":"Choose two -\n• Destroy all artifacts.\n• Destroy all enchantments.\n• Destroy all creatures with mana value 3 or less.\n• Destroy all creatures with mana value 4 or greater.","colors":["W"],"color_identity":["W"],"keywords":[],"legalities":{"standard":"not_legal","modern":"legal","legacy":"legal","vintage":"legal","commander":"legal"},"set":"lrw","set_name":"Lorwyn","collector_number":"4","rarity":"rare","reserved":false,"reprint":false,"digital":false,"full_art":false,"highres_image":true,"artist":"Wayne England","border_color":"black","frame":"2003","image_uris":{"small":"https://cards.scryfall.io/small/front/4/e/4ed0b94e.jpg","large":"https://cards.scryfall.io/large/front/4/e/4ed0b94e.jpg"},"prices":{"usd":"4.12","usd_foil":null,"eur":"3.10","tix":"0.05"},"uri":"https://api.scryfall.com/cards/4ed0b94e-4c1c-4b94-91d4-ba9a1ab0e28f","scryfall_uri":"https://scryfall.com/card/lrw/4/austere-command","rulings_uri":"https://api.scryfall.com/cards/4ed0b94e-4c1c-4b94-91d4-ba9a1ab0e28f/rulings","prints_search_uri":"https://api.scryfall.com/cards/search?q=oracleid%3A0a2012ad","set_search_uri":"https://api.scryfall.com/cards/search?q=e%3Alrw","scryfall_set_uri":"https://scryfall.com/sets/lrw"}`
	notFoundResponse       = `{"object":"error","code":"not_found","status":404,"details":"No card found with the given ID or set code and collector number."}`
	ambiguousResponse      = `{"object":"error","code":"ambiguous","status":404,"details":"Too many cards match ambiguous name “austere”. Add more words to refine your search."}`
)

// minimalCard returns a card with only its required fields and the extra
// raw fields given.
func minimalCard(extra string) string {
	card := `{"id":"4ed0b94e-4c1c-4b94-91d4-ba9a1ab0e28f","oracle_id":"0a2012ad-6425-4935-83af-fc7309ec2ece","name":"Test","cmc":0,"type_line":"Creature","legalities":{},"set":"tst","set_name":"Test","collector_number":"1","reserved":false,"reprint":false,"digital":false,"full_art":false`
	if extra != "" {
		card += "," + extra
	}
	return card + "}"
}

// fakeClock is a manual clock: Sleep records the delay and advances the time
// by it instantly.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	sleeps  []time.Duration
	onSleep context.CancelFunc
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	cancel := c.onSleep
	c.onSleep = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

// CancelOnSleep makes the next Sleep call cancel before returning.
func (c *fakeClock) CancelOnSleep(cancel context.CancelFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSleep = cancel
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// sendRecorder is a transport answering every request with body and
// recording the time each request reached it.
type sendRecorder struct {
	body string

	mu   sync.Mutex
	sent []time.Time
}

func (r *sendRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	r.mu.Lock()
	r.sent = append(r.sent, time.Now())
	r.mu.Unlock()

	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(r.body)),
		Request:    req,
	}, nil
}

// Gaps returns the delays between consecutive sends.
func (r *sendRecorder) Gaps() []time.Duration {
	r.mu.Lock()
	sent := slices.Clone(r.sent)
	r.mu.Unlock()

	slices.SortFunc(sent, func(a, b time.Time) int {
		return a.Compare(b)
	})

	gaps := make([]time.Duration, 0, len(sent))
	for i := 1; i < len(sent); i++ {
		gaps = append(gaps, sent[i].Sub(sent[i-1]))
	}
	return gaps
}

func setupTestServer(handler func(http.ResponseWriter, *http.Request)) (*httptest.Server, []ClientOption) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handler)
	ts := httptest.NewServer(mux)

	return ts, []ClientOption{WithBaseURL(ts.URL), WithClock(newFakeClock())}
}

func newTestClient(t *testing.T, handler func(http.ResponseWriter, *http.Request), options ...ClientOption) *Client {
	t.Helper()

	ts, defaults := setupTestServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewClient(append(defaults, options...)...)
	require.NoError(t, err)

	return client
}
