package scryfall

// Request describes one Scryfall endpoint along with its parameters. The
// type parameter is the record the response decodes into.
//
// The set of requests is closed: every implementation lives in this package
// (ListSets, GetSet, CardNamed, SearchCards, GetCatalog...).
type Request[T any] interface {
	// target returns the path and query string of the request, relative to
	// the base URL, or an absolute URL.
	target() (string, error)
	// decode turns a successful response body into a T.
	decode(body []byte) (T, error)
}
