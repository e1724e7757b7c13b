package db

// Box is the latitude/longitude prefilter rectangle. WrapsLon marks a
// longitude interval crossing the ±180 meridian, which drivers express
// as a disjunction of two ranges.
type Box struct {
	MinLat   float64
	MaxLat   float64
	MinLon   float64
	MaxLon   float64
	WrapsLon bool
}

// TagFilter is an exact-match predicate on an indexed tag field.
type TagFilter struct {
	Field string
	Value string
}

// ShopQuery is one bounded index lookup: box prefilter plus the
// predicates the chosen index resolves. Limit caps the candidate fetch.
type ShopQuery struct {
	IndexName    string
	Box          Box
	Tags         []TagFilter
	ReturnFields []string
	Limit        int
}

// SearchResult is the output of a shop lookup.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single shop hit with its raw field values.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
