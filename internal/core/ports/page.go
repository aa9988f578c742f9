package ports

// Page is one page of a remote listing, mirroring the authority's pagination
// envelope.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
}
