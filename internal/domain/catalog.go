package domain

// ProductMatch is a catalog product reduced to what the assistant quotes.
// Price comes from the first variant of the product.
type ProductMatch struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CatalogStatus string

const (
	CatalogStatusFound  CatalogStatus = "found"
	CatalogStatusEmpty  CatalogStatus = "empty"
	CatalogStatusFailed CatalogStatus = "failed"
)

// CatalogResult is the outcome of a best-effort catalog lookup.
// A failed lookup carries no matches; callers treat it like an empty one.
type CatalogResult struct {
	Status  CatalogStatus
	Matches []ProductMatch
	Err     error
}

// NewCatalogResult tags a search outcome.
func NewCatalogResult(matches []ProductMatch, err error) CatalogResult {
	switch {
	case err != nil:
		return CatalogResult{Status: CatalogStatusFailed, Err: err}
	case len(matches) == 0:
		return CatalogResult{Status: CatalogStatusEmpty}
	default:
		return CatalogResult{Status: CatalogStatusFound, Matches: matches}
	}
}
