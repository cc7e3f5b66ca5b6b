package types

// CatalogCoin is one entry of the provider's coin catalog: the canonical
// identifier plus the ticker and display name users are likely to type.
type CatalogCoin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
