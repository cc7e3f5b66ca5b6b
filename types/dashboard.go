package types

// DashboardPosition is a lightweight per-coin summary row.
type DashboardPosition struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Value     float64 `json:"value"`
	PL        float64 `json:"pl"`
	ROI       float64 `json:"roi"`
	Change24h float64 `json:"change24h"`
}

// DashboardView is the aggregate payload behind the dashboard endpoint.
type DashboardView struct {
	TotalValue     float64             `json:"totalValue"`
	TotalPL        float64             `json:"totalPl"`
	TotalROI       float64             `json:"totalRoi"`
	Positions      []DashboardPosition `json:"positions"`
	Notifications  []string            `json:"notifications"`
	CurrencySymbol string              `json:"currencySymbol"`
}
