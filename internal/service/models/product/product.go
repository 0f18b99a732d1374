package product

// Product is a catalog entry for a discounted appliance. The catalog is
// read-only; orders copy title and sale price out of it at creation time.
type Product struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Brand              string  `json:"brand"`
	Category           string  `json:"category"`
	PriceOriginal      float64 `json:"priceOriginal"`
	PriceSale          float64 `json:"priceSale"`
	ConditionGrade     string  `json:"conditionGrade"`
	DiscountReason     string  `json:"discountReason"`
	DefectSummaryShort string  `json:"defectSummaryShort"`
	EnergyClass        string  `json:"energyClass,omitempty"`
}
