package pipeline

// DrugReport is the assembled /search payload. All array fields default to
// empty rather than absent.
type DrugReport struct {
	IdentifiedMedicine string             `json:"identified_medicine"`
	Composition        string             `json:"composition"`
	GenericName        string             `json:"generic_name"`
	ImageURL           string             `json:"image_url,omitempty"`
	GenericInfo        string             `json:"generic_info_paragraph"`
	Summary            ReportSummary      `json:"summary"`
	Alternatives       []BrandAlternative `json:"alternatives"`
}

// ReportSummary groups the bulleted report sections.
type ReportSummary struct {
	Uses        []string `json:"uses"`
	SideEffects []string `json:"side_effects"`
	Warnings    []string `json:"warnings"`
}

// BrandAlternative is one substitute brand for the same composition.
type BrandAlternative struct {
	BrandName       string  `json:"brand_name"`
	Manufacturer    string  `json:"manufacturer"`
	Price           string  `json:"price,omitempty"`
	MatchConfidence float64 `json:"match_confidence,omitempty"`
}

// PriceListing is one normalized storefront price. NumericPrice is derived
// for sorting and savings only and is not authoritative.
type PriceListing struct {
	Store          string  `json:"store"`
	Price          string  `json:"price"`
	Quantity       string  `json:"quantity,omitempty"`
	URL            string  `json:"url"`
	Discount       string  `json:"discount,omitempty"`
	DeliveryInfo   string  `json:"delivery_info,omitempty"`
	BestDeal       bool    `json:"best_deal"`
	NumericPrice   float64 `json:"numeric_price,omitempty"`
	SavingsPercent float64 `json:"savings_percent,omitempty"`
}

// MedicineInfo is the optional metadata block of a price comparison.
type MedicineInfo struct {
	Composition  string `json:"composition,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Description  string `json:"description,omitempty"`
}

// PriceComparison is the /price-comparison payload.
type PriceComparison struct {
	MedicineName string         `json:"medicine_name"`
	Prices       []PriceListing `json:"prices"`
	MedicineInfo *MedicineInfo  `json:"medicine_info,omitempty"`
	ImageURL     string         `json:"image_url,omitempty"`
}

// OriginalMedicine describes the queried medicine in an alternative report.
type OriginalMedicine struct {
	Name              string   `json:"name"`
	Price             string   `json:"price,omitempty"`
	Category          string   `json:"category,omitempty"`
	PrimaryUse        string   `json:"primary_use,omitempty"`
	ActiveIngredients []string `json:"active_ingredients"`
}

// AlternativeReport is the /alternative-medicine-price payload.
type AlternativeReport struct {
	OriginalMedicine OriginalMedicine   `json:"original_medicine"`
	Alternatives     []BrandAlternative `json:"alternatives"`
}
