package types

// Currency is the ISO code of every amount produced by the engine.
const Currency = "GHS"

// Bill line labels in the order they can appear in a breakdown.
const (
	LabelEnergyLifeline = "Energy charge (Lifeline)"
	LabelEnergyBlock1   = "Energy charge block 1"
	LabelEnergyBlock2   = "Energy charge block 2"
	LabelEnergy         = "Energy charge"
	LabelService        = "Service charge"
	LabelLevies         = "Levies"
	LabelTaxes          = "Taxes"
	LabelTotal          = "Total payable"
)

// BillLine is one itemized charge in a bill breakdown.
type BillLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// BillResult is the itemized bill for a consumption under a tariff year and
// customer category.
type BillResult struct {
	Year     string   `json:"year"`
	Category Category `json:"category"`
	KWH      float64  `json:"kwh"`

	EnergyCharge  float64 `json:"energyCharge"`
	ServiceCharge float64 `json:"serviceCharge"`
	Levy          float64 `json:"levy"`
	Tax           float64 `json:"tax"`

	// Total is EnergyCharge + ServiceCharge + Levy + Tax.
	Total float64 `json:"total"`

	// Breakdown is in display order. The last line is always the total.
	Breakdown []BillLine `json:"breakdown"`
}

// Summary is the condensed view of a bill shown to customers. Residential
// bills carry no tax, so their levies line is the levy alone; every other
// category shows levies and taxes combined.
type Summary struct {
	Energy         float64 `json:"energy"`
	Service        float64 `json:"service"`
	Levies         float64 `json:"levies"`
	Taxes          float64 `json:"taxes"`
	LeviesAndTaxes float64 `json:"leviesAndTaxes"`
	LeviesLabel    string  `json:"leviesLabel"`
	Total          float64 `json:"total"`
}

// Summary derives the condensed view from the typed amounts of the bill.
func (r BillResult) Summary() Summary {
	s := Summary{
		Energy:  r.EnergyCharge,
		Service: r.ServiceCharge,
		Levies:  r.Levy,
		Taxes:   r.Tax,
		Total:   r.Total,
	}
	if r.Category.IsResidential() {
		s.LeviesLabel = "Levies"
		s.LeviesAndTaxes = r.Levy
	} else {
		s.LeviesLabel = "Levies and Taxes"
		s.LeviesAndTaxes = r.Levy + r.Tax
	}
	return s
}

// TariffInfo describes what the tariff engine supports.
type TariffInfo struct {
	Years      []string   `json:"years"`
	Categories []Category `json:"categories"`
	Currency   string     `json:"currency"`
}
