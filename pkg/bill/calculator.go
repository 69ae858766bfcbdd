// Package bill computes itemized electricity bills from consumption and
// estimates consumption from a bill amount.
package bill

import (
	"fmt"
	"math"

	"github.com/raterudder/tariffcalc/pkg/tariff"
	"github.com/raterudder/tariffcalc/pkg/types"
)

const (
	// LifelineMaxKWH is the largest residential consumption billed entirely
	// at the lifeline rate.
	LifelineMaxKWH = 30.0
	// BlockKWH is the size of the first block for block-tiered categories.
	BlockKWH = 300.0
	// LevyRate applies to the energy charge of every category.
	LevyRate = 0.05
	// TaxRate applies to energy plus service charges of taxable categories.
	TaxRate = 0.20
)

// sltRates maps each special-load-tariff category to its rate class. MV1/HV
// and HV are published at the same price; HV mines pay the HV rate.
var sltRates = map[types.Category]tariff.RateClass{
	types.CategorySLTLV:      tariff.RateSLTLowVoltage,
	types.CategorySLTMV1HV:   tariff.RateSLTMediumVoltage1,
	types.CategorySLTMV2:     tariff.RateSLTMediumVoltage2,
	types.CategorySLTHV:      tariff.RateSLTHighVoltage,
	types.CategorySLTHVMines: tariff.RateSLTHighVoltage,
}

// Calculator computes bills against a tariff table. It holds no mutable state
// and is safe for concurrent use.
type Calculator struct {
	table *tariff.Table
}

// New returns a Calculator using the given table.
func New(table *tariff.Table) *Calculator {
	return &Calculator{table: table}
}

var defaultCalculator = New(tariff.Default())

// Default returns the Calculator for the published tariffs.
func Default() *Calculator {
	return defaultCalculator
}

// CalculateBill computes the bill for a category given by its published name
// using the published tariffs.
func CalculateBill(year, category string, kwh float64) (types.BillResult, error) {
	return defaultCalculator.CalculateBill(year, category, kwh)
}

// CalculateBill computes the bill for a category given by its published name.
func (c *Calculator) CalculateBill(year, category string, kwh float64) (types.BillResult, error) {
	t, err := c.table.Lookup(year)
	if err != nil {
		return types.BillResult{}, err
	}
	if err := validateKWH(kwh); err != nil {
		return types.BillResult{}, err
	}
	cat, err := types.ParseCategory(category)
	if err != nil {
		return types.BillResult{}, err
	}
	return calculate(t, cat, kwh)
}

// Calculate computes the bill for a category.
func (c *Calculator) Calculate(year string, category types.Category, kwh float64) (types.BillResult, error) {
	t, err := c.table.Lookup(year)
	if err != nil {
		return types.BillResult{}, err
	}
	if err := validateKWH(kwh); err != nil {
		return types.BillResult{}, err
	}
	return calculate(t, category, kwh)
}

func validateKWH(kwh float64) error {
	if math.IsNaN(kwh) || math.IsInf(kwh, 0) {
		return fmt.Errorf("%w: kWh must be a finite number", types.ErrInvalidInput)
	}
	if kwh < 0 {
		return fmt.Errorf("%w: kWh cannot be negative", types.ErrInvalidInput)
	}
	return nil
}

func calculate(t tariff.Tariff, category types.Category, kwh float64) (types.BillResult, error) {
	var (
		energy, service float64
		lines           []types.BillLine
	)

	switch category {
	case types.CategoryResidential:
		if kwh <= LifelineMaxKWH {
			energy = kwh * t.Rate(tariff.RateResidentialLifeline)
			service = t.ServiceCharge(tariff.ServiceResidentialLifeline)
			lines = append(lines, types.BillLine{Label: types.LabelEnergyLifeline, Amount: energy})
		} else {
			energy, lines = blocks(kwh, t.Rate(tariff.RateResidentialBlock1), t.Rate(tariff.RateResidentialBlock2))
			service = t.ServiceCharge(tariff.ServiceResidentialOther)
		}
	case types.CategoryNonResidential:
		energy, lines = blocks(kwh, t.Rate(tariff.RateNonResidentialBlock1), t.Rate(tariff.RateNonResidentialBlock2))
		service = t.ServiceCharge(tariff.ServiceNonResidential)
	case types.CategorySLTLV, types.CategorySLTMV1HV, types.CategorySLTMV2, types.CategorySLTHV, types.CategorySLTHVMines:
		energy = kwh * t.Rate(sltRates[category])
		service = t.ServiceCharge(tariff.ServiceSLT)
		lines = append(lines, types.BillLine{Label: types.LabelEnergy, Amount: energy})
	default:
		return types.BillResult{}, fmt.Errorf("%w: unsupported customer category: %s", types.ErrInvalidInput, category)
	}

	levy := LevyRate * energy
	var tax float64
	if category.IsTaxable() {
		tax = TaxRate * (energy + service)
	}
	total := energy + service + levy + tax

	// levy and tax lines are emitted even when zero
	lines = append(lines,
		types.BillLine{Label: types.LabelService, Amount: service},
		types.BillLine{Label: types.LabelLevies, Amount: levy},
		types.BillLine{Label: types.LabelTaxes, Amount: tax},
		types.BillLine{Label: types.LabelTotal, Amount: total},
	)

	return types.BillResult{
		Year:          t.Year(),
		Category:      category,
		KWH:           kwh,
		EnergyCharge:  energy,
		ServiceCharge: service,
		Levy:          levy,
		Tax:           tax,
		Total:         total,
		Breakdown:     lines,
	}, nil
}

// blocks splits kwh into the first BlockKWH and the remainder. The block 2
// line is omitted when nothing falls into it.
func blocks(kwh, rate1, rate2 float64) (float64, []types.BillLine) {
	kwh1 := math.Min(kwh, BlockKWH)
	kwh2 := math.Max(0, kwh-BlockKWH)
	e1 := kwh1 * rate1
	e2 := kwh2 * rate2

	lines := []types.BillLine{{Label: types.LabelEnergyBlock1, Amount: e1}}
	if kwh2 > 0 {
		lines = append(lines, types.BillLine{Label: types.LabelEnergyBlock2, Amount: e2})
	}
	return e1 + e2, lines
}
