package tariff

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/raterudder/tariffcalc/pkg/types"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RateClass names a published unit rate.
type RateClass string

const (
	RateResidentialLifeline  RateClass = "RES_LIFELINE"
	RateResidentialBlock1    RateClass = "RES_B1"
	RateResidentialBlock2    RateClass = "RES_B2"
	RateNonResidentialBlock1 RateClass = "NONRES_B1"
	RateNonResidentialBlock2 RateClass = "NONRES_B2"
	RateSLTLowVoltage        RateClass = "SLT_LV"
	RateSLTMediumVoltage1    RateClass = "SLT_MV1"
	RateSLTMediumVoltage2    RateClass = "SLT_MV2"
	RateSLTHighVoltage       RateClass = "SLT_HV"
)

// ServiceClass names a published flat service charge.
type ServiceClass string

const (
	ServiceResidentialLifeline ServiceClass = "Residential (Lifeline)"
	ServiceResidentialOther    ServiceClass = "Residential (Other)"
	ServiceNonResidential      ServiceClass = "Non-Residential"
	ServiceSLT                 ServiceClass = "SLT"
)

// RateClasses lists every rate class a tariff year must publish.
func RateClasses() []RateClass {
	return []RateClass{
		RateResidentialLifeline,
		RateResidentialBlock1,
		RateResidentialBlock2,
		RateNonResidentialBlock1,
		RateNonResidentialBlock2,
		RateSLTLowVoltage,
		RateSLTMediumVoltage1,
		RateSLTMediumVoltage2,
		RateSLTHighVoltage,
	}
}

// ServiceClasses lists every service class a tariff year must publish.
func ServiceClasses() []ServiceClass {
	return []ServiceClass{
		ServiceResidentialLifeline,
		ServiceResidentialOther,
		ServiceNonResidential,
		ServiceSLT,
	}
}

// ratesPublishedPer is the consumption the published unit rates are quoted for.
var ratesPublishedPer = decimal.NewFromInt(100)

// Tariff is the schedule for a single year. Unit rates are per kWh.
type Tariff struct {
	year     string
	rates    map[RateClass]float64
	services map[ServiceClass]float64
}

// Year returns the tariff year.
func (t Tariff) Year() string {
	return t.year
}

// Rate returns the unit rate per kWh for the class.
func (t Tariff) Rate(c RateClass) float64 {
	return t.rates[c]
}

// ServiceCharge returns the flat service charge for the class.
func (t Tariff) ServiceCharge(c ServiceClass) float64 {
	return t.services[c]
}

// Table is an immutable registry of tariffs keyed by year.
type Table struct {
	years map[string]Tariff
}

// Lookup returns the tariff for the year.
func (tb *Table) Lookup(year string) (Tariff, error) {
	t, ok := tb.years[year]
	if !ok {
		return Tariff{}, fmt.Errorf("%w: unsupported tariff year: %q", types.ErrConfiguration, year)
	}
	return t, nil
}

// Years returns the supported tariff years in ascending order.
func (tb *Table) Years() []string {
	out := make([]string, 0, len(tb.years))
	for y := range tb.years {
		out = append(out, y)
	}
	sort.Strings(out)
	return out
}

type document struct {
	Years map[string]struct {
		Rates   map[RateClass]string    `yaml:"rates"`
		Service map[ServiceClass]string `yaml:"service"`
	} `yaml:"years"`
}

// Parse builds a Table from a YAML tariff document. Every year must publish
// every rate and service class, and nothing else.
func Parse(b []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode tariff document: %w", err)
	}
	if len(doc.Years) == 0 {
		return nil, fmt.Errorf("tariff document has no years")
	}

	tb := &Table{years: make(map[string]Tariff, len(doc.Years))}
	for year, y := range doc.Years {
		t := Tariff{
			year:     year,
			rates:    make(map[RateClass]float64, len(y.Rates)),
			services: make(map[ServiceClass]float64, len(y.Service)),
		}
		for _, rc := range RateClasses() {
			raw, ok := y.Rates[rc]
			if !ok {
				return nil, fmt.Errorf("tariff year %s is missing rate %s", year, rc)
			}
			d, err := parseAmount(raw)
			if err != nil {
				return nil, fmt.Errorf("tariff year %s rate %s: %w", year, rc, err)
			}
			t.rates[rc] = d.Div(ratesPublishedPer).InexactFloat64()
		}
		if len(y.Rates) != len(t.rates) {
			return nil, fmt.Errorf("tariff year %s has unknown rate classes", year)
		}
		for _, sc := range ServiceClasses() {
			raw, ok := y.Service[sc]
			if !ok {
				return nil, fmt.Errorf("tariff year %s is missing service charge %s", year, sc)
			}
			d, err := parseAmount(raw)
			if err != nil {
				return nil, fmt.Errorf("tariff year %s service charge %s: %w", year, sc, err)
			}
			t.services[sc] = d.InexactFloat64()
		}
		if len(y.Service) != len(t.services) {
			return nil, fmt.Errorf("tariff year %s has unknown service classes", year)
		}
		tb.years[year] = t
	}
	return tb, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative amount %q", raw)
	}
	return d, nil
}

//go:embed tariffs.yaml
var published []byte

var defaultTable = func() *Table {
	tb, err := Parse(published)
	if err != nil {
		panic(fmt.Errorf("failed to load published tariffs: %w", err))
	}
	return tb
}()

// Default returns the published tariff table.
func Default() *Table {
	return defaultTable
}

// Lookup returns the published tariff for the year.
func Lookup(year string) (Tariff, error) {
	return defaultTable.Lookup(year)
}
