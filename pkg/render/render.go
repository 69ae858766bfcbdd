// Package render writes bills for people and machines.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/levenlabs/go-lflag"
	"github.com/pterm/pterm"

	"github.com/raterudder/tariffcalc/pkg/bill"
	"github.com/raterudder/tariffcalc/pkg/types"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Renderer writes bill results to an output stream.
type Renderer struct {
	out       io.Writer
	format    Format
	breakdown bool
	noColor   bool
}

// Configured registers the output flags and returns a Renderer writing to out.
func Configured(out io.Writer) *Renderer {
	r := &Renderer{out: out}
	format := lflag.String("format", string(FormatText), "Output format (text or json)")
	breakdown := lflag.Bool("breakdown", false, "Show the energy, service and levies breakdown")
	noColor := lflag.Bool("no-color", false, "Disable coloured output")

	lflag.Do(func() {
		r.breakdown = *breakdown
		r.noColor = *noColor
		if err := r.SetFormat(Format(*format)); err != nil {
			panic(err)
		}
	})

	return r
}

// New returns a Renderer with explicit settings.
func New(out io.Writer, format Format, breakdown, noColor bool) (*Renderer, error) {
	r := &Renderer{out: out, breakdown: breakdown, noColor: noColor}
	if err := r.SetFormat(format); err != nil {
		return nil, err
	}
	return r, nil
}

// SetFormat validates and sets the output format.
func (r *Renderer) SetFormat(f Format) error {
	switch f {
	case FormatText, FormatJSON:
		r.format = f
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", f)
	}
}

// Amount formats a value with thousands separators and two decimals.
func Amount(v float64) string {
	// avoid "-0.00"
	if math.Abs(v) < 0.005 {
		v = 0
	}
	return humanize.FormatFloat("#,###.##", v)
}

type billOutput struct {
	Bill    types.BillResult `json:"bill"`
	Summary types.Summary    `json:"summary"`
}

type estimateOutput struct {
	Target  float64          `json:"target"`
	KWH     float64          `json:"kwh"`
	Bill    types.BillResult `json:"bill"`
	Summary types.Summary    `json:"summary"`
}

// Bill writes the bill for a consumption.
func (r *Renderer) Bill(res types.BillResult) error {
	if r.format == FormatJSON {
		return r.json(billOutput{Bill: res, Summary: res.Summary()})
	}
	return r.text(fmt.Sprintf("Total Amount (%s)", types.Currency), Amount(res.Total), res)
}

// Estimate writes the consumption estimated from a bill amount.
func (r *Renderer) Estimate(est bill.Estimate) error {
	if r.format == FormatJSON {
		return r.json(estimateOutput{
			Target:  est.Target,
			KWH:     est.KWH,
			Bill:    est.Bill,
			Summary: est.Bill.Summary(),
		})
	}
	return r.text("Estimated Consumption (kWh)", Amount(est.KWH), est.Bill)
}

// Info writes the supported years and categories.
func (r *Renderer) Info(info types.TariffInfo) error {
	if r.format == FormatJSON {
		return r.json(info)
	}
	data := pterm.TableData{{"Tariff Years", "Customer Categories"}}
	for i := 0; i < len(info.Years) || i < len(info.Categories); i++ {
		var year, category string
		if i < len(info.Years) {
			year = info.Years[i]
		}
		if i < len(info.Categories) {
			category = info.Categories[i].String()
		}
		data = append(data, []string{year, category})
	}
	return r.table(data)
}

func (r *Renderer) json(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) text(headline, value string, res types.BillResult) error {
	bold := color.New(color.FgWhite, color.Bold)
	if r.noColor {
		bold.DisableColor()
	}
	if _, err := fmt.Fprintf(r.out, "%s\n%s\n", headline, bold.Sprint(value)); err != nil {
		return err
	}
	if !r.breakdown {
		return nil
	}

	s := res.Summary()
	return r.table(pterm.TableData{
		{"Item", "Amount"},
		{fmt.Sprintf("Energy Charge (%s)", types.Currency), Amount(s.Energy)},
		{fmt.Sprintf("Service Charge (%s)", types.Currency), Amount(s.Service)},
		{fmt.Sprintf("%s (%s)", s.LeviesLabel, types.Currency), Amount(s.LeviesAndTaxes)},
	})
}

func (r *Renderer) table(data pterm.TableData) error {
	table := pterm.DefaultTable.WithHasHeader().WithData(data)
	if !r.noColor {
		table = table.WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan))
	}
	rendered, err := table.Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err = fmt.Fprintln(r.out, rendered)
	return err
}
