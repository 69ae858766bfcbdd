package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raterudder/tariffcalc/pkg/bill"
	"github.com/raterudder/tariffcalc/pkg/log"
	"github.com/raterudder/tariffcalc/pkg/render"
	"github.com/raterudder/tariffcalc/pkg/types"
)

func init() {
	log.SetDefaultLogLevel(slog.LevelError)
}

func runJSON(t *testing.T, q *query) (map[string]any, error) {
	t.Helper()
	var buf bytes.Buffer
	r, err := render.New(&buf, render.FormatJSON, false, true)
	require.NoError(t, err)
	if err := q.run(context.Background(), bill.Default(), r); err != nil {
		return nil, err
	}
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out, nil
}

func TestQueryRun(t *testing.T) {
	t.Run("bill from kwh", func(t *testing.T) {
		out, err := runJSON(t, &query{year: "2025", category: "Residential", kwh: "20"})
		require.NoError(t, err)
		b := out["bill"].(map[string]any)
		assert.Equal(t, "Residential", b["category"])
		assert.InDelta(t, 19.022169, b["total"], 1e-9)
	})

	t.Run("kwh from bill", func(t *testing.T) {
		out, err := runJSON(t, &query{year: "2025", category: "SLT-LV", amount: "3669.49625", tolerance: "0.000001"})
		require.NoError(t, err)
		assert.InDelta(t, 1000, out["kwh"], 1e-3)
	})

	t.Run("list", func(t *testing.T) {
		out, err := runJSON(t, &query{list: true})
		require.NoError(t, err)
		assert.Equal(t, []any{"2025", "2026"}, out["years"])
		assert.Len(t, out["categories"], len(types.Categories()))
	})

	t.Run("input errors", func(t *testing.T) {
		for name, q := range map[string]*query{
			"neither":        {year: "2025", category: "Residential"},
			"both":           {year: "2025", category: "Residential", kwh: "1", amount: "1"},
			"bad kwh":        {year: "2025", category: "Residential", kwh: "ten"},
			"negative kwh":   {year: "2025", category: "Residential", kwh: "-1"},
			"bad amount":     {year: "2025", category: "Residential", amount: "x"},
			"bad category":   {year: "2025", category: "Commercial", amount: "100"},
			"bad tolerance":  {year: "2025", category: "Residential", amount: "100", tolerance: "0"},
			"bad iterations": {year: "2025", category: "Residential", amount: "100", maxIterations: "-3"},
		} {
			_, err := runJSON(t, q)
			assert.ErrorIs(t, err, types.ErrInvalidInput, name)
		}
	})

	t.Run("unsupported year", func(t *testing.T) {
		_, err := runJSON(t, &query{year: "2099", category: "Residential", kwh: "10"})
		assert.ErrorIs(t, err, types.ErrConfiguration)
	})

	t.Run("unreachable amount", func(t *testing.T) {
		_, err := runJSON(t, &query{year: "2025", category: "Residential", amount: "10000000"})
		assert.ErrorIs(t, err, types.ErrSearchBound)
	})
}
