package tariff

import (
	"strings"
	"testing"

	"github.com/raterudder/tariffcalc/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishedTable(t *testing.T) {
	assert.Equal(t, []string{"2025", "2026"}, Default().Years())

	t.Run("2025", func(t *testing.T) {
		tr, err := Lookup("2025")
		require.NoError(t, err)
		assert.Equal(t, "2025", tr.Year())
		assert.InDelta(t, 0.804389, tr.Rate(RateResidentialLifeline), 1e-12)
		assert.InDelta(t, 1.822442, tr.Rate(RateResidentialBlock1), 1e-12)
		assert.InDelta(t, 2.408059, tr.Rate(RateResidentialBlock2), 1e-12)
		assert.InDelta(t, 1.645377, tr.Rate(RateNonResidentialBlock1), 1e-12)
		assert.InDelta(t, 2.044809, tr.Rate(RateNonResidentialBlock2), 1e-12)
		assert.InDelta(t, 2.455597, tr.Rate(RateSLTLowVoltage), 1e-12)
		assert.InDelta(t, 1.960119, tr.Rate(RateSLTMediumVoltage1), 1e-12)
		assert.InDelta(t, 1.278861, tr.Rate(RateSLTMediumVoltage2), 1e-12)
		assert.InDelta(t, 1.960119, tr.Rate(RateSLTHighVoltage), 1e-12)

		assert.Equal(t, 2.13, tr.ServiceCharge(ServiceResidentialLifeline))
		assert.Equal(t, 10.7301, tr.ServiceCharge(ServiceResidentialOther))
		assert.Equal(t, 12.428, tr.ServiceCharge(ServiceNonResidential))
		assert.Equal(t, 500.0, tr.ServiceCharge(ServiceSLT))
	})

	t.Run("2026", func(t *testing.T) {
		tr, err := Lookup("2026")
		require.NoError(t, err)
		assert.InDelta(t, 0.883739, tr.Rate(RateResidentialLifeline), 1e-12)
		assert.InDelta(t, 2.645604, tr.Rate(RateResidentialBlock2), 1e-12)
		assert.InDelta(t, 1.342804, tr.Rate(RateSLTMediumVoltage2), 1e-12)
		assert.Equal(t, 10.730886, tr.ServiceCharge(ServiceResidentialOther))
		assert.Equal(t, 12.428245, tr.ServiceCharge(ServiceNonResidential))
	})

	t.Run("MV1/HV and HV share a price", func(t *testing.T) {
		for _, year := range Default().Years() {
			tr, err := Lookup(year)
			require.NoError(t, err)
			assert.Equal(t, tr.Rate(RateSLTMediumVoltage1), tr.Rate(RateSLTHighVoltage), year)
		}
	})

	t.Run("every class published", func(t *testing.T) {
		for _, year := range Default().Years() {
			tr, err := Lookup(year)
			require.NoError(t, err)
			for _, rc := range RateClasses() {
				assert.Greater(t, tr.Rate(rc), 0.0, "%s %s", year, rc)
			}
			for _, sc := range ServiceClasses() {
				assert.Greater(t, tr.ServiceCharge(sc), 0.0, "%s %s", year, sc)
			}
		}
	})
}

func TestLookupUnsupportedYear(t *testing.T) {
	_, err := Lookup("2099")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConfiguration)
	assert.Contains(t, err.Error(), "unsupported tariff year")
}

func TestParse(t *testing.T) {
	const valid = `
years:
  "2030":
    rates:
      RES_LIFELINE: "1"
      RES_B1: "2"
      RES_B2: "3"
      NONRES_B1: "4"
      NONRES_B2: "5"
      SLT_LV: "6"
      SLT_MV1: "7"
      SLT_MV2: "8"
      SLT_HV: "9"
    service:
      "Residential (Lifeline)": "1"
      "Residential (Other)": "2"
      "Non-Residential": "3"
      "SLT": "4"
`

	t.Run("valid", func(t *testing.T) {
		tb, err := Parse([]byte(valid))
		require.NoError(t, err)
		assert.Equal(t, []string{"2030"}, tb.Years())
		tr, err := tb.Lookup("2030")
		require.NoError(t, err)
		assert.InDelta(t, 0.09, tr.Rate(RateSLTHighVoltage), 1e-12)
		assert.Equal(t, 4.0, tr.ServiceCharge(ServiceSLT))

		_, err = tb.Lookup("2025")
		assert.ErrorIs(t, err, types.ErrConfiguration)
	})

	t.Run("missing rate", func(t *testing.T) {
		_, err := Parse([]byte(strings.Replace(valid, `      SLT_HV: "9"`+"\n", "", 1)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing rate SLT_HV")
	})

	t.Run("missing service charge", func(t *testing.T) {
		_, err := Parse([]byte(strings.Replace(valid, `      "SLT": "4"`+"\n", "", 1)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing service charge SLT")
	})

	t.Run("unknown rate class", func(t *testing.T) {
		_, err := Parse([]byte(strings.Replace(valid, `      SLT_HV: "9"`, `      SLT_HV: "9"`+"\n"+`      SLT_XV: "9"`, 1)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown rate classes")
	})

	t.Run("invalid amount", func(t *testing.T) {
		_, err := Parse([]byte(strings.Replace(valid, `RES_B1: "2"`, `RES_B1: "two"`, 1)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid amount")
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := Parse([]byte(strings.Replace(valid, `RES_B1: "2"`, `RES_B1: "-2"`, 1)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative amount")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Parse([]byte("years: {}\n"))
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Parse([]byte("years: [\n"))
		assert.Error(t, err)
	})
}
