package format

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeDigits(t *testing.T) {
	assert.Equal(t, "100000000", SanitizeDigits("Rp 100.000.000"))
	assert.Equal(t, "15000", SanitizeDigits("15,000"))
	assert.Equal(t, "", SanitizeDigits("abc"))
}

func TestParseAmount_EmptyIsZero(t *testing.T) {
	assert.True(t, ParseAmount("").IsZero())
	assert.True(t, ParseAmount("Rp").IsZero())
	assert.True(t, ParseAmount("20.000.000").Equal(decimal.NewFromInt(20000000)))
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var body struct {
		Number    Amount `json:"number"`
		Formatted Amount `json:"formatted"`
		Fraction  Amount `json:"fraction"`
		Missing   Amount `json:"missing"`
	}
	err := json.Unmarshal([]byte(`{"number": 120000000, "formatted": "85.000.000", "fraction": 1.5, "missing": null}`), &body)
	require.NoError(t, err)

	assert.True(t, body.Number.Equal(decimal.NewFromInt(120000000)))
	assert.True(t, body.Formatted.Equal(decimal.NewFromInt(85000000)))
	assert.True(t, body.Fraction.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, body.Missing.IsZero())
}

// Formatted text carries whole rupiah only: every non-digit, including a sign
// or decimal point, is dropped. JSON numbers keep both.
func TestAmount_StringsDropSignAndDecimalPoint(t *testing.T) {
	assert.True(t, ParseAmount("14500.5").Equal(decimal.NewFromInt(145005)))
	assert.True(t, ParseAmount("-5000").Equal(decimal.NewFromInt(5000)))

	var body struct {
		Text   Amount `json:"text"`
		Number Amount `json:"number"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"text": "14500.5", "number": -14500.5}`), &body))
	assert.True(t, body.Text.Equal(decimal.NewFromInt(145005)))
	assert.True(t, body.Number.Equal(decimal.RequireFromString("-14500.5")))
}

func TestAmount_UnmarshalJSON_Invalid(t *testing.T) {
	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`true`), &a))
}

func TestRupiah_GroupsThousands(t *testing.T) {
	assert.Equal(t, "Rp 2.500.000", Rupiah(decimal.NewFromInt(2500000)))
	assert.Equal(t, "Rp 0", Rupiah(decimal.Zero))
	assert.Equal(t, "-Rp 1.000", Rupiah(decimal.NewFromInt(-1000)))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "10 detik yang lalu"},
		{30 * time.Minute, "30 menit yang lalu"},
		{5 * time.Hour, "5 jam yang lalu"},
		{36 * time.Hour, "1 hari yang lalu"},
		{65 * 24 * time.Hour, "2 bulan yang lalu"},
		{400 * 24 * time.Hour, "1 tahun yang lalu"},
		{-time.Minute, "0 detik yang lalu"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RelativeTime(now.Add(-c.ago), now))
	}
}
