package actions

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseLeadingFloat(t *testing.T) {
	cases := map[string]float64{
		"42":       42,
		"3.5%":     3.5,
		"20 MB":    20,
		"-1.25":    -1.25,
		"99.9% hi": 99.9,
	}
	for input, want := range cases {
		got, err := parseLeadingFloat(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestParseLeadingFloatRejectsNonNumeric(t *testing.T) {
	for _, input := range []string{"", "MB", "n/a"} {
		_, err := parseLeadingFloat(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseLeadingFloatRecoversFormattedValues(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := rapid.Float64Range(0, 1e6).Draw(t, "value")
		text := strconv.FormatFloat(value, 'f', 2, 64)
		suffix := rapid.SampledFrom([]string{"", "%", " MB", " ms"}).Draw(t, "suffix")

		got, err := parseLeadingFloat(text + suffix)
		require.NoError(t, err)
		assert.InDelta(t, value, got, 0.005)
	})
}
