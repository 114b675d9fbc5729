package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkonya/methu-forecast/internal/domain"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
		ok       bool
	}{
		{"plain integer", "12", 12, true},
		{"decimal point", "3.5", 3.5, true},
		{"comma decimal", "3,5", 3.5, true},
		{"negative comma decimal", "-0,0", 0.0, true},
		{"unicode minus", "−3,5", -3.5, true},
		{"en-dash minus", "–4", -4, true},
		{"embedded unit", "12 °C", 12, true},
		{"non-breaking space", "1 013 hPa", 1013, true},
		{"narrow non-breaking space", "1 013", 1013, true},
		{"no literal", "nincs adat", 0, false},
		{"empty", "", 0, false},
		{"lone dash", "-", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ParseNumber(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, v)
			}
		})
	}
}

func TestWindDirection(t *testing.T) {
	vocab := DefaultVocabulary()

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"abbreviation", "É", "N"},
		{"lowercase abbreviation", "dny", "SW"},
		{"full name", "északi", "N"},
		{"full name mixed case", "Délnyugati", "SW"},
		{"calm", "szélcsend", "calm"},
		{"variable", "változó", "variable"},
		{"sixteen-point", "ÉÉK", "NNE"},
		{"whitespace trimmed", "  K  ", "E"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, vocab.WindDirection(tt.text))
		})
	}

	t.Run("unknown text kept verbatim", func(t *testing.T) {
		assert.Equal(t, "örvénylő", vocab.WindDirection("örvénylő"))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		assert.Equal(t, "", vocab.WindDirection("  "))
	})
}

func TestDirectionToBearing(t *testing.T) {
	vocab := DefaultVocabulary()

	t.Run("north is zero", func(t *testing.T) {
		deg, ok := vocab.DirectionToBearing("N")
		require.True(t, ok)
		assert.Equal(t, 0.0, deg)
	})

	t.Run("case insensitive", func(t *testing.T) {
		deg, ok := vocab.DirectionToBearing("ssw")
		require.True(t, ok)
		assert.Equal(t, 202.5, deg)
	})

	t.Run("22.5 degree steps", func(t *testing.T) {
		deg, ok := vocab.DirectionToBearing("NNE")
		require.True(t, ok)
		assert.Equal(t, 22.5, deg)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, ok := vocab.DirectionToBearing("calm")
		assert.False(t, ok)
	})
}

func TestNormalizeIconCode(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
		ok       bool
	}{
		{"legacy day", "/images/ikonok/04.gif", "04", true},
		{"legacy night", "/images/ikonok/n02.png", "n02", true},
		{"w scheme single digit", "/img/w4.png", "04", true},
		{"w scheme two digits", "/img/w13.png", "13", true},
		{"w scheme night suffix", "/img/w2ej.png", "n02", true},
		{"bare filename", "n09.gif", "n09", true},
		{"uppercase extension", "/img/W4.PNG", "04", true},
		{"not an icon path", "/img/logo.svg2", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := normalizeIconCode(tt.src)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestIconCondition(t *testing.T) {
	vocab := DefaultVocabulary()

	tests := []struct {
		name     string
		src      string
		alt      string
		expected domain.Condition
	}{
		{"mapped day code", "/i/01.gif", "", domain.ConditionSunny},
		{"mapped night code", "/i/n01.gif", "", domain.ConditionClearNight},
		{"w scheme", "/i/w9.png", "", domain.ConditionLightningRainy},
		{"unmapped code", "/i/w099.png", "", domain.ConditionExceptional},
		{"unmapped code with keyword alt", "/i/87.gif", "zivatar várható", domain.ConditionLightningRainy},
		{"keyword only", "", "erősen felhős", domain.ConditionCloudy},
		{"partly beats cloudy", "", "részben felhős", domain.ConditionPartlyCloudy},
		{"nothing recognizable", "", "ismeretlen", domain.ConditionExceptional},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, vocab.IconCondition(tt.src, tt.alt))
		})
	}
}

func TestTooltipExtraction(t *testing.T) {
	t.Run("description from ktext payload", func(t *testing.T) {
		attr := `tooltip.show('<div class=ktext>Közepesen felhős</div>')`
		assert.Equal(t, "Közepesen felhős", tooltipDescription(attr))
	})

	t.Run("first matching attribute wins", func(t *testing.T) {
		assert.Equal(t, "Borult", tooltipDescription("", "x class=ktext>Borult< y", "class=ktext>Derült<"))
	})

	t.Run("no payload", func(t *testing.T) {
		assert.Equal(t, "", tooltipDescription("title without payload", ""))
	})

	t.Run("bearing from fok pattern", func(t *testing.T) {
		deg, ok := tooltipBearing(`Délnyugati szél (225 fok)`)
		require.True(t, ok)
		assert.Equal(t, 225.0, deg)
	})

	t.Run("bearing over 360 rejected", func(t *testing.T) {
		_, ok := tooltipBearing("(845 fok)")
		assert.False(t, ok)
	})

	t.Run("no bearing", func(t *testing.T) {
		_, ok := tooltipBearing("Délnyugati szél")
		assert.False(t, ok)
	})
}
