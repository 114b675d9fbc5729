package scrape

import (
	"time"

	"github.com/dkonya/methu-forecast/internal/domain"
)

// Markers names the CSS classes the structured met.hu table variant puts on
// its cells. They are the stable per-cell tags the primary parsing strategy
// dispatches on, independent of visible text.
type Markers struct {
	Date string // per-row date cell, spans several rows via rowspan
	Time string // "HH:MM" time label

	Temperature string // slot temperature; paired with Min/Max for daily extremes
	Min         string // secondary marker on a temperature cell: explicit daily minimum
	Max         string // secondary marker on a temperature cell: explicit daily maximum

	Precipitation string
	CloudCover    string
	WindIcon      string // direction arrow icon, bearing hidden in the tooltip
	WindText      string // direction as text
	Wind          string // speed and gust share this marker; first cell is speed
	Pressure      string
	Icon          string // weather icon plus tooltip description
}

// Vocabulary bundles every locale table the engine needs. It is the only
// contract with the upstream site's markup and wording, injected immutably at
// construction so tests can substitute alternates without touching parse logic.
type Vocabulary struct {
	Months   map[string]time.Month
	Weekdays map[string]time.Weekday

	// DayParts maps Hungarian time-of-day words to a representative hour.
	DayParts map[string]int

	// WindDirections maps lowercased Hungarian direction names to compass codes.
	WindDirections map[string]string

	// Bearings maps compass codes to degrees in 22.5° steps.
	Bearings map[string]float64

	// Icons maps normalized icon filename codes to canonical conditions.
	// Keys are two-digit codes, night variants prefixed with "n".
	Icons map[string]domain.Condition

	// ConditionKeywords maps description substrings to conditions, the
	// fallback when an icon code is absent from Icons. Ordered: first hit wins.
	ConditionKeywords []ConditionKeyword

	Markers Markers

	// Placeholders are full-document texts that mean "no forecast returned".
	Placeholders []string
}

// ConditionKeyword is one entry of the description-keyword fallback table.
type ConditionKeyword struct {
	Words     []string
	Condition domain.Condition
}

// DefaultVocabulary returns the met.hu tables. The icon table covers both
// filename schemes the site has used: the legacy two-digit scheme with an "n"
// night prefix ("04.gif", "n02.gif") and the newer "w"-prefixed scheme with an
// "ej" night suffix ("w4.png", "w2ej.png"); both normalize to the same keys.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Months: map[string]time.Month{
			"január": time.January, "február": time.February, "március": time.March,
			"április": time.April, "május": time.May, "június": time.June,
			"július": time.July, "augusztus": time.August, "szeptember": time.September,
			"október": time.October, "november": time.November, "december": time.December,
		},
		Weekdays: map[string]time.Weekday{
			"hétfő": time.Monday, "kedd": time.Tuesday, "szerda": time.Wednesday,
			"csütörtök": time.Thursday, "péntek": time.Friday,
			"szombat": time.Saturday, "vasárnap": time.Sunday,
		},
		DayParts: map[string]int{
			"éjfél": 0, "éjjel": 0, "hajnal": 3,
			"reggel": 6, "délelőtt": 9,
			"délben": 12, "dél": 12,
			"délután": 15, "este": 18, "éjszaka": 21,
		},
		WindDirections: map[string]string{
			"é": "N", "éék": "NNE", "ék": "NE", "kék": "ENE",
			"k": "E", "kdk": "ESE", "dk": "SE", "ddk": "SSE",
			"d": "S", "ddny": "SSW", "dny": "SW", "nydny": "WSW",
			"ny": "W", "nyény": "WNW", "ény": "NW", "éény": "NNW",
			"északi": "N", "északkeleti": "NE", "keleti": "E", "délkeleti": "SE",
			"déli": "S", "délnyugati": "SW", "nyugati": "W", "északnyugati": "NW",
			"szélcsend": "calm", "változó": "variable",
		},
		Bearings: map[string]float64{
			"N": 0, "NNE": 22.5, "NE": 45, "ENE": 67.5,
			"E": 90, "ESE": 112.5, "SE": 135, "SSE": 157.5,
			"S": 180, "SSW": 202.5, "SW": 225, "WSW": 247.5,
			"W": 270, "WNW": 292.5, "NW": 315, "NNW": 337.5,
		},
		Icons: map[string]domain.Condition{
			"01": domain.ConditionSunny,
			"02": domain.ConditionPartlyCloudy,
			"03": domain.ConditionPartlyCloudy,
			"04": domain.ConditionCloudy,
			"05": domain.ConditionCloudy,
			"06": domain.ConditionRainy,
			"07": domain.ConditionRainy,
			"08": domain.ConditionPouring,
			"09": domain.ConditionLightningRainy,
			"10": domain.ConditionSnowy,
			"11": domain.ConditionSnowyRainy,
			"12": domain.ConditionFog,
			"13": domain.ConditionWindy,
			"14": domain.ConditionHail,

			"n01": domain.ConditionClearNight,
			"n02": domain.ConditionPartlyCloudy,
			"n03": domain.ConditionPartlyCloudy,
			"n04": domain.ConditionCloudy,
			"n05": domain.ConditionCloudy,
			"n06": domain.ConditionRainy,
			"n07": domain.ConditionRainy,
			"n08": domain.ConditionPouring,
			"n09": domain.ConditionLightningRainy,
			"n10": domain.ConditionSnowy,
			"n11": domain.ConditionSnowyRainy,
			"n12": domain.ConditionFog,
		},
		ConditionKeywords: []ConditionKeyword{
			{Words: []string{"zivatar", "thunder"}, Condition: domain.ConditionLightningRainy},
			{Words: []string{"hó", "havaz", "snow"}, Condition: domain.ConditionSnowy},
			{Words: []string{"eső", "esik", "rain", "csapadék"}, Condition: domain.ConditionRainy},
			{Words: []string{"köd", "fog"}, Condition: domain.ConditionFog},
			{Words: []string{"derült", "napos", "clear", "sunny"}, Condition: domain.ConditionSunny},
			{Words: []string{"változékony", "részben felhős", "partly"}, Condition: domain.ConditionPartlyCloudy},
			{Words: []string{"felhős", "borult", "cloud"}, Condition: domain.ConditionCloudy},
		},
		Markers: Markers{
			Date:          "datum",
			Time:          "idopont",
			Temperature:   "homerseklet",
			Min:           "min",
			Max:           "max",
			Precipitation: "csapadek",
			CloudCover:    "felhozet",
			WindIcon:      "szelirany-ikon",
			WindText:      "szelirany",
			Wind:          "szel",
			Pressure:      "legnyomas",
			Icon:          "ikon",
		},
		Placeholders: []string{"idojaras", "időjárás"},
	}
}
