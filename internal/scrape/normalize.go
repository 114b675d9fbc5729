package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dkonya/methu-forecast/internal/domain"
)

var (
	// numberRe matches the first signed decimal literal in a cell.
	numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

	// bearingRe pulls a degree value out of a wind tooltip, e.g. "(225 fok)".
	bearingRe = regexp.MustCompile(`\((\d{1,3})\s*fok\)`)

	// ktextRe extracts the description payload from a met.hu tooltip attribute,
	// e.g. onmouseover="...<div class=ktext>Közepesen felhős</div>...".
	ktextRe = regexp.MustCompile(`class=ktext>([^<]+)<`)

	// iconLegacyRe matches the two-digit icon scheme with optional night prefix:
	// "04.gif", "n02.png".
	iconLegacyRe = regexp.MustCompile(`(?i)(?:^|/)(n?)(\d{2})\.(?:gif|png|jpe?g|svg)`)

	// iconWRe matches the "w" icon scheme with optional "ej" night suffix:
	// "w4.png", "w15ej.png".
	iconWRe = regexp.MustCompile(`(?i)(?:^|/)w(\d{1,3})(ej)?\.(?:gif|png|jpe?g|svg)`)
)

// numberReplacer unifies the decimal separator and the three minus variants
// met.hu emits, and strips the spaces used as thousands padding.
var numberReplacer = strings.NewReplacer(
	",", ".",
	"−", "-", // Unicode minus
	"–", "-", // en-dash
	" ", "", // non-breaking space
	" ", "", // narrow non-breaking space
)

// ParseNumber extracts the first signed decimal literal from locale-formatted
// cell text. Returns false when the text holds no numeric literal; it never
// fails on malformed input.
func ParseNumber(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	cleaned := numberReplacer.Replace(text)
	m := numberRe.FindString(cleaned)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseInt is ParseNumber truncated to an int, for percentage fields.
func ParseInt(text string) (int, bool) {
	v, ok := ParseNumber(text)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// WindDirection resolves a Hungarian direction name to its compass code.
// Unrecognized but non-empty text is returned verbatim so present-but-unmapped
// data stays visible; only empty input yields "".
func (v Vocabulary) WindDirection(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if code, ok := v.WindDirections[strings.ToLower(text)]; ok {
		return code
	}
	return text
}

// DirectionToBearing converts a compass code to degrees in 22.5° steps.
func (v Vocabulary) DirectionToBearing(code string) (float64, bool) {
	deg, ok := v.Bearings[strings.ToUpper(code)]
	return deg, ok
}

// IconCondition decodes a weather icon reference (the img src, falling back to
// keyword-matching the alt/description text) into a canonical condition.
// Codes missing from the icon table map to [domain.ConditionExceptional], not
// to an empty condition, so a stale vocabulary stays visible downstream.
func (v Vocabulary) IconCondition(src, alt string) domain.Condition {
	if code, ok := normalizeIconCode(src); ok {
		if cond, ok := v.Icons[code]; ok {
			return cond
		}
	}

	if cond, ok := v.conditionFromKeywords(alt); ok {
		return cond
	}
	return domain.ConditionExceptional
}

// normalizeIconCode reduces both met.hu filename schemes to the icon table's
// key form: a two-digit code with an "n" prefix for night variants.
func normalizeIconCode(src string) (string, bool) {
	if m := iconWRe.FindStringSubmatch(src); m != nil {
		code := m[1]
		if len(code) == 1 {
			code = "0" + code
		}
		if m[2] != "" {
			code = "n" + code
		}
		return strings.ToLower(code), true
	}
	if m := iconLegacyRe.FindStringSubmatch(src); m != nil {
		return strings.ToLower(m[1] + m[2]), true
	}
	return "", false
}

func (v Vocabulary) conditionFromKeywords(text string) (domain.Condition, bool) {
	t := strings.ToLower(text)
	if t == "" {
		return "", false
	}
	for _, entry := range v.ConditionKeywords {
		for _, w := range entry.Words {
			if strings.Contains(t, w) {
				return entry.Condition, true
			}
		}
	}
	return "", false
}

// tooltipDescription extracts the human-readable description embedded in a
// tooltip attribute. Icon cells typically carry no visible text; the Hungarian
// wording lives only inside the tooltip markup.
func tooltipDescription(attrs ...string) string {
	for _, a := range attrs {
		if m := ktextRe.FindStringSubmatch(a); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// tooltipBearing extracts a "(NNN fok)" wind bearing from tooltip attributes.
func tooltipBearing(attrs ...string) (float64, bool) {
	for _, a := range attrs {
		if m := bearingRe.FindStringSubmatch(a); m != nil {
			deg, err := strconv.ParseFloat(m[1], 64)
			if err == nil && deg <= 360 {
				return deg, true
			}
		}
	}
	return 0, false
}
