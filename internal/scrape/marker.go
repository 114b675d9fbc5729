package scrape

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dkonya/methu-forecast/internal/domain"
)

// markerStrategy is the primary parsing strategy for the structured table
// variant, where every cell carries a stable class marker and each row is one
// time slot. The date arrives in a row-spanning cell that stays the active
// date context for the rows below it until the next date cell appears.
type markerStrategy struct {
	vocab Vocabulary
}

func (s markerStrategy) name() string { return "marker" }

func (s markerStrategy) parse(table *goquery.Selection, now time.Time) ([]domain.ForecastSlot, error) {
	m := s.vocab.Markers

	matched := 0
	var slots []domain.ForecastSlot

	var activeDate time.Time
	haveDate := false

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var slot domain.ForecastSlot
		hasTime := false
		windCells := 0

		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			classes := strings.Fields(cell.AttrOr("class", ""))
			text := strings.TrimSpace(cell.Text())

			switch {
			case hasToken(classes, m.Date):
				matched++
				if d, ok := s.vocab.parseDateText(text, now); ok {
					activeDate = d
					haveDate = true
				}

			case hasToken(classes, m.Time):
				matched++
				if hour, minute, ok := parseClockTime(text); ok && haveDate {
					ts := activeDate.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
					slot.Time = &ts
					hasTime = true
				}

			case hasToken(classes, m.Temperature):
				matched++
				val, ok := ParseNumber(text)
				if !ok {
					return
				}
				switch {
				case hasToken(classes, m.Min):
					slot.TemperatureMin = &val
				case hasToken(classes, m.Max):
					slot.TemperatureMax = &val
				default:
					slot.Temperature = &val
				}

			case hasToken(classes, m.Precipitation):
				matched++
				slot.Precipitation = numberPtr(text)

			case hasToken(classes, m.CloudCover):
				matched++
				if v, ok := ParseInt(text); ok {
					slot.CloudCover = &v
				}

			case hasToken(classes, m.Pressure):
				matched++
				slot.Pressure = numberPtr(text)

			case hasToken(classes, m.Wind):
				matched++
				// Two cells share the wind marker: speed first, then gust.
				windCells++
				if v, ok := ParseNumber(text); ok {
					if windCells == 1 {
						slot.WindSpeed = &v
					} else {
						slot.WindGust = &v
					}
				}

			case hasToken(classes, m.WindIcon):
				matched++
				if deg, ok := tooltipBearing(
					cell.AttrOr("onmouseover", ""),
					cell.AttrOr("title", ""),
					cell.Find("img").AttrOr("onmouseover", ""),
					cell.Find("img").AttrOr("title", ""),
				); ok {
					slot.WindBearing = &deg
				}

			case hasToken(classes, m.WindText):
				matched++
				slot.WindDirection = s.vocab.WindDirection(text)

			case hasToken(classes, m.Icon):
				matched++
				slot.Condition, slot.Description = s.vocab.readIcon(cell)
			}
		})

		// Rows without a time cell are header or filler rows, except date-only
		// rows which already updated the context above.
		if !hasTime {
			return
		}

		// The icon tooltip may carry the bearing; otherwise fall back to the
		// textual direction code.
		if slot.WindBearing == nil && slot.WindDirection != "" {
			if deg, ok := s.vocab.DirectionToBearing(slot.WindDirection); ok {
				slot.WindBearing = &deg
			}
		}

		orderBand(&slot)
		slots = append(slots, slot)
	})

	if matched == 0 {
		return nil, errNotApplicable
	}
	return slots, nil
}

func hasToken(classes []string, token string) bool {
	for _, c := range classes {
		if c == token {
			return true
		}
	}
	return false
}

func numberPtr(text string) *float64 {
	v, ok := ParseNumber(text)
	if !ok {
		return nil
	}
	return &v
}
