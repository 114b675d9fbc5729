package scrape

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dkonya/methu-forecast/internal/domain"
)

// extractSlots zips the time axis with the classified rows into one slot per
// axis position. A slot carrying no field at all is still emitted: a column of
// absent data is a legitimate reading, not noise. Rows shorter than the axis
// simply stop contributing fields at their last cell.
func (v Vocabulary) extractSlots(axis []time.Time, rows classifiedRows) []domain.ForecastSlot {
	slots := make([]domain.ForecastSlot, 0, len(axis))

	for i, ts := range axis {
		t := ts
		slot := domain.ForecastSlot{Time: &t}

		if cell := nthCell(rows.icon, i); cell != nil {
			slot.Condition, slot.Description = v.readIcon(cell)
		}

		slot.Temperature = cellNumber(rows.temp, i)
		slot.Precipitation = cellNumber(rows.prec, i)
		slot.WindSpeed = cellNumber(rows.wind, i)
		slot.PrecipProbability = cellInt(rows.prob, i)
		slot.Humidity = cellInt(rows.hum, i)

		if cell := nthCell(rows.dir, i); cell != nil {
			slot.WindDirection, slot.WindBearing = v.readDirection(cell)
		}

		slots = append(slots, slot)
	}

	return slots
}

// nthCell returns the i-th data cell, or nil past the end. The axis can be
// longer than a sparse row.
func nthCell(cells []*goquery.Selection, i int) *goquery.Selection {
	if i < 0 || i >= len(cells) {
		return nil
	}
	return cells[i]
}

func cellNumber(cells []*goquery.Selection, i int) *float64 {
	cell := nthCell(cells, i)
	if cell == nil {
		return nil
	}
	v, ok := ParseNumber(strings.TrimSpace(cell.Text()))
	if !ok {
		return nil
	}
	return &v
}

func cellInt(cells []*goquery.Selection, i int) *int {
	cell := nthCell(cells, i)
	if cell == nil {
		return nil
	}
	v, ok := ParseInt(strings.TrimSpace(cell.Text()))
	if !ok {
		return nil
	}
	return &v
}

// readIcon decodes a weather-icon cell into a condition and its Hungarian
// description. The description is taken from the tooltip payload when present
// (icon cells usually hold no visible text), falling back to the img alt.
func (v Vocabulary) readIcon(cell *goquery.Selection) (domain.Condition, string) {
	img := cell.Find("img").First()
	if img.Length() == 0 {
		return "", ""
	}

	src := img.AttrOr("src", "")
	alt := img.AttrOr("alt", "")

	desc := tooltipDescription(
		cell.AttrOr("onmouseover", ""),
		cell.AttrOr("title", ""),
		img.AttrOr("onmouseover", ""),
		img.AttrOr("title", ""),
	)
	if desc == "" {
		desc = alt
	}

	return v.IconCondition(src, desc), desc
}

// readDirection decodes a wind-direction cell. The bearing comes from a
// "(NNN fok)" tooltip when the cell carries one, otherwise it is derived from
// the direction code via the 22.5° table. Unmapped direction text is kept
// verbatim as the code, in which case no bearing can be derived.
func (v Vocabulary) readDirection(cell *goquery.Selection) (string, *float64) {
	img := cell.Find("img").First()

	text := strings.TrimSpace(cell.Text())
	if text == "" && img.Length() > 0 {
		text = img.AttrOr("alt", "")
	}
	code := v.WindDirection(text)

	attrs := []string{cell.AttrOr("onmouseover", ""), cell.AttrOr("title", "")}
	if img.Length() > 0 {
		attrs = append(attrs, img.AttrOr("onmouseover", ""), img.AttrOr("title", ""), img.AttrOr("alt", ""))
	}
	if deg, ok := tooltipBearing(attrs...); ok {
		return code, &deg
	}
	if deg, ok := v.DirectionToBearing(code); ok {
		return code, &deg
	}
	return code, nil
}
