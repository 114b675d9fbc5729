package scrape

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dkonya/methu-forecast/internal/domain"
)

// heuristicStrategy handles the transposed table variant: rows are fields
// labelled in their first cell, columns are time slots, and the axis comes
// from colspan'd date/time header rows. It applies when the markup offers no
// structural markers but a readable header.
type heuristicStrategy struct {
	vocab Vocabulary
}

func (s heuristicStrategy) name() string { return "heuristic" }

func (s heuristicStrategy) parse(table *goquery.Selection, now time.Time) ([]domain.ForecastSlot, error) {
	rows := table.Find("tr")

	axis := s.vocab.buildSpanAxis(rows, now)
	if len(axis) == 0 {
		return nil, errNotApplicable
	}

	return s.vocab.extractSlots(axis, classifyRows(rows)), nil
}

// columnStrategy is the last resort when no time axis can be reconstructed:
// the table becomes a flat grid in which every non-label column is one slot,
// positionally, with no timestamps. Slots that gather neither a temperature,
// a precipitation amount, nor a wind speed are dropped as noise.
type columnStrategy struct {
	vocab Vocabulary
}

func (s columnStrategy) name() string { return "column" }

func (s columnStrategy) parse(table *goquery.Selection, _ time.Time) ([]domain.ForecastSlot, error) {
	rows := table.Find("tr")

	maxCols := 0
	rows.Each(func(_ int, row *goquery.Selection) {
		if n := row.Find("td, th").Length(); n > maxCols {
			maxCols = n
		}
	})
	if maxCols < 2 {
		return nil, errNotApplicable
	}

	slots := make([]domain.ForecastSlot, maxCols-1)

	rows.Each(func(_ int, row *goquery.Selection) {
		cells := selectionCells(row)
		if len(cells) == 0 {
			return
		}
		label := strings.ToLower(strings.TrimSpace(cells[0].Text()))
		data := cells[1:]

		for i, cell := range data {
			if i >= len(slots) {
				break
			}
			text := strings.TrimSpace(cell.Text())

			switch {
			case labelTempRe.MatchString(label):
				if v, ok := ParseNumber(text); ok {
					slots[i].Temperature = &v
				}
			case labelPrecRe.MatchString(label) && !strings.Contains(label, "való"):
				if v, ok := ParseNumber(text); ok {
					slots[i].Precipitation = &v
				}
			case strings.Contains(label, "való") || strings.Contains(label, "prob"):
				if v, ok := ParseInt(text); ok {
					slots[i].PrecipProbability = &v
				}
			case labelWindRe.MatchString(label) && !strings.Contains(label, "irány"):
				if v, ok := ParseNumber(text); ok {
					slots[i].WindSpeed = &v
				}
			case labelHumidityRe.MatchString(label):
				if v, ok := ParseInt(text); ok {
					slots[i].Humidity = &v
				}
			case labelDirRe.MatchString(label):
				slots[i].WindDirection, slots[i].WindBearing = s.vocab.readDirection(cell)
			}
		}
	})

	kept := slots[:0]
	for _, slot := range slots {
		if slot.Temperature != nil || slot.Precipitation != nil || slot.WindSpeed != nil {
			kept = append(kept, slot)
		}
	}
	return kept, nil
}
