package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Keyword patterns for the label-heuristic classifier. Labels are the first
// cell of each row; both Hungarian and English wording appear in the wild.
var (
	labelTempRe     = regexp.MustCompile(`hőmérséklet|temp`)
	labelPrecRe     = regexp.MustCompile(`csapadék`)
	labelProbRe     = regexp.MustCompile(`való|prob|%`)
	labelWindRe     = regexp.MustCompile(`szélseb|wind.?sp|km/h|m/s`)
	labelDirRe      = regexp.MustCompile(`szélirány|wind.?dir|irány`)
	labelHumidityRe = regexp.MustCompile(`nedv|humid`)

	unitWindRe = regexp.MustCompile(`km/h|m/s`)
	digitRe    = regexp.MustCompile(`\d`)
)

// classifiedRows holds the data cells (label cell stripped) of each
// semantically recognized table row.
type classifiedRows struct {
	icon []*goquery.Selection
	temp []*goquery.Selection
	prec []*goquery.Selection
	prob []*goquery.Selection
	wind []*goquery.Selection
	dir  []*goquery.Selection
	hum  []*goquery.Selection
}

// classifyRows assigns each table row to a semantic field by keyword-matching
// its leading label cell, the fallback for documents without structural
// markers. First match wins per category; rows matching an already-filled
// category are ignored. Numeric categories additionally require at least one
// digit in the row so empty placeholder rows cannot claim a category.
//
// The precedence order is fixed: icon, temperature, precipitation amount,
// precipitation probability, wind speed, wind direction, humidity. A stray row
// whose label happens to match an earlier pattern can therefore misclassify;
// the guards below (unit exclusions, digit requirement) narrow but do not
// close that window.
func classifyRows(rows *goquery.Selection) classifiedRows {
	var c classifiedRows

	rows.Each(func(_ int, row *goquery.Selection) {
		cells := selectionCells(row)
		if len(cells) < 2 {
			return
		}
		label := strings.ToLower(strings.TrimSpace(cells[0].Text()))
		data := cells[1:]
		text := rowText(row)
		hasDigit := digitRe.MatchString(text)

		// Icon rows are recognized structurally: images in at least half of
		// the data cells.
		if c.icon == nil && countWithImages(data) >= max(2, len(data)/2) {
			c.icon = data
			return
		}

		switch {
		case labelTempRe.MatchString(label) ||
			(strings.Contains(text, "°C") && c.icon == nil && c.temp == nil):
			if c.temp == nil && hasDigit {
				c.temp = data
			}

		case (labelPrecRe.MatchString(label) && !strings.Contains(label, "való")) ||
			(strings.Contains(text, "mm") && c.prec == nil && !strings.Contains(label, "valószínűség")):
			if c.prec == nil && hasDigit {
				c.prec = data
			}

		case (labelProbRe.MatchString(label) || strings.Contains(text, "%")) &&
			!strings.Contains(label, "szél") && !strings.Contains(label, "nedv"):
			if c.prob == nil && hasDigit {
				c.prob = data
			}

		case labelWindRe.MatchString(label) ||
			(unitWindRe.MatchString(text) && c.wind == nil && !strings.Contains(label, "irány")):
			if c.wind == nil && hasDigit {
				c.wind = data
			}

		case labelDirRe.MatchString(label):
			if c.dir == nil {
				c.dir = data
			}

		case labelHumidityRe.MatchString(label):
			if c.hum == nil && hasDigit {
				c.hum = data
			}
		}
	})

	return c
}

// rowText joins a row's cell texts with spaces. Selection.Text would glue
// adjacent cells together ("06" + "18" becomes "0618") and destroy the token
// boundaries the row classifiers match on.
func rowText(row *goquery.Selection) string {
	var parts []string
	row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		if t := strings.TrimSpace(cell.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

// selectionCells collects a row's td/th cells as a slice for index access.
func selectionCells(row *goquery.Selection) []*goquery.Selection {
	var cells []*goquery.Selection
	row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, cell)
	})
	return cells
}

func countWithImages(cells []*goquery.Selection) int {
	n := 0
	for _, cell := range cells {
		if cell.Find("img").Length() > 0 {
			n++
		}
	}
	return n
}
