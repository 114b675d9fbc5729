package scrape

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

	// hourLabelRe matches bare hour labels like "06", "18", "6h" or "12:00".
	hourLabelRe = regexp.MustCompile(`^(\d{1,2})(?::00)?h?$`)

	explicitYearRe = regexp.MustCompile(`(\d{4})\.`)
	yearMonthDayRe = regexp.MustCompile(`(\d{4})[.\s/]+(\d{1,2})[.\s/]+(\d{1,2})`)
	monthDayRe     = regexp.MustCompile(`(\d{1,2})[.\s/]+(\d{1,2})`)

	dateRowHintRe = regexp.MustCompile(`\d{4}\.\s*\S|\d{2}\.\d{2}\.`)
	timeRowRe     = regexp.MustCompile(`\b(?:00|06|12|18|0|6)\b|\b\d{1,2}:\d{2}\b`)
)

// parseDateText decodes a Hungarian date cell into a calendar date at
// midnight local time. Accepted forms, in order:
//
//	"2026. február 25."  month-name with explicit year
//	"február 25."        month-name, year inferred
//	"2026. 02. 25."      fully numeric
//	"02.25." / "02/25"   month and day, year inferred
//	"szerda"             weekday name, resolved to its next occurrence
//
// Years are inferred as the current year, bumped forward when the decoded
// month is more than one month behind the current one, so a December table
// showing January columns lands in the new year.
func (v Vocabulary) parseDateText(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)

	for name, month := range v.Months {
		re := regexp.MustCompile(regexp.QuoteMeta(name) + `\s+(\d{1,2})`)
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		year := inferYear(month, now)
		if y := explicitYearRe.FindStringSubmatch(text); y != nil {
			year, _ = strconv.Atoi(y[1])
		}
		if d, ok := makeDate(year, month, day); ok {
			return d, true
		}
	}

	if m := yearMonthDayRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if d, ok := makeDate(year, time.Month(month), day); ok {
			return d, true
		}
	}

	if m := monthDayRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			if d, ok := makeDate(inferYear(time.Month(month), now), time.Month(month), day); ok {
				return d, true
			}
		}
	}

	for name, weekday := range v.Weekdays {
		if strings.Contains(lower, name) {
			delta := (int(weekday) - int(now.Weekday()) + 7) % 7
			d := now.AddDate(0, 0, delta)
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location()), true
		}
	}

	return time.Time{}, false
}

func inferYear(month time.Month, now time.Time) int {
	year := now.Year()
	if int(month) < int(now.Month())-1 {
		year++
	}
	return year
}

// makeDate validates the components by round-tripping through time.Date.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// parseClockTime decodes a strict "HH:MM" time cell.
func parseClockTime(text string) (hour, minute int, ok bool) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// buildSpanAxis reconstructs the slot timestamps from a colspan-style header:
// one row of date cells spanning several columns each, and one row of time
// labels. This is the fallback axis for tables without per-row date cells.
//
// Malformed header cells are skipped, so the axis can be shorter than the
// table is wide; callers must zip by position rather than assume equal length.
// An empty axis is a valid outcome and triggers the column-position fallback.
func (v Vocabulary) buildSpanAxis(rows *goquery.Selection, now time.Time) []time.Time {
	var dateRow, timeRow *goquery.Selection

	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		text := rowText(row)
		if dateRow == nil && v.isDateRow(text) {
			dateRow = row
		} else if timeRow == nil && v.isTimeRow(text) {
			timeRow = row
		}
		return dateRow == nil || timeRow == nil
	})

	if timeRow == nil {
		return nil
	}

	var days []time.Time
	if dateRow != nil {
		days = v.expandDateRow(dateRow, now)
	}
	currentDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if len(days) > 0 {
		currentDay = days[0]
	}

	var slots []time.Time
	dayIdx := 0
	prevHour := -1

	timeRow.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		hour, ok := v.labelToHour(strings.TrimSpace(cell.Text()))
		if !ok {
			return
		}

		// A non-increasing hour marks the boundary to the next day. The date
		// list is per-column, so skip ahead to the next distinct date; when
		// the list runs out, keep counting days forward.
		if prevHour >= 0 && hour <= prevHour {
			advanced := false
			for dayIdx+1 < len(days) {
				dayIdx++
				if days[dayIdx].After(currentDay) {
					currentDay = days[dayIdx]
					advanced = true
					break
				}
			}
			if !advanced {
				currentDay = currentDay.AddDate(0, 0, 1)
			}
		}
		prevHour = hour

		ts := currentDay.Add(time.Duration(hour) * time.Hour)
		for range cellSpan(cell, "colspan") {
			slots = append(slots, ts)
		}
	})

	return slots
}

func (v Vocabulary) isDateRow(text string) bool {
	lower := strings.ToLower(text)
	for name := range v.Months {
		if strings.Contains(lower, name) {
			return true
		}
	}
	for name := range v.Weekdays {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return dateRowHintRe.MatchString(text)
}

func (v Vocabulary) isTimeRow(text string) bool {
	lower := strings.ToLower(text)
	for word := range v.DayParts {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return timeRowRe.MatchString(text)
}

// expandDateRow flattens a colspan'd date header into one date per column.
// Defaults to today when no cell parses.
func (v Vocabulary) expandDateRow(row *goquery.Selection, now time.Time) []time.Time {
	var days []time.Time
	row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		d, ok := v.parseDateText(strings.TrimSpace(cell.Text()), now)
		if !ok {
			return
		}
		for range cellSpan(cell, "colspan") {
			days = append(days, d)
		}
	})
	if len(days) == 0 {
		days = []time.Time{time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())}
	}
	return days
}

// labelToHour maps a time label to its representative hour: day-part words via
// the vocabulary table, otherwise bare hour forms like "06", "6h" or "12:00".
func (v Vocabulary) labelToHour(text string) (int, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return 0, false
	}
	// Longest day-part word wins: "délelőtt" must not resolve as "dél".
	best, bestLen := -1, 0
	for word, hour := range v.DayParts {
		if strings.Contains(lower, word) && len(word) > bestLen {
			best, bestLen = hour, len(word)
		}
	}
	if best >= 0 {
		return best, true
	}

	m := hourLabelRe.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	if hour > 23 {
		return 0, false
	}
	return hour, true
}

// cellSpan reads a rowspan/colspan attribute, defaulting to 1.
func cellSpan(cell *goquery.Selection, attr string) int {
	n, err := strconv.Atoi(cell.AttrOr(attr, "1"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
