package scrape

import (
	"math"
	"time"

	"github.com/dkonya/methu-forecast/internal/domain"
)

// aggregateDaily folds the ordered slot sequence into one summary per
// calendar date. Slots without a timestamp cannot belong to any day and are
// left out. Additive fields are summed or averaged, extremes are taken across
// the day, and categorical fields are copied from the day's midpoint slot
// rather than blended. Each day is keyed to 12:00 of its date.
func aggregateDaily(slots []domain.ForecastSlot) []domain.ForecastSlot {
	var order []string
	groups := make(map[string][]domain.ForecastSlot)

	for _, slot := range slots {
		if slot.Time == nil {
			continue
		}
		key := slot.Time.Format("2006-01-02")
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], slot)
	}

	days := make([]domain.ForecastSlot, 0, len(order))
	for _, key := range order {
		days = append(days, summarizeDay(groups[key]))
	}
	return days
}

func summarizeDay(slots []domain.ForecastSlot) domain.ForecastSlot {
	var day domain.ForecastSlot

	first := slots[0].Time
	noon := time.Date(first.Year(), first.Month(), first.Day(), 12, 0, 0, 0, first.Location())
	day.Time = &noon

	temps := collect(slots, func(s domain.ForecastSlot) *float64 { return s.Temperature })
	if len(temps) > 0 {
		day.Temperature = domain.Float(round1(mean(temps)))
		day.TemperatureMin = domain.Float(minOf(temps))
		day.TemperatureMax = domain.Float(maxOf(temps))
	}

	// An explicitly marked extreme beats the one derived from slot readings.
	if explicitMins := collect(slots, func(s domain.ForecastSlot) *float64 { return s.TemperatureMin }); len(explicitMins) > 0 {
		day.TemperatureMin = domain.Float(minOf(explicitMins))
	}
	if explicitMaxes := collect(slots, func(s domain.ForecastSlot) *float64 { return s.TemperatureMax }); len(explicitMaxes) > 0 {
		day.TemperatureMax = domain.Float(maxOf(explicitMaxes))
	}
	orderBand(&day)
	clampMean(&day)

	if prec := collect(slots, func(s domain.ForecastSlot) *float64 { return s.Precipitation }); len(prec) > 0 {
		day.Precipitation = domain.Float(round1(sum(prec)))
	}
	if probs := collectInt(slots, func(s domain.ForecastSlot) *int { return s.PrecipProbability }); len(probs) > 0 {
		day.PrecipProbability = domain.Int(maxOfInt(probs))
	}
	if winds := collect(slots, func(s domain.ForecastSlot) *float64 { return s.WindSpeed }); len(winds) > 0 {
		day.WindSpeed = domain.Float(maxOf(winds))
	}
	if gusts := collect(slots, func(s domain.ForecastSlot) *float64 { return s.WindGust }); len(gusts) > 0 {
		day.WindGust = domain.Float(maxOf(gusts))
	}
	if pressures := collect(slots, func(s domain.ForecastSlot) *float64 { return s.Pressure }); len(pressures) > 0 {
		day.Pressure = domain.Float(round1(mean(pressures)))
	}

	// Representative fields come from the middle of the day, not an average.
	mid := slots[len(slots)/2]
	day.Condition = mid.Condition
	day.Description = mid.Description
	day.WindDirection = mid.WindDirection
	day.WindBearing = mid.WindBearing
	day.CloudCover = mid.CloudCover
	day.Humidity = mid.Humidity

	return day
}

// orderBand restores temperature_min <= temperature_max. The explicit-extreme
// overrides replace the derived bounds independently, so a mislabeled source
// extreme can leave the band inverted.
func orderBand(slot *domain.ForecastSlot) {
	if slot.TemperatureMin == nil || slot.TemperatureMax == nil {
		return
	}
	if *slot.TemperatureMin > *slot.TemperatureMax {
		slot.TemperatureMin, slot.TemperatureMax = slot.TemperatureMax, slot.TemperatureMin
	}
}

// clampMean keeps the averaged temperature inside the day's [min, max] band,
// which an explicit extreme may have narrowed below the derived readings.
func clampMean(day *domain.ForecastSlot) {
	if day.Temperature == nil {
		return
	}
	if day.TemperatureMin != nil && *day.Temperature < *day.TemperatureMin {
		day.Temperature = domain.Float(*day.TemperatureMin)
	}
	if day.TemperatureMax != nil && *day.Temperature > *day.TemperatureMax {
		day.Temperature = domain.Float(*day.TemperatureMax)
	}
}

func collect(slots []domain.ForecastSlot, get func(domain.ForecastSlot) *float64) []float64 {
	var vals []float64
	for _, s := range slots {
		if p := get(s); p != nil {
			vals = append(vals, *p)
		}
	}
	return vals
}

func collectInt(slots []domain.ForecastSlot, get func(domain.ForecastSlot) *int) []int {
	var vals []int
	for _, s := range slots {
		if p := get(s); p != nil {
			vals = append(vals, *p)
		}
	}
	return vals
}

func mean(vals []float64) float64 { return sum(vals) / float64(len(vals)) }

func sum(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		m = math.Min(m, v)
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		m = math.Max(m, v)
	}
	return m
}

func maxOfInt(vals []int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
