package domain

import (
	"time"
)

// Condition is the canonical weather-state identifier icon codes map onto.
type Condition string

const (
	ConditionSunny          Condition = "sunny"
	ConditionClearNight     Condition = "clear-night"
	ConditionPartlyCloudy   Condition = "partlycloudy"
	ConditionCloudy         Condition = "cloudy"
	ConditionFog            Condition = "fog"
	ConditionRainy          Condition = "rainy"
	ConditionPouring        Condition = "pouring"
	ConditionLightningRainy Condition = "lightning-rainy"
	ConditionSnowy          Condition = "snowy"
	ConditionSnowyRainy     Condition = "snowy-rainy"
	ConditionWindy          Condition = "windy"
	ConditionHail           Condition = "hail"

	// ConditionExceptional is the sentinel for icon codes missing from the
	// vocabulary. It keeps unmapped icons visible instead of dropping them.
	ConditionExceptional Condition = "exceptional"
)

// Settlement identifies a Hungarian settlement on met.hu. Produced once by the
// autocomplete resolver; the parser only echoes the name into snapshots.
type Settlement struct {
	Name string  `json:"name"`
	Code string  `json:"code"` // met.hu "kod", the identity of the settlement
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// ForecastSlot is one forecast time point (a 6-hourly or HH:MM interval), or a
// daily summary when produced by aggregation. Every measurement is a pointer:
// nil means the source table did not carry the value, which is distinct from
// zero (0 °C, 0 mm and 0° bearing are all legitimate readings).
type ForecastSlot struct {
	Time *time.Time `json:"time,omitempty"`

	Temperature    *float64 `json:"temperature,omitempty"`
	TemperatureMin *float64 `json:"temperature_min,omitempty"`
	TemperatureMax *float64 `json:"temperature_max,omitempty"`

	Condition   Condition `json:"condition,omitempty"`
	Description string    `json:"description,omitempty"` // Hungarian tooltip text, verbatim

	Precipitation     *float64 `json:"precipitation,omitempty"`      // mm
	PrecipProbability *int     `json:"precip_probability,omitempty"` // %
	CloudCover        *int     `json:"cloud_cover,omitempty"`        // %

	WindSpeed     *float64 `json:"wind_speed,omitempty"` // km/h
	WindGust      *float64 `json:"wind_gust,omitempty"`  // km/h
	WindBearing   *float64 `json:"wind_bearing,omitempty"`
	WindDirection string   `json:"wind_direction,omitempty"` // compass code, or raw source text when unmapped

	Humidity *int     `json:"humidity,omitempty"` // %
	Pressure *float64 `json:"pressure,omitempty"` // hPa
}

// ForecastSnapshot is the complete parse result for one settlement. A fresh
// snapshot is built on every parse; the caller owns it exclusively afterwards.
//
// Found=false is the "no data" terminal state: the document held no
// recognizable forecast structure. Slots and Days are empty and Current is nil.
// It is not an error and is distinct from a transport failure.
type ForecastSnapshot struct {
	Settlement  string         `json:"settlement"`
	Found       bool           `json:"found"`
	Current     *ForecastSlot  `json:"current,omitempty"`
	Slots       []ForecastSlot `json:"slots"`
	Days        []ForecastSlot `json:"days"`
	RetrievedAt time.Time      `json:"retrieved_at"`
}

// Field enumerates the slot measurements a consumer can iterate, one entry per
// sensor-like reading. The closed set replaces ad-hoc lookup by attribute name.
type Field string

const (
	FieldTemperature       Field = "temperature"
	FieldTemperatureMin    Field = "temperature_min"
	FieldTemperatureMax    Field = "temperature_max"
	FieldPrecipitation     Field = "precipitation"
	FieldPrecipProbability Field = "precip_probability"
	FieldCloudCover        Field = "cloud_cover"
	FieldWindSpeed         Field = "wind_speed"
	FieldWindGust          Field = "wind_gust"
	FieldWindBearing       Field = "wind_bearing"
	FieldHumidity          Field = "humidity"
	FieldPressure          Field = "pressure"
)

// Fields lists every numeric slot field in presentation order.
var Fields = []Field{
	FieldTemperature,
	FieldTemperatureMin,
	FieldTemperatureMax,
	FieldPrecipitation,
	FieldPrecipProbability,
	FieldCloudCover,
	FieldWindSpeed,
	FieldWindGust,
	FieldWindBearing,
	FieldHumidity,
	FieldPressure,
}

// Value returns the slot's reading for a field, or (0, false) when the field
// is absent or unknown. Percentages are widened to float64 so all fields share
// one accessor signature.
func (s ForecastSlot) Value(f Field) (float64, bool) {
	switch f {
	case FieldTemperature:
		return deref(s.Temperature)
	case FieldTemperatureMin:
		return deref(s.TemperatureMin)
	case FieldTemperatureMax:
		return deref(s.TemperatureMax)
	case FieldPrecipitation:
		return deref(s.Precipitation)
	case FieldPrecipProbability:
		return derefInt(s.PrecipProbability)
	case FieldCloudCover:
		return derefInt(s.CloudCover)
	case FieldWindSpeed:
		return deref(s.WindSpeed)
	case FieldWindGust:
		return deref(s.WindGust)
	case FieldWindBearing:
		return deref(s.WindBearing)
	case FieldHumidity:
		return derefInt(s.Humidity)
	case FieldPressure:
		return deref(s.Pressure)
	default:
		return 0, false
	}
}

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func derefInt(p *int) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return float64(*p), true
}

// Float returns a pointer to v, for building slots literally in tests and mappers.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
