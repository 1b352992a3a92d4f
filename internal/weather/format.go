package weather

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// FormatCurrent maps a raw current-weather payload into a display Snapshot.
// Temperatures are Celsius, wind is converted to km/h and visibility to km,
// all rounded to one decimal.
func FormatCurrent(raw CurrentPayload) (Snapshot, error) {
	if len(raw.Weather) == 0 {
		return Snapshot{}, fmt.Errorf("%w: missing weather condition", ErrMalformedPayload)
	}
	if raw.Main.Temp == nil {
		return Snapshot{}, fmt.Errorf("%w: missing temperature", ErrMalformedPayload)
	}

	cond := raw.Weather[0]

	return Snapshot{
		Location: raw.Name,
		Country:  raw.Sys.Country,
		Main: MainInfo{
			Main:        cond.Main,
			Description: titleCaser.String(cond.Description),
			Temp:        fmt.Sprintf("%.1f °C", *raw.Main.Temp),
			Icon:        cond.Icon,
		},
		TodaysInsight: TodaysInsight{
			Humidity:   strconv.Itoa(raw.Main.Humidity),
			Pressure:   strconv.Itoa(raw.Main.Pressure),
			WindStatus: fmt.Sprintf("%.1f", mpsToKmh(raw.Wind.Speed)),
			Visibility: fmt.Sprintf("%.1f", raw.Visibility/1000),
			AirQuality: "Not available",
			SunriseAndSunset: SunriseAndSunset{
				Sunrise: clockTime(raw.Sys.Sunrise),
				Sunset:  clockTime(raw.Sys.Sunset),
			},
		},
	}, nil
}

func mpsToKmh(ms float64) float64 {
	return math.Round(ms*3.6*10) / 10
}

// clockTime converts a unix timestamp to a 12-hour wall-clock string.
// An absent timestamp degrades to an empty value rather than failing
// the whole format.
func clockTime(ts int64) string {
	if ts <= 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format("03:04 PM")
}
