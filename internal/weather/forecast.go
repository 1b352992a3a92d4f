package weather

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const forecastDays = 7

// dayGroup collects the raw values observed within one calendar date.
// Slices keep the provider's entry order so mode ties resolve to the
// earliest-seen value.
type dayGroup struct {
	temps        []float64
	mains        []string
	descriptions []string
	icons        []string
}

// AggregateForecast collapses the provider's 5-day/3-hour feed into exactly
// 7 daily summaries. Entries are grouped by UTC calendar date; categorical
// fields are picked by mode, temperatures by min/max. When the provider
// returns fewer than 7 distinct dates, trailing days are synthesized by
// replicating the previous entry with the date advanced one day, chaining
// forward so repeated synthesis compounds.
func AggregateForecast(raw ForecastPayload) (WeeklyForecast, error) {
	if len(raw.List) == 0 {
		return WeeklyForecast{}, fmt.Errorf("%w: empty forecast list", ErrMalformedPayload)
	}

	grouped := make(map[string]*dayGroup)
	for _, entry := range raw.List {
		if len(entry.Weather) == 0 {
			return WeeklyForecast{}, fmt.Errorf("%w: forecast entry without weather condition", ErrMalformedPayload)
		}

		date := time.Unix(entry.Dt, 0).UTC().Format("2006-01-02")
		g, ok := grouped[date]
		if !ok {
			g = &dayGroup{}
			grouped[date] = g
		}
		g.temps = append(g.temps, entry.Main.Temp)
		g.mains = append(g.mains, entry.Weather[0].Main)
		g.descriptions = append(g.descriptions, entry.Weather[0].Description)
		g.icons = append(g.icons, entry.Weather[0].Icon)
	}

	// ISO dates sort chronologically as strings.
	dates := make([]string, 0, len(grouped))
	for date := range grouped {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	forecast := make([]DailyForecast, 0, forecastDays)
	for _, date := range dates {
		g := grouped[date]
		day, _ := time.Parse("2006-01-02", date)
		forecast = append(forecast, DailyForecast{
			Date:        date,
			Day:         weekdayAbbr(day),
			Main:        mode(g.mains),
			Description: titleCaser.String(mode(g.descriptions)),
			Icon:        mode(g.icons),
			TempMin:     round1(minOf(g.temps)),
			TempMax:     round1(maxOf(g.temps)),
		})
	}

	for len(forecast) < forecastDays {
		prev := forecast[len(forecast)-1]
		prevDate, err := time.Parse("2006-01-02", prev.Date)
		if err != nil {
			return WeeklyForecast{}, fmt.Errorf("%w: bad forecast date %q", ErrMalformedPayload, prev.Date)
		}
		next := prevDate.AddDate(0, 0, 1)

		synth := prev
		synth.Date = next.Format("2006-01-02")
		synth.Day = weekdayAbbr(next)
		forecast = append(forecast, synth)
	}

	return WeeklyForecast{
		Location: raw.City.Name,
		Country:  raw.City.Country,
		Forecast: forecast[:forecastDays],
	}, nil
}

// mode returns the most frequent value; an equally frequent later value
// never displaces an earlier one, so ties resolve deterministically to
// the first-encountered value.
func mode(values []string) string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	var best string
	bestCount := 0
	for _, v := range values {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

func weekdayAbbr(t time.Time) string {
	return strings.ToUpper(t.Format("Mon"))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func minOf(values []float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func maxOf(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
