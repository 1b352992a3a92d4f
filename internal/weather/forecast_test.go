package weather

import (
	"errors"
	"testing"
	"time"
)

// entryAt builds one 3-hour forecast slot.
func entryAt(ts time.Time, temp float64, main, description, icon string) ForecastEntry {
	var e ForecastEntry
	e.Dt = ts.Unix()
	e.Main.Temp = temp
	e.Weather = []ConditionInfo{{Main: main, Description: description, Icon: icon}}
	return e
}

func forecastPayload(entries ...ForecastEntry) ForecastPayload {
	var p ForecastPayload
	p.List = entries
	p.City.Name = "Kumasi"
	p.City.Country = "GH"
	return p
}

// 2024-03-04 is a Monday.
var baseDay = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func TestAggregateForecastFullWeek(t *testing.T) {
	var entries []ForecastEntry
	for day := 0; day < 9; day++ {
		for _, hour := range []int{6, 12, 18} {
			ts := baseDay.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
			entries = append(entries, entryAt(ts, 20+float64(day)+float64(hour)/10, "Clouds", "scattered clouds", "03d"))
		}
	}

	weekly, err := AggregateForecast(forecastPayload(entries...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if weekly.Location != "Kumasi" || weekly.Country != "GH" {
		t.Errorf("unexpected location %q / country %q", weekly.Location, weekly.Country)
	}
	if len(weekly.Forecast) != 7 {
		t.Fatalf("expected 7 days, got %d", len(weekly.Forecast))
	}

	for i, day := range weekly.Forecast {
		want := baseDay.AddDate(0, 0, i).Format("2006-01-02")
		if day.Date != want {
			t.Errorf("day %d: expected date %s, got %s", i, want, day.Date)
		}
		if day.TempMin > day.TempMax {
			t.Errorf("day %d: temp_min %v above temp_max %v", i, day.TempMin, day.TempMax)
		}
	}

	if weekly.Forecast[0].Day != "MON" || weekly.Forecast[6].Day != "SUN" {
		t.Errorf("unexpected weekday abbreviations %q..%q", weekly.Forecast[0].Day, weekly.Forecast[6].Day)
	}
}

func TestAggregateForecastDailySummary(t *testing.T) {
	entries := []ForecastEntry{
		entryAt(baseDay.Add(6*time.Hour), 21.44, "Rain", "light rain", "10d"),
		entryAt(baseDay.Add(9*time.Hour), 24.06, "Rain", "light rain", "10d"),
		entryAt(baseDay.Add(12*time.Hour), 27.8, "Clouds", "overcast clouds", "04d"),
	}

	weekly, err := AggregateForecast(forecastPayload(entries...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	day := weekly.Forecast[0]
	if day.Main != "Rain" {
		t.Errorf("expected dominant condition Rain, got %q", day.Main)
	}
	if day.Description != "Light Rain" {
		t.Errorf("expected title-cased dominant description, got %q", day.Description)
	}
	if day.Icon != "10d" {
		t.Errorf("expected dominant icon 10d, got %q", day.Icon)
	}
	if day.TempMin != 21.4 {
		t.Errorf("expected temp_min 21.4, got %v", day.TempMin)
	}
	if day.TempMax != 27.8 {
		t.Errorf("expected temp_max 27.8, got %v", day.TempMax)
	}
}

func TestAggregateForecastGapFill(t *testing.T) {
	var entries []ForecastEntry
	conditions := []struct {
		main, description, icon string
	}{
		{"Clear", "clear sky", "01d"},
		{"Clouds", "broken clouds", "04d"},
		{"Rain", "moderate rain", "10d"},
	}
	for day, cond := range conditions {
		ts := baseDay.AddDate(0, 0, day).Add(12 * time.Hour)
		entries = append(entries, entryAt(ts, 25, cond.main, cond.description, cond.icon))
	}

	weekly, err := AggregateForecast(forecastPayload(entries...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weekly.Forecast) != 7 {
		t.Fatalf("expected 7 days after gap-fill, got %d", len(weekly.Forecast))
	}

	// Synthetic days chain one day at a time from the last real date.
	for i := 3; i < 7; i++ {
		want := baseDay.AddDate(0, 0, i)
		if weekly.Forecast[i].Date != want.Format("2006-01-02") {
			t.Errorf("day %d: expected date %s, got %s", i, want.Format("2006-01-02"), weekly.Forecast[i].Date)
		}
		if wantDay := weekdayAbbr(want); weekly.Forecast[i].Day != wantDay {
			t.Errorf("day %d: expected weekday %s, got %s", i, wantDay, weekly.Forecast[i].Day)
		}
	}

	// Replication compounds forward from the last real day.
	last := weekly.Forecast[2]
	for i := 3; i < 7; i++ {
		synth := weekly.Forecast[i]
		if synth.Main != last.Main || synth.Description != last.Description || synth.Icon != last.Icon {
			t.Errorf("day %d: categorical fields not replicated: %+v", i, synth)
		}
		if synth.TempMin != last.TempMin || synth.TempMax != last.TempMax {
			t.Errorf("day %d: temperatures not replicated: %+v", i, synth)
		}
	}
}

func TestAggregateForecastModeTieBreak(t *testing.T) {
	// Two conditions with equal counts; the earliest-seen value must win.
	entries := []ForecastEntry{
		entryAt(baseDay.Add(6*time.Hour), 20, "Rain", "light rain", "10d"),
		entryAt(baseDay.Add(9*time.Hour), 21, "Clouds", "few clouds", "02d"),
		entryAt(baseDay.Add(12*time.Hour), 22, "Rain", "light rain", "10d"),
		entryAt(baseDay.Add(15*time.Hour), 23, "Clouds", "few clouds", "02d"),
	}

	weekly, err := AggregateForecast(forecastPayload(entries...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := weekly.Forecast[0].Main; got != "Rain" {
		t.Errorf("expected first-seen value Rain on tie, got %q", got)
	}
}

func TestAggregateForecastMalformed(t *testing.T) {
	if _, err := AggregateForecast(forecastPayload()); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload for empty list, got %v", err)
	}

	missingCondition := entryAt(baseDay, 20, "", "", "")
	missingCondition.Weather = nil
	if _, err := AggregateForecast(forecastPayload(missingCondition)); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload for entry without condition, got %v", err)
	}
}
