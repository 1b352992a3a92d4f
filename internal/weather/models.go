package weather

// Snapshot is the normalized current-conditions view returned to clients.
// It is derived per request and never persisted.
type Snapshot struct {
	Location      string        `json:"location"`
	Country       string        `json:"country"`
	Main          MainInfo      `json:"main"`
	TodaysInsight TodaysInsight `json:"todaysInsight"`
}

// MainInfo holds the headline condition fields of a snapshot.
type MainInfo struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Temp        string `json:"temp"`
	Icon        string `json:"icon"`
}

// TodaysInsight holds the secondary display metrics. All values are
// display-formatted strings; AirQuality is a placeholder until an air
// quality source is integrated.
type TodaysInsight struct {
	Humidity         string           `json:"humidity"`
	Pressure         string           `json:"pressure"`
	WindStatus       string           `json:"windStatus"`
	Visibility       string           `json:"visibility"`
	AirQuality       string           `json:"airQuality"`
	SunriseAndSunset SunriseAndSunset `json:"sunriseAndSunset"`
}

// SunriseAndSunset carries 12-hour wall-clock strings. Either field is
// omitted when the provider timestamp is absent or unparseable.
type SunriseAndSunset struct {
	Sunrise string `json:"sunrise,omitempty"`
	Sunset  string `json:"sunset,omitempty"`
}

// DailyForecast is one day of the canonical weekly forecast.
type DailyForecast struct {
	Date        string  `json:"date"`
	Day         string  `json:"day"`
	Main        string  `json:"main"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
}

// WeeklyForecast is the canonical 7-day summary for one location.
// Forecast always holds exactly 7 entries with strictly increasing dates.
type WeeklyForecast struct {
	Location string          `json:"location"`
	Country  string          `json:"country"`
	Forecast []DailyForecast `json:"forecast"`
}
