package weather

// ConditionInfo is one entry of the provider's `weather` array.
type ConditionInfo struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentPayload mirrors the OpenWeatherMap current-weather response.
// Main.Temp is a pointer so an absent temperature can be told apart
// from a legitimate 0 degrees.
type CurrentPayload struct {
	Name    string          `json:"name"`
	Weather []ConditionInfo `json:"weather"`
	Main    struct {
		Temp     *float64 `json:"temp"`
		Humidity int      `json:"humidity"`
		Pressure int      `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Visibility float64 `json:"visibility"`
	Sys        struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

// ForecastEntry is one 3-hour slot of the 5-day forecast feed.
type ForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []ConditionInfo `json:"weather"`
}

// ForecastPayload mirrors the OpenWeatherMap 5-day/3-hour forecast response.
type ForecastPayload struct {
	List []ForecastEntry `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}
