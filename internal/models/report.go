package models

// WeatherReport is a point-in-time weather snapshot for a location. Reports
// come from external providers and are not persisted.
type WeatherReport struct {
	Location    string   `json:"location"`
	Temperature float64  `json:"temperature"`
	Conditions  string   `json:"conditions"`
	WindSpeed   float64  `json:"wind_speed"`
	Visibility  string   `json:"visibility"`
	Alerts      []string `json:"alerts"`
}

// TrafficReport describes current conditions on a logistics corridor.
type TrafficReport struct {
	RouteID           string   `json:"route_id"`
	CongestionLevel   string   `json:"congestion_level"`
	Incidents         []string `json:"incidents"`
	EstimatedDelayMin int      `json:"estimated_delay_minutes"`
	AlternativeRoutes []string `json:"alternative_routes"`
}

// QuakeEvent is a recent significant earthquake relevant to routing.
type QuakeEvent struct {
	Magnitude float64 `json:"magnitude"`
	Location  string  `json:"location"`
	Time      int64   `json:"time"`
	Level     string  `json:"alert"`
}
