package models

type Route struct {
	ID                 string  `json:"id"`
	FromFacilityID     string  `json:"from_facility_id"`
	ToFacilityID       string  `json:"to_facility_id"`
	DistanceMiles      int     `json:"distance_miles"`
	EstimatedTimeHours float64 `json:"estimated_time_hours"`
	Status             string  `json:"status"`
}
