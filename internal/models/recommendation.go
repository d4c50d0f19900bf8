package models

type Recommendation struct {
	Type                  string   `json:"type"`
	Priority              string   `json:"priority"`
	SourceFacility        string   `json:"source_facility,omitempty"`
	Location              string   `json:"location,omitempty"`
	Reason                string   `json:"reason"`
	SuggestedAlternatives []string `json:"suggested_alternatives,omitempty"`
	SuggestedAction       string   `json:"suggested_action,omitempty"`
	EstimatedImpact       string   `json:"estimated_impact"`
}
