package domain

// Narrative is the natural-language part of a game analysis
type Narrative struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	// Fallback marks a narrative built without the text generation service
	Fallback bool `json:"-"`
}
