package model

// SpokenProduct is one microorganism mention extracted from a transcript.
// Dose may be zero when the user never said one.
type SpokenProduct struct {
	Name string  `json:"nombre"`
	Dose float64 `json:"dosis"`
}

// VoiceParseResult is the structured extraction returned by the NLU
// collaborator for one finished recording session. Zero-valued fields mean
// the user did not mention them; the interpreter must not let them clobber
// fields the user already filled in by hand.
type VoiceParseResult struct {
	ApplicationTypeName string          `json:"application_type_name"`
	ApplicationCount    int             `json:"application_count"`
	CycleDays           int             `json:"cycle_days"`
	AreaHectares        float64         `json:"area_hectares"`
	StartDate           string          `json:"start_date"`
	Microorganisms      []SpokenProduct `json:"microorganisms"`
}
