package model

import (
	"io"

	json "github.com/goccy/go-json"
)

// Snapshot is the static statistics document the page is rendered from.
// It is produced by an external data pipeline and never mutated here.
type Snapshot struct {
	Metadata         Metadata         `json:"metadata"`
	Demographics     Demographics     `json:"demographics"`
	HealthConditions HealthConditions `json:"health_conditions"`
	Disability       Disability       `json:"disability"`
	KeyStatistics    Numbers          `json:"key_statistics"`
}

type Metadata struct {
	Source      string `json:"source"`
	Generated   string `json:"generated"`
	Description string `json:"description"`
}

type Demographics struct {
	AgeGroups     NumberTable `json:"age_groups"`
	Seniors65Plus Numbers     `json:"seniors_65_plus"`
	VeryOld85Plus Numbers     `json:"very_old_85_plus"`
}

type HealthConditions struct {
	Polymorbidity     RecordTable `json:"polymorbidity"`
	ChronicDiseases   RecordTable `json:"chronic_diseases"`
	GeriatricPatients RecordTable `json:"geriatric_patients"`
}

type Disability struct {
	Total2024   float64 `json:"total_2024"`
	Description string  `json:"description"`
}

// Names of the key_statistics metrics the page reads.
const (
	StatSeniors2025            = "seniors_65_plus_2025"
	StatSeniorsGrowthPct       = "seniors_growth_pct"
	StatVeryOld2025            = "very_old_85_plus_2025"
	StatVeryOldGrowthPct       = "very_old_growth_pct"
	StatDementia2024           = "dementia_2024"
	StatDementia2050           = "dementia_2050"
	StatMobilityLimited        = "estimated_mobility_limited_conservative"
	StatHighRiskGeriatric2024  = "high_risk_geriatric_2024"
	StatDisabilityCertificates = "disability_certificates_2024"
)

func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
