package engine

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"aging-dashboard/internal/format"
	"aging-dashboard/internal/model"
)

// ErrMissingField is returned when the snapshot lacks a value the page reads.
// The snapshot comes from a co-versioned pipeline, so there are no fallbacks.
var ErrMissingField = errors.New("missing snapshot field")

// Year keys read from the health projections. The comparison charts are
// labelled 2025 but the pipeline publishes the current figures under "2024".
const (
	yearCurrent   = "2024"
	yearProjected = "2050"
)

var targetGroups = []struct {
	label string
	stat  string
}{
	{"Mobilitně omezení (15%)", model.StatMobilityLimited},
	{"Vysoko-rizikoví geriatričtí", model.StatHighRiskGeriatric2024},
	{"Demence", model.StatDementia2024},
	{"ZTP/ZTP-P průkazy", model.StatDisabilityCertificates},
}

// Derive builds the page view from a snapshot. It does not modify the
// snapshot and returns the same view for the same input.
func Derive(s *model.Snapshot) (*model.View, error) {
	cards, err := MetricCards(s.KeyStatistics)
	if err != nil {
		return nil, err
	}

	trend, err := SeniorsTrend(s.Demographics)
	if err != nil {
		return nil, err
	}

	diseases, err := DiseaseComparison(s.HealthConditions.ChronicDiseases)
	if err != nil {
		return nil, err
	}

	risk, err := GeriatricRisk(s.HealthConditions.GeriatricPatients)
	if err != nil {
		return nil, err
	}

	groups, err := TargetGroups(s.KeyStatistics)
	if err != nil {
		return nil, err
	}

	seniorsGrowth, err := stat(s.KeyStatistics, model.StatSeniorsGrowthPct)
	if err != nil {
		return nil, err
	}
	veryOldGrowth, err := stat(s.KeyStatistics, model.StatVeryOldGrowthPct)
	if err != nil {
		return nil, err
	}

	return &model.View{
		Metadata:         s.Metadata,
		Cards:            cards,
		SeniorsTrend:     trend,
		Diseases:         diseases,
		GeriatricRisk:    risk,
		TargetGroups:     groups,
		SeniorsGrowthPct: format.Percent(seniorsGrowth),
		VeryOldGrowthPct: format.Percent(veryOldGrowth),
	}, nil
}

func SeniorsTrend(d model.Demographics) ([]model.TrendPoint, error) {
	points := make([]model.TrendPoint, 0, len(d.Seniors65Plus))
	for _, e := range d.Seniors65Plus {
		over85, ok := d.VeryOld85Plus.Get(e.Key)
		if !ok {
			return nil, missing("demographics.very_old_85_plus." + e.Key)
		}
		points = append(points, model.TrendPoint{
			Year:          e.Key,
			Seniors65Plus: format.Round(e.Value),
			Over85:        format.Round(over85),
		})
	}
	return points, nil
}

func DiseaseComparison(diseases model.RecordTable) ([]model.Comparison, error) {
	rows := make([]model.Comparison, 0, len(diseases))
	for _, d := range diseases {
		path := "health_conditions.chronic_diseases." + d.Key
		current, projected, err := pair(d.Values, path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, model.Comparison{Name: d.Name, Y2025: current, Y2050: projected})
	}
	return rows, nil
}

func GeriatricRisk(patients model.RecordTable) ([]model.Comparison, error) {
	rows := make([]model.Comparison, 0, len(patients))
	for _, r := range patients {
		path := "health_conditions.geriatric_patients." + r.Key
		current, projected, err := pair(r.Values, path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, model.Comparison{Name: Capitalize(r.Key), Y2025: current, Y2050: projected})
	}
	return rows, nil
}

func TargetGroups(stats model.Numbers) ([]model.TargetGroup, error) {
	groups := make([]model.TargetGroup, 0, len(targetGroups))
	var total float64
	for _, g := range targetGroups {
		v, err := stat(stats, g.stat)
		if err != nil {
			return nil, err
		}
		total += v
		groups = append(groups, model.TargetGroup{Name: g.label, Value: v})
	}
	if total > 0 {
		for i := range groups {
			groups[i].Percent = groups[i].Value / total * 100
		}
	}
	return groups, nil
}

func MetricCards(stats model.Numbers) ([]model.MetricCard, error) {
	values := make(map[string]float64)
	for _, name := range []string{
		model.StatSeniors2025,
		model.StatSeniorsGrowthPct,
		model.StatVeryOld2025,
		model.StatVeryOldGrowthPct,
		model.StatDementia2024,
		model.StatDementia2050,
		model.StatMobilityLimited,
	} {
		v, err := stat(stats, name)
		if err != nil {
			return nil, err
		}
		values[name] = v
	}

	return []model.MetricCard{
		{
			Label:  "SENIOŘI 65+",
			Value:  format.Millions(values[model.StatSeniors2025]),
			Note:   "+" + format.Percent(values[model.StatSeniorsGrowthPct]) + "% do roku 2050",
			Growth: true,
		},
		{
			Label:  "VELMI STAŘÍ 85+",
			Value:  format.Thousands(values[model.StatVeryOld2025]),
			Note:   "+" + format.Percent(values[model.StatVeryOldGrowthPct]) + "% do roku 2050",
			Growth: true,
		},
		{
			Label: "DEMENCE",
			Value: format.Thousands(values[model.StatDementia2024]),
			Note:  "→ " + format.Thousands(values[model.StatDementia2050]) + " v roce 2050",
		},
		{
			Label: "MOBILITNĚ OMEZENÍ",
			Value: format.Thousands(values[model.StatMobilityLimited]),
			Note:  "~15% seniorů 65+",
		},
	}, nil
}

func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func pair(values model.Numbers, path string) (int64, int64, error) {
	current, ok := values.Get(yearCurrent)
	if !ok {
		return 0, 0, missing(path + "." + yearCurrent)
	}
	projected, ok := values.Get(yearProjected)
	if !ok {
		return 0, 0, missing(path + "." + yearProjected)
	}
	return format.Round(current), format.Round(projected), nil
}

func stat(stats model.Numbers, name string) (float64, error) {
	v, ok := stats.Get(name)
	if !ok {
		return 0, missing("key_statistics." + name)
	}
	return v, nil
}

func missing(path string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, path)
}
