// Package page renders the dashboard HTML document: the ready page built
// from a derived view, and the loading and error views.
package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"aging-dashboard/internal/charts"
	"aging-dashboard/internal/format"
	"aging-dashboard/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const ServiceURL = "https://ordinacnitaxi.cz"

type Meta struct {
	Lang        string
	Title       string
	Description string
	Keywords    string
}

var Metadata = Meta{
	Lang:        "cs",
	Title:       "Stárnutí populace ČR | Ordinační TAXI",
	Description: "Vizualizace demografických dat UZIS ČR ukazující rostoucí potřebu dopravy seniorů k lékařům",
	Keywords:    "senioři, stárnutí populace, doprava seniorů, Ordinační TAXI, UZIS, zdravotní péče",
}

type Status string

const (
	Loading Status = "loading"
	Failed  Status = "error"
)

var tmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"grouped":      format.Grouped,
	"groupedFloat": func(v float64) string { return format.Grouped(format.Round(v)) },
	"share":        format.Share,
	"accent":       cardAccent,
}).ParseFS(templateFS, "templates/*.tmpl"))

type chartSet struct {
	SeniorsTrend  template.HTML
	Diseases      template.HTML
	GeriatricRisk template.HTML
	TargetGroups  template.HTML
}

type swatches struct {
	Current   template.CSS
	Projected template.CSS
}

type document struct {
	Meta       Meta
	Tokens     template.CSS
	Status     Status
	View       *model.View
	Charts     chartSet
	Colors     struct{ Diseases, Geriatric swatches }
	ServiceURL string
}

// Render writes the full page for view. Charts are rendered before anything
// is written, so a chart failure leaves w untouched.
func Render(w io.Writer, view *model.View) error {
	set, err := renderCharts(view)
	if err != nil {
		return err
	}

	doc := newDocument()
	doc.View = view
	doc.Charts = set
	doc.Colors.Diseases = swatchesFor(charts.DiseaseColors)
	doc.Colors.Geriatric = swatchesFor(charts.GeriatricColors)
	return tmpl.ExecuteTemplate(w, "page", doc)
}

func RenderStatus(w io.Writer, status Status) error {
	doc := newDocument()
	doc.Status = status
	return tmpl.ExecuteTemplate(w, "status", doc)
}

func newDocument() *document {
	return &document{
		Meta:       Metadata,
		Tokens:     tokensCSS(),
		ServiceURL: ServiceURL,
	}
}

func renderCharts(view *model.View) (chartSet, error) {
	var set chartSet

	svg, err := charts.Line(view.SeniorsTrend)
	if err != nil {
		return set, fmt.Errorf("seniors trend: %w", err)
	}
	set.SeniorsTrend = template.HTML(svg)

	svg, err = charts.GroupedBar(view.Diseases, charts.DiseaseColors)
	if err != nil {
		return set, fmt.Errorf("chronic diseases: %w", err)
	}
	set.Diseases = template.HTML(svg)

	svg, err = charts.GroupedBar(view.GeriatricRisk, charts.GeriatricColors)
	if err != nil {
		return set, fmt.Errorf("geriatric risk: %w", err)
	}
	set.GeriatricRisk = template.HTML(svg)

	svg, err = charts.Pie(view.TargetGroups)
	if err != nil {
		return set, fmt.Errorf("target groups: %w", err)
	}
	set.TargetGroups = template.HTML(svg)

	return set, nil
}

func swatchesFor(p charts.Pair) swatches {
	return swatches{Current: template.CSS(p.Current), Projected: template.CSS(p.Projected)}
}
