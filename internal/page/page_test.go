package page

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aging-dashboard/internal/assets"
	"aging-dashboard/internal/engine"
	"aging-dashboard/internal/model"
)

func testView(t *testing.T) *model.View {
	t.Helper()
	s, err := model.DecodeSnapshot(bytes.NewReader(assets.Snapshot))
	require.NoError(t, err)
	view, err := engine.Derive(s)
	require.NoError(t, err)
	return view
}

func TestRenderReadyPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testView(t)))
	html := buf.String()

	assert.Contains(t, html, `<html lang="cs">`)
	assert.Contains(t, html, "<title>Stárnutí populace ČR | Ordinační TAXI</title>")
	assert.Contains(t, html, `name="keywords"`)
	assert.Contains(t, html, "--ot-blue: #2563eb;")
	assert.Contains(t, html, "--font-sora: 'Sora', sans-serif;")

	// metric cards
	assert.Contains(t, html, "SENIOŘI 65+")
	assert.Contains(t, html, "2.30M")
	assert.Contains(t, html, "31% do roku 2050")
	assert.Contains(t, html, "215K")
	assert.Contains(t, html, "~15% seniorů 65+")

	// one svg per chart section
	assert.Equal(t, 4, strings.Count(html, "<svg"))
	assert.Contains(t, html, "Dramatický nárůst počtu seniorů")
	assert.Contains(t, html, "Chronická onemocnění")
	assert.Contains(t, html, "Geriatričtí pacienti dle rizika")
	assert.Contains(t, html, "Cílová skupina pro Ordinační TAXI")
	assert.Contains(t, html, "Vysoké riziko")

	assert.Contains(t, html, `href="https://ordinacnitaxi.cz" target="_blank" rel="noopener noreferrer"`)
	assert.Contains(t, html, "ÚZIS ČR")
	assert.Contains(t, html, "Data aktualizována: 2025-01-15")

	assert.NotContains(t, html, "Načítám data...")
	assert.NotContains(t, html, "ZgotmplZ")
}

func TestRenderStatusViews(t *testing.T) {
	var loading bytes.Buffer
	require.NoError(t, RenderStatus(&loading, Loading))
	assert.Contains(t, loading.String(), "Načítám data...")
	assert.NotContains(t, loading.String(), "Chyba při načítání dat")

	var failed bytes.Buffer
	require.NoError(t, RenderStatus(&failed, Failed))
	assert.Contains(t, failed.String(), "Chyba při načítání dat")
	assert.NotContains(t, failed.String(), "<svg")
	assert.NotContains(t, failed.String(), "<button")
}

func TestRenderEmptySections(t *testing.T) {
	view := testView(t)
	view.Diseases = nil
	view.GeriatricRisk = nil
	for i := range view.TargetGroups {
		view.TargetGroups[i].Value = 0
		view.TargetGroups[i].Percent = 0
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, view))
	html := buf.String()

	assert.Equal(t, 4, strings.Count(html, "<svg"))
	assert.Equal(t, 3, strings.Count(html, "Žádná data"))
	assert.Contains(t, html, "Geriatričtí pacienti dle rizika")
	assert.NotContains(t, html, "Chyba při načítání dat")
}
