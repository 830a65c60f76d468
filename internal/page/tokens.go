package page

import (
	"html/template"
	"strings"
)

// Design tokens shared by the page styles.

type fontToken struct {
	Name   string
	Family []string
}

type colorToken struct {
	Name  string
	Value string
}

var fonts = []fontToken{
	{Name: "sora", Family: []string{"Sora", "sans-serif"}},
	{Name: "lexend", Family: []string{"Lexend", "sans-serif"}},
}

var brandColors = []colorToken{
	{Name: "ot-blue", Value: "#2563eb"},
	{Name: "ot-green", Value: "#10b981"},
	{Name: "ot-orange", Value: "#f59e0b"},
}

// Card accents, in card order.
var cardAccents = []string{"#2563eb", "#f97316", "#ef4444", "#9333ea"}

// tokensCSS renders the tokens as custom properties for a :root rule.
func tokensCSS() template.CSS {
	var b strings.Builder
	for _, f := range fonts {
		quoted := make([]string, len(f.Family))
		for i, name := range f.Family {
			if strings.Contains(name, "-") {
				quoted[i] = name
			} else {
				quoted[i] = "'" + name + "'"
			}
		}
		b.WriteString("--font-" + f.Name + ": " + strings.Join(quoted, ", ") + ";\n")
	}
	for _, c := range brandColors {
		b.WriteString("--" + c.Name + ": " + c.Value + ";\n")
	}
	return template.CSS(b.String())
}

func cardAccent(i int) template.CSS {
	return template.CSS(cardAccents[i%len(cardAccents)])
}
