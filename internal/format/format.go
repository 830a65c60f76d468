// Package format turns raw statistics into the short strings shown on the
// page: headline numbers (2.50M, 450K), growth percentages and cs-CZ
// grouped counts.
package format

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var czech = message.NewPrinter(language.Czech)

// Round rounds to the nearest integer with halves going up, so 2.5 becomes 3
// and -2.5 becomes -2.
func Round(v float64) int64 {
	r := math.Round(v)
	if v-r == 0.5 {
		r++
	}
	return int64(r)
}

func Millions(v float64) string {
	return strconv.FormatFloat(math.Round(v/1e6*100)/100, 'f', 2, 64) + "M"
}

func Thousands(v float64) string {
	return strconv.FormatFloat(math.Round(v/1e3), 'f', 0, 64) + "K"
}

func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func Share(pct float64) string {
	return strconv.FormatInt(Round(pct), 10) + "%"
}

func Grouped(n int64) string {
	return czech.Sprintf("%d", n)
}
