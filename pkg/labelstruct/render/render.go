// Package render produces print-ready HTML for labels.
package render

import (
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printDateLayout is the day-first date format printed on labels.
const printDateLayout = "02.01.2006"

// Each label occupies one 100mm x 70mm region on its own page.
var pageTemplate = template.Must(template.New("labels").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Labels</title>
<style>
@page { size: 100mm 70mm; margin: 0; }
body { margin: 0; font-family: Arial, sans-serif; }
.label { width: 100mm; height: 70mm; padding: 2mm; box-sizing: border-box; page-break-inside: avoid; page-break-after: always; text-align: center; }
.label-number { font-size: 24pt; font-weight: bold; margin-bottom: 3mm; }
.field { font-size: 18pt; font-weight: bold; }
</style>
</head>
<body>
{{- range .}}
<div class="label" data-id="{{.ID}}">
<div class="label-number">{{.LabelNumber}}</div>
<div class="field material">{{.Material}}</div>
<div class="field dimension">{{.Dimension}}</div>
<div class="field lot-code">{{.LotCode}}</div>
<div class="field date">{{.Date}}</div>
<div class="field weight">{{.Weight}}</div>
</div>
{{- end}}
<script>window.onload = function () { window.print(); };</script>
</body>
</html>
`))

type labelView struct {
	ID          int
	LabelNumber string
	Material    string
	Dimension   string
	LotCode     string
	Date        string
	Weight      string
}

// HTML writes one printable region per label, in order.
func HTML(w io.Writer, labels []models.Label) error {
	printer := message.NewPrinter(language.Turkish)

	views := make([]labelView, 0, len(labels))
	for _, l := range labels {
		views = append(views, labelView{
			ID:          l.ID,
			LabelNumber: l.LabelNumber,
			Material:    l.Material,
			Dimension:   FormatDimension(l.Dimension),
			LotCode:     l.LotCode,
			Date:        FormatDate(l.Date),
			Weight:      formatWeight(printer, l.Weight),
		})
	}
	return pageTemplate.Execute(w, views)
}

// FormatDimension spaces out the first separator: 3x171 prints as "3 X 171".
func FormatDimension(d string) string {
	d = strings.Replace(d, "x", "X", 1)
	return strings.Replace(d, "X", " X ", 1)
}

// FormatDate prints a YYYY-MM-DD date day first. Other inputs are returned unchanged.
func FormatDate(d string) string {
	t, err := time.Parse(models.DateLayout, d)
	if err != nil {
		return d
	}
	return t.Format(printDateLayout)
}

// FormatWeight prints a weight with Turkish digit grouping, e.g. "6.005 KG".
func FormatWeight(w int) string {
	return formatWeight(message.NewPrinter(language.Turkish), w)
}

func formatWeight(p *message.Printer, w int) string {
	return p.Sprintf("%d KG", w)
}
