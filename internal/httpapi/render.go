package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexPage struct {
	Fields         []formField
	PredictionText string
}

// renderIndex renders the form page, optionally with a prediction message.
func renderIndex(w http.ResponseWriter, predictionText string) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, indexPage{Fields: formFields, PredictionText: predictionText}); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
