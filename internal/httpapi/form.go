package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"diagnosd/internal/diagnosis"
	"diagnosd/pkg/types"
)

// formField is one input of the diagnosis form, in model feature order.
type formField struct {
	Name  string
	Label string
}

var formFields = []formField{
	{"mean_radius", "Mean Radius"},
	{"mean_texture", "Mean Texture"},
	{"mean_perimeter", "Mean Perimeter"},
	{"mean_area", "Mean Area"},
	{"mean_smoothness", "Mean Smoothness"},
	{"mean_compactness", "Mean Compactness"},
}

// parseFeatureForm coerces the six form fields to floats. Both urlencoded
// and multipart bodies are accepted. Values are not range checked: overflow
// parses to ±Inf.
func parseFeatureForm(r *http.Request) (diagnosis.FeatureVector, error) {
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return diagnosis.FeatureVector{}, fmt.Errorf("invalid form body: %w", err)
	}
	var vals [6]float64
	for i, f := range formFields {
		raw := strings.TrimSpace(r.PostForm.Get(f.Name))
		if raw == "" {
			return diagnosis.FeatureVector{}, fieldError{field: f.Name, reason: "required"}
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return diagnosis.FeatureVector{}, fieldError{field: f.Name, reason: "value is not a valid number"}
		}
		vals[i] = v
	}
	return vectorOf(vals), nil
}

// vectorFromRequest checks that every JSON field is present.
func vectorFromRequest(req types.PredictRequest) (diagnosis.FeatureVector, error) {
	ptrs := [6]*float64{
		req.MeanRadius,
		req.MeanTexture,
		req.MeanPerimeter,
		req.MeanArea,
		req.MeanSmoothness,
		req.MeanCompactness,
	}
	var vals [6]float64
	for i, p := range ptrs {
		if p == nil {
			return diagnosis.FeatureVector{}, fmt.Errorf("%s is required", formFields[i].Name)
		}
		vals[i] = *p
	}
	return vectorOf(vals), nil
}

func vectorOf(v [6]float64) diagnosis.FeatureVector {
	return diagnosis.FeatureVector{
		MeanRadius:      v[0],
		MeanTexture:     v[1],
		MeanPerimeter:   v[2],
		MeanArea:        v[3],
		MeanSmoothness:  v[4],
		MeanCompactness: v[5],
	}
}
