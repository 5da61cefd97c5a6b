package diagnosis

// FeatureNames lists the model inputs in training order.
var FeatureNames = []string{
	"mean radius",
	"mean texture",
	"mean perimeter",
	"mean area",
	"mean smoothness",
	"mean compactness",
}

// FeatureVector is the fixed six-value model input. Values are not range
// checked.
type FeatureVector struct {
	MeanRadius      float64
	MeanTexture     float64
	MeanPerimeter   float64
	MeanArea        float64
	MeanSmoothness  float64
	MeanCompactness float64
}

// Slice returns the values in FeatureNames order.
func (v FeatureVector) Slice() []float64 {
	return []float64{
		v.MeanRadius,
		v.MeanTexture,
		v.MeanPerimeter,
		v.MeanArea,
		v.MeanSmoothness,
		v.MeanCompactness,
	}
}

// Label is the binary diagnosis.
type Label int

const (
	Malignant Label = iota
	Benign
)

// LabelFromClass maps a model class index to a Label. Index 0 is malignant in
// the training data encoding; every other index is benign.
func LabelFromClass(class int) Label {
	if class == 0 {
		return Malignant
	}
	return Benign
}

func (l Label) String() string {
	if l == Malignant {
		return "malignant"
	}
	return "benign"
}

// Display is the wording shown to users.
func (l Label) Display() string {
	if l == Malignant {
		return "Malignant (Cancerous)"
	}
	return "Benign (Non-Cancerous)"
}

// Kind discriminates Result variants.
type Kind int

const (
	KindSuccess Kind = iota
	KindModelUnavailable
	KindPredictionFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindModelUnavailable:
		return "model_unavailable"
	case KindPredictionFailure:
		return "prediction_failure"
	default:
		return "unknown"
	}
}

// Result is the outcome of one prediction. Label is meaningful only for
// KindSuccess and Message only for KindPredictionFailure.
type Result struct {
	Kind    Kind
	Label   Label
	Message string
}

// Success builds a successful Result.
func Success(l Label) Result { return Result{Kind: KindSuccess, Label: l} }

// ModelUnavailable builds the result returned when no model is loaded.
func ModelUnavailable() Result { return Result{Kind: KindModelUnavailable} }

// PredictionFailure builds a failed Result carrying msg.
func PredictionFailure(msg string) Result {
	return Result{Kind: KindPredictionFailure, Message: msg}
}

// OK reports whether the result carries a label.
func (r Result) OK() bool { return r.Kind == KindSuccess }

// Text renders the result the way the web page shows it.
func (r Result) Text() string {
	switch r.Kind {
	case KindSuccess:
		return "Prediction: " + r.Label.Display()
	case KindModelUnavailable:
		return "Error: Diagnostic model is currently unavailable."
	default:
		return "Error during analysis: " + r.Message
	}
}
