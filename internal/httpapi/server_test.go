package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"diagnosd/internal/diagnosis"
	"diagnosd/pkg/types"
)

type mockService struct {
	mu     sync.Mutex
	res    diagnosis.Result
	ready  bool
	status types.StatusResponse
	got    []diagnosis.FeatureVector
	ctxs   []context.Context
}

func (m *mockService) Predict(ctx context.Context, v diagnosis.FeatureVector) diagnosis.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.got = append(m.got, v)
	m.ctxs = append(m.ctxs, ctx)
	if err := ctx.Err(); err != nil {
		return diagnosis.PredictionFailure(err.Error())
	}
	return m.res
}
func (m *mockService) Status() types.StatusResponse { return m.status }
func (m *mockService) Ready() bool                  { return m.ready }

func validForm() url.Values {
	return url.Values{
		"mean_radius":      {"14.0"},
		"mean_texture":     {"20.0"},
		"mean_perimeter":   {"90.0"},
		"mean_area":        {"600.0"},
		"mean_smoothness":  {"0.1"},
		"mean_compactness": {"0.1"},
	}
}

func postForm(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/predict", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestIndex_RendersEmptyForm(t *testing.T) {
	h := NewMux(&mockService{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK { t.Fatalf("status=%d", w.Code) }
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") { t.Fatalf("content-type=%s", ct) }
	body := w.Body.String()
	for _, f := range formFields {
		if !strings.Contains(body, `name="`+f.Name+`"`) { t.Fatalf("missing field %s", f.Name) }
	}
	if strings.Contains(body, `class="result"`) { t.Fatalf("empty form should not show a result") }
}

func TestPredictForm_Outcomes(t *testing.T) {
	cases := []struct {
		name string
		res  diagnosis.Result
		want string
	}{
		{"malignant", diagnosis.Success(diagnosis.Malignant), "Prediction: Malignant (Cancerous)"},
		{"benign", diagnosis.Success(diagnosis.Benign), "Prediction: Benign (Non-Cancerous)"},
		{"unavailable", diagnosis.ModelUnavailable(), "Error: Diagnostic model is currently unavailable."},
		{"failure", diagnosis.PredictionFailure("boom"), "Error during analysis: boom"},
	}
	for _, c := range cases {
		svc := &mockService{res: c.res}
		w := postForm(t, NewMux(svc), validForm())
		if w.Code != http.StatusOK { t.Fatalf("%s: status=%d", c.name, w.Code) }
		if !strings.Contains(w.Body.String(), c.want) { t.Fatalf("%s: body missing %q", c.name, c.want) }
	}
}

func TestPredictForm_FeatureOrder(t *testing.T) {
	svc := &mockService{res: diagnosis.Success(diagnosis.Benign)}
	form := url.Values{
		"mean_compactness": {"6"},
		"mean_smoothness":  {"5"},
		"mean_area":        {"4"},
		"mean_perimeter":   {"3"},
		"mean_texture":     {"2"},
		"mean_radius":      {"1"},
	}
	postForm(t, NewMux(svc), form)
	if len(svc.got) != 1 { t.Fatalf("calls=%d", len(svc.got)) }
	want := diagnosis.FeatureVector{MeanRadius: 1, MeanTexture: 2, MeanPerimeter: 3, MeanArea: 4, MeanSmoothness: 5, MeanCompactness: 6}
	if svc.got[0] != want { t.Fatalf("got %+v", svc.got[0]) }
}

func TestPredictForm_RejectsMalformedInput(t *testing.T) {
	missing := validForm()
	missing.Del("mean_area")
	notNumber := validForm()
	notNumber.Set("mean_texture", "abc")
	for name, form := range map[string]url.Values{"missing": missing, "not a number": notNumber} {
		svc := &mockService{}
		w := postForm(t, NewMux(svc), form)
		if w.Code != http.StatusUnprocessableEntity { t.Fatalf("%s: status=%d", name, w.Code) }
		if len(svc.got) != 0 { t.Fatalf("%s: service should not be called", name) }
	}
}

func TestPredictForm_NoBoundsCheck(t *testing.T) {
	svc := &mockService{res: diagnosis.Success(diagnosis.Benign)}
	form := validForm()
	form.Set("mean_area", "-1e9")
	if w := postForm(t, NewMux(svc), form); w.Code != http.StatusOK { t.Fatalf("status=%d", w.Code) }
	if svc.got[0].MeanArea != -1e9 { t.Fatalf("got %+v", svc.got[0]) }
}

func TestPredictJSON(t *testing.T) {
	svc := &mockService{res: diagnosis.Success(diagnosis.Malignant)}
	w := postJSON(t, NewMux(svc), `{"mean_radius":14,"mean_texture":20,"mean_perimeter":90,"mean_area":600,"mean_smoothness":0.1,"mean_compactness":0.1}`)
	if w.Code != http.StatusOK { t.Fatalf("status=%d body=%s", w.Code, w.Body.String()) }
	var resp types.PredictResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil { t.Fatalf("json: %v", err) }
	if resp.Kind != "success" || resp.Label != "malignant" || resp.Text != "Prediction: Malignant (Cancerous)" {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestPredictJSON_UnavailableIs200(t *testing.T) {
	svc := &mockService{res: diagnosis.ModelUnavailable()}
	w := postJSON(t, NewMux(svc), `{"mean_radius":1,"mean_texture":1,"mean_perimeter":1,"mean_area":1,"mean_smoothness":1,"mean_compactness":1}`)
	if w.Code != http.StatusOK { t.Fatalf("status=%d", w.Code) }
	var resp types.PredictResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Kind != "model_unavailable" || resp.Label != "" { t.Fatalf("resp=%+v", resp) }
}

func TestPredictJSON_Errors(t *testing.T) {
	h := NewMux(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType { t.Fatalf("content-type: status=%d", w.Code) }

	if w := postJSON(t, h, `{bad`); w.Code != http.StatusBadRequest { t.Fatalf("bad json: status=%d", w.Code) }

	w = postJSON(t, h, `{"mean_radius":1}`)
	if w.Code != http.StatusBadRequest { t.Fatalf("missing: status=%d", w.Code) }
	var er types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil { t.Fatalf("json: %v", err) }
	if er.Code != http.StatusBadRequest || !strings.Contains(er.Error, "mean_texture") { t.Fatalf("err=%+v", er) }
}

func TestStatusHealthReady(t *testing.T) {
	svc := &mockService{ready: false, status: types.StatusResponse{State: "unavailable", Reason: "missing"}}
	h := NewMux(svc)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	var st types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil { t.Fatalf("json: %v", err) }
	if st.State != "unavailable" || st.Reason != "missing" { t.Fatalf("status=%+v", st) }

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" { t.Fatalf("healthz %d %q", w.Code, w.Body.String()) }

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable { t.Fatalf("readyz status=%d", w.Code) }

	svc.ready = true
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK { t.Fatalf("readyz status=%d", w.Code) }
}

func TestPredictTimeoutAppliesDeadline(t *testing.T) {
	SetPredictTimeout(time.Minute)
	t.Cleanup(func() { SetPredictTimeout(0) })
	svc := &mockService{res: diagnosis.Success(diagnosis.Benign)}
	postForm(t, NewMux(svc), validForm())
	if _, ok := svc.ctxs[0].Deadline(); !ok { t.Fatalf("expected a deadline on the predict context") }
}

func TestBaseContextCancelsPredict(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	SetBaseContext(ctx)
	t.Cleanup(func() { SetBaseContext(nil) })
	svc := &mockService{res: diagnosis.Success(diagnosis.Benign)}
	w := postForm(t, NewMux(svc), validForm())
	if !strings.Contains(w.Body.String(), "Error during analysis: context canceled") {
		t.Fatalf("body=%s", w.Body.String())
	}
	if !errors.Is(svc.ctxs[0].Err(), context.Canceled) { t.Fatalf("ctx err=%v", svc.ctxs[0].Err()) }
}

func TestSwaggerDoc(t *testing.T) {
	h := NewMux(&mockService{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK { t.Fatalf("status=%d", w.Code) }
	if !strings.Contains(w.Body.String(), "/api/predict") { t.Fatalf("doc missing predict path") }
}

func TestSwaggerDisabled(t *testing.T) {
	SetSwaggerEnabled(false)
	t.Cleanup(func() { SetSwaggerEnabled(true) })
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusNotFound { t.Fatalf("status=%d", w.Code) }
}

func TestCORSPreflight(t *testing.T) {
	SetCORSOptions(true, []string{"https://example.org"}, []string{"GET", "POST"}, []string{"Content-Type"})
	t.Cleanup(func() { SetCORSOptions(false, nil, nil, nil) })
	req := httptest.NewRequest(http.MethodOptions, "/api/predict", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://example.org" {
		t.Fatalf("allow-origin=%q", got)
	}
}

func TestMaxBodyBytes(t *testing.T) {
	SetMaxBodyBytes(16)
	t.Cleanup(func() { SetMaxBodyBytes(0) })
	svc := &mockService{}
	w := postForm(t, NewMux(svc), validForm())
	if w.Code != http.StatusRequestEntityTooLarge { t.Fatalf("status=%d", w.Code) }
	if len(svc.got) != 0 { t.Fatalf("service should not be called") }
}
