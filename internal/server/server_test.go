package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/export"
)

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

const smallRun = `{"steps": 10, "nPaths": 20, "T": 1, "seed": 3}`

func TestSimulate(t *testing.T) {
	s := New(DefaultConfig(), nil)

	rec := do(t, s, http.MethodPost, "/api/simulate", smallRun)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var report export.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if len(report.Summary) != 11 {
		t.Errorf("summary has %d points, want 11", len(report.Summary))
	}
	if report.Terminal.Count != 20 {
		t.Errorf("terminal count = %d, want 20", report.Terminal.Count)
	}
	if report.Params.ConfInterval != 0.95 {
		t.Errorf("defaults not applied: %+v", report.Params)
	}

	again := do(t, s, http.MethodPost, "/api/simulate", smallRun)
	if again.Body.String() != rec.Body.String() {
		t.Error("same seed produced a different response")
	}
}

func TestSimulateDrawsSeedWhenUnset(t *testing.T) {
	s := New(DefaultConfig(), nil)
	s.seed = func() uint64 { return 99 }

	rec := do(t, s, http.MethodPost, "/api/simulate", `{"steps": 10, "nPaths": 5, "T": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var report export.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if report.Params.Seed != 99 {
		t.Errorf("seed = %d, want the drawn seed 99", report.Params.Seed)
	}

	explicit := do(t, s, http.MethodPost, "/api/simulate", `{"steps": 10, "nPaths": 5, "T": 1, "seed": 99}`)
	if explicit.Body.String() != rec.Body.String() {
		t.Error("replaying the echoed seed produced a different response")
	}
}

func TestSimulateUncappedStillRejectsHugeGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPoints = 0
	s := New(cfg, nil)

	rec := do(t, s, http.MethodPost, "/api/simulate", `{"steps": 9223372036854775807, "nPaths": 2}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var body APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body not json: %s", rec.Body.String())
	}
	if body.Code != "invalid_config" || body.Field != "steps" {
		t.Errorf("got code=%s field=%s, want invalid_config/steps", body.Code, body.Field)
	}
}

func TestSimulateErrors(t *testing.T) {
	s := New(DefaultConfig(), nil)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
		field  string
	}{
		{"malformed json", `{"steps":`, http.StatusBadRequest, "bad_request", ""},
		{"zero steps", `{"steps": 0}`, http.StatusBadRequest, "invalid_config", "steps"},
		{"confidence one", `{"confInterval": 1}`, http.StatusBadRequest, "invalid_config", "confInterval"},
		{"negative sigma", `{"sigma": -0.1}`, http.StatusBadRequest, "invalid_config", "sigma"},
		{"bad theta", `{"equilibriumType": "Dynamic", "thetaExpr": "0.05 *"}`, http.StatusBadRequest, "invalid_expression", "theta"},
		{"numeric blow-up", `{"steps": 50, "nPaths": 2, "T": 5, "gamma": 3, "sigma": 10, "r0": 10, "seed": 1}`,
			http.StatusUnprocessableEntity, "numeric_failure", ""},
		{"too large", `{"steps": 1000000, "nPaths": 1000}`, http.StatusBadRequest, "too_large", "nPaths"},
		{"steps overflow", `{"steps": 9223372036854775807, "nPaths": 2}`, http.StatusBadRequest, "too_large", "nPaths"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/simulate", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			var body APIError
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body not json: %s", rec.Body.String())
			}
			if body.Code != tt.code || body.Field != tt.field {
				t.Errorf("got code=%s field=%s, want %s/%s", body.Code, body.Field, tt.code, tt.field)
			}
			if body.Message == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestSimulatePathsCSV(t *testing.T) {
	s := New(DefaultConfig(), nil)

	rec := do(t, s, http.MethodPost, "/api/simulate/paths.csv", `{"steps": 4, "nPaths": 3, "T": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %s", ct)
	}

	ens, err := export.ReadPaths(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if ens.NumPaths() != 3 || ens.Grid.Len() != 5 {
		t.Errorf("unexpected table shape: %d paths, %d rows", ens.NumPaths(), ens.Grid.Len())
	}
}

func TestSimulateSummaryCSV(t *testing.T) {
	s := New(DefaultConfig(), nil)

	rec := do(t, s, http.MethodPost, "/api/simulate/summary.csv", `{"steps": 4, "nPaths": 3, "T": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 6 || lines[0] != "time,median,p_lower,p_upper" {
		t.Errorf("unexpected summary table:\n%s", rec.Body.String())
	}
}

func TestPresets(t *testing.T) {
	s := New(DefaultConfig(), nil)

	rec := do(t, s, http.MethodGet, "/api/presets", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body struct {
		Names []string `json:"names"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Names) == 0 {
		t.Error("no presets listed")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(DefaultConfig(), nil)
	do(t, s, http.MethodPost, "/api/simulate", smallRun)
	do(t, s, http.MethodPost, "/api/simulate", `{"steps": 0}`)
	do(t, s, http.MethodPost, "/api/simulate", `{"steps": 50, "nPaths": 2, "T": 5, "gamma": 3, "sigma": 10, "r0": 10, "seed": 1}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	for _, want := range []string{
		`ratesim_runs_total{outcome="ok",source="http"} 1`,
		`ratesim_runs_total{outcome="config_error",source="http"} 1`,
		`ratesim_runs_total{outcome="numeric_error",source="http"} 1`,
		`ratesim_paths_total 20`,
	} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
