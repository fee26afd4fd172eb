package execute

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap/zaptest"

	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/handlers"
	"gitlab.com/codejudge.net/internal/static/errs"
)

type fakeEvaluator struct {
	got       domain.Evaluation
	userID    string
	problemID string
	outcome   *domain.EvaluationOutcome
	err       error
}

func (f *fakeEvaluator) Evaluate(_ context.Context, userID, problemID string, ev domain.Evaluation) (*domain.EvaluationOutcome, error) {
	f.got, f.userID, f.problemID = ev, userID, problemID
	return f.outcome, f.err
}

func serve(t *testing.T, eval *fakeEvaluator, path, body string, withUser bool) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	router := mux.NewRouter()
	NewExecuteHandler(eval, logging.NewZapLoggerFrom(zaptest.NewLogger(t))).RegisterRoutes(router.PathPrefix("/api").Subrouter())

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if withUser {
		req = req.WithContext(handlers.WithUserID(req.Context(), "u1"))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
	return rec, decoded
}

func TestExecuteRun(t *testing.T) {
	t.Parallel()
	eval := &fakeEvaluator{outcome: &domain.EvaluationOutcome{
		Mode:      domain.ModeRun,
		AllPassed: true,
		Cases:     []domain.CaseOutcome{{TestCase: 1, Passed: true, UserOutput: "15", ExpectedOutput: "15"}},
	}}

	rec, body := serve(t, eval, "/api/execute/p1/run", `{"source_code":"x","language_id":71,"stdin":["7\n8"]}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	run, ok := eval.got.(domain.RunEvaluation)
	if !ok || len(run.Stdin) != 1 || run.Stdin[0] != "7\n8" || run.LanguageID != 71 {
		t.Fatalf("unexpected evaluation: %#v", eval.got)
	}
	if eval.userID != "u1" || eval.problemID != "p1" {
		t.Fatalf("unexpected caller %s/%s", eval.userID, eval.problemID)
	}
	if body["message"] != "All test cases passed" {
		t.Fatalf("unexpected message %v", body["message"])
	}
	data := body["data"].(map[string]interface{})
	if data["success"] != true || len(data["results"].([]interface{})) != 1 {
		t.Fatalf("unexpected data %v", data)
	}
}

func TestExecuteSubmit(t *testing.T) {
	t.Parallel()
	eval := &fakeEvaluator{outcome: &domain.EvaluationOutcome{
		Mode:       domain.ModeSubmit,
		AllPassed:  false,
		Status:     domain.SubmissionWrongAnswer,
		Cases:      []domain.CaseOutcome{{TestCase: 1}, {TestCase: 2}},
		Submission: &domain.Submission{Status: domain.SubmissionWrongAnswer},
	}}

	rec, body := serve(t, eval, "/api/execute/p1/submit", `{"source_code":"x","language_id":71,"stdin":["1 2","3 4"]}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	sub, ok := eval.got.(domain.SubmitEvaluation)
	if !ok || sub.Stdin != "1 2\n3 4" {
		t.Fatalf("unexpected evaluation: %#v", eval.got)
	}
	if body["message"] != "Submission failed" {
		t.Fatalf("unexpected message %v", body["message"])
	}
	data := body["data"].(map[string]interface{})
	if data["status"] != "Wrong Answer" || data["submission"] == nil || len(data["codeExecutionResults"].([]interface{})) != 2 {
		t.Fatalf("unexpected data %v", data)
	}
}

func TestExecuteRejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		path     string
		body     string
		withUser bool
		want     int
	}{
		{name: "anonymous", path: "/api/execute/p1/run", body: `{"source_code":"x","language_id":71,"stdin":["1"]}`, want: http.StatusUnauthorized},
		{name: "malformed", path: "/api/execute/p1/run", body: `{`, withUser: true, want: http.StatusBadRequest},
		{name: "missing code", path: "/api/execute/p1/run", body: `{"language_id":71,"stdin":["1"]}`, withUser: true, want: http.StatusBadRequest},
		{name: "scalar run stdin", path: "/api/execute/p1/run", body: `{"source_code":"x","language_id":71,"stdin":"1"}`, withUser: true, want: http.StatusBadRequest},
		{name: "object submit stdin", path: "/api/execute/p1/submit", body: `{"source_code":"x","language_id":71,"stdin":{}}`, withUser: true, want: http.StatusBadRequest},
		{name: "unknown mode", path: "/api/execute/p1/debug", body: `{"source_code":"x","language_id":71,"stdin":["1"]}`, withUser: true, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			eval := &fakeEvaluator{}
			rec, body := serve(t, eval, tt.path, tt.body, tt.withUser)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			if body["success"] != false {
				t.Fatalf("expected success=false, got %v", body["success"])
			}
			if eval.got != nil {
				t.Fatalf("evaluation must not run")
			}
		})
	}
}

func TestExecuteLeavesEmptyRunStdinToService(t *testing.T) {
	t.Parallel()
	for _, body := range []string{
		`{"source_code":"x","language_id":71,"stdin":[]}`,
		`{"source_code":"x","language_id":71}`,
	} {
		eval := &fakeEvaluator{err: errs.ProblemNotFound}
		rec, _ := serve(t, eval, "/api/execute/nope/run", body, true)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d", body, rec.Code)
		}
		run, ok := eval.got.(domain.RunEvaluation)
		if !ok || len(run.Stdin) != 0 {
			t.Fatalf("expected empty run evaluation, got %#v", eval.got)
		}
	}
}

func TestExecuteMapsServiceErrors(t *testing.T) {
	t.Parallel()
	eval := &fakeEvaluator{err: errs.ReferenceSolutionMissing}
	rec, body := serve(t, eval, "/api/execute/p1/run", `{"source_code":"x","language_id":62,"stdin":["1"]}`, true)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["message"] != errs.ReferenceSolutionMissing.Error() {
		t.Fatalf("unexpected message %v", body["message"])
	}

	eval = &fakeEvaluator{err: errs.ProblemNotFound}
	if rec, _ := serve(t, eval, "/api/execute/nope/submit", `{"source_code":"x","language_id":71}`, true); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
