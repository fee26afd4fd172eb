package execute

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/services/evaluation"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/handlers"
	"gitlab.com/codejudge.net/internal/handlers/response"
	"gitlab.com/codejudge.net/internal/static/errs"
)

// maxBodyBytes bounds a request body. Source code is the only large field.
const maxBodyBytes = 1 << 20

type ExecuteHandler struct {
	evaluationService evaluation.IEvaluationService
	validate          *validator.Validate
	logger            primary.Logger
}

func NewExecuteHandler(evaluationService evaluation.IEvaluationService, logger primary.Logger) *ExecuteHandler {
	return &ExecuteHandler{
		evaluationService: evaluationService,
		validate:          validator.New(),
		logger:            logger,
	}
}

// RegisterRoutes registers the routes on a router already guarded by the
// JWT middleware.
func (h *ExecuteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/execute/{problemId}/{mode}", h.Execute).Methods(http.MethodPost)
}

func (h *ExecuteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	problemID, mode := vars["problemId"], vars["mode"]

	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, errs.Unauthorized)
		return
	}

	var req ExecuteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode request", "error", err)
		response.WriteError(w, fmt.Errorf("%w: malformed request body", errs.InvalidInput))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.WriteError(w, fmt.Errorf("%w: %w", errs.InvalidInput, err))
		return
	}

	ev, err := req.toEvaluation(mode)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	outcome, err := h.evaluationService.Evaluate(r.Context(), userID, problemID, ev)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if outcome.Mode == domain.ModeRun {
		message := "Test cases failed"
		if outcome.AllPassed {
			message = "All test cases passed"
		}
		response.WriteSuccess(w, runData{Success: outcome.AllPassed, Results: outcome.Cases}, message)
		return
	}

	message := "Submission failed"
	if outcome.AllPassed {
		message = "Submission successful"
	}
	response.WriteSuccess(w, submitData{
		Success:              outcome.AllPassed,
		Status:               outcome.Status,
		CodeExecutionResults: outcome.Cases,
		Submission:           outcome.Submission,
	}, message)
}
