package submissions

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/services/submission"
	"gitlab.com/codejudge.net/internal/handlers"
	"gitlab.com/codejudge.net/internal/handlers/response"
	"gitlab.com/codejudge.net/internal/static/errs"
)

type SubmissionHandler struct {
	submissionService submission.ISubmissionService
	logger            primary.Logger
}

func NewSubmissionHandler(submissionService submission.ISubmissionService, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// RegisterRoutes registers the routes on a router already guarded by the
// JWT middleware.
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/submissions", h.ListMine).Methods(http.MethodGet)
	router.HandleFunc("/submissions/problem/{problemId}", h.ListMineForProblem).Methods(http.MethodGet)
	router.HandleFunc("/submissions/problem/{problemId}/count", h.CountForProblem).Methods(http.MethodGet)
}

func (h *SubmissionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, errs.Unauthorized)
		return
	}

	list, err := h.submissionService.ListForUser(r.Context(), userID)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, list, "Submissions fetched successfully")
}

func (h *SubmissionHandler) ListMineForProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, errs.Unauthorized)
		return
	}

	list, err := h.submissionService.ListForUserAndProblem(r.Context(), userID, mux.Vars(r)["problemId"])
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, list, "Submissions fetched successfully")
}

func (h *SubmissionHandler) CountForProblem(w http.ResponseWriter, r *http.Request) {
	count, err := h.submissionService.CountForProblem(r.Context(), mux.Vars(r)["problemId"])
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]int{"count": count}, "Submission count fetched successfully")
}
