package errs

import (
	"errors"
	"net/http"
)

var (
	ProblemNotFound          = errors.New("problem not found")
	CorruptTestcaseData      = errors.New("invalid testcases format in storage")
	InvalidInput             = errors.New("invalid input")
	UnsupportedLanguage      = errors.New("language is not currently supported")
	ReferenceSolutionMissing = errors.New("reference solution of this language does not exist")
)

// Judge failures.
var (
	JudgeUnavailable     = errors.New("judge is unavailable")
	InvalidJudgeResponse = errors.New("invalid response from judge")
	PollingFailed        = errors.New("error while polling judge submissions")
	PollTimeout          = errors.New("timed out waiting for judge submissions")
)

var (
	TooManyRequests = errors.New("too many evaluation requests")
	Unauthorized    = errors.New("unauthorized")
)

var statusByError = []struct {
	err    error
	status int
}{
	{ProblemNotFound, http.StatusNotFound},
	{InvalidInput, http.StatusBadRequest},
	{UnsupportedLanguage, http.StatusBadRequest},
	{Unauthorized, http.StatusUnauthorized},
	{TooManyRequests, http.StatusTooManyRequests},
	{CorruptTestcaseData, http.StatusInternalServerError},
	{ReferenceSolutionMissing, http.StatusInternalServerError},
	{PollTimeout, http.StatusGatewayTimeout},
	{JudgeUnavailable, http.StatusBadGateway},
	{InvalidJudgeResponse, http.StatusBadGateway},
	{PollingFailed, http.StatusBadGateway},
}

// HTTPStatus returns the status code a caller should see for err.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for _, s := range statusByError {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// Message returns the text shown to a client. Client errors keep their
// detail; server-side categories only expose the category message.
func Message(err error) string {
	for _, s := range statusByError {
		if errors.Is(err, s.err) {
			if s.status < http.StatusInternalServerError {
				return err.Error()
			}
			return s.err.Error()
		}
	}
	return InternalError.Error()
}
