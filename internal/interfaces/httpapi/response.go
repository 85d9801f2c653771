package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/npl-fantasy/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "npl-fantasy"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// selectionReasons maps each rejected-squad kind to the reason clients
// switch on. Order matters only for readability, kinds are disjoint.
var selectionReasons = []struct {
	err    error
	reason string
}{
	{err: fantasy.ErrInvalidSquadSize, reason: "squadSize"},
	{err: fantasy.ErrMissingCaptaincy, reason: "missingCaptaincy"},
	{err: fantasy.ErrDuplicateCaptaincy, reason: "duplicateCaptaincy"},
	{err: fantasy.ErrCaptaincyNotInSquad, reason: "captaincyNotInSquad"},
	{err: fantasy.ErrDuplicatePlayerInSquad, reason: "duplicatePlayer"},
	{err: fantasy.ErrExceededTeamLimit, reason: "teamLimit"},
	{err: fantasy.ErrExceededRoleLimit, reason: "roleLimit"},
	{err: fantasy.ErrExceededBudget, reason: "budgetExceeded"},
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","error":{"code":500,"message":"encode response failed","status":"INTERNAL"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = "internal server error"
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	if crerr.Is(err, fantasy.ErrInvalidSelection) {
		for _, candidate := range selectionReasons {
			if crerr.Is(err, candidate.err) {
				return mappedError{
					HTTPStatus: http.StatusBadRequest,
					Reason:     candidate.reason,
					Status:     "INVALID_ARGUMENT",
				}
			}
		}
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidSquad",
			Status:     "INVALID_ARGUMENT",
		}
	}

	switch {
	case crerr.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case crerr.Is(err, usecase.ErrConflict):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "conflict",
			Status:     "ALREADY_EXISTS",
		}
	case crerr.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case crerr.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case crerr.Is(err, usecase.ErrComputation):
		return mappedError{
			HTTPStatus: http.StatusUnprocessableEntity,
			Reason:     "computationFailed",
			Status:     "FAILED_PRECONDITION",
		}
	case crerr.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
