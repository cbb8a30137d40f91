package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/usecase"
)

const (
	apiVersion  = "2.0"
	errorDomain = "athletes"
)

// envelope follows the Google JSON style guide: data on success, error
// otherwise.
type envelope struct {
	APIVersion string       `json:"apiVersion"`
	Data       any          `json:"data,omitempty"`
	Error      *errorObject `json:"error,omitempty"`
}

type errorObject struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Status  string        `json:"status"`
	Errors  []errorDetail `json:"errors,omitempty"`
}

type errorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	target     error
	httpStatus int
	reason     string
	status     string
}

// First match wins.
var errorClasses = []errorClass{
	{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
	{usecase.ErrNotFound, http.StatusNotFound, "notFound", "NOT_FOUND"},
	{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
	{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
	{usecase.ErrSourceUnavailable, http.StatusBadGateway, "sourceUnavailable", "UNAVAILABLE"},
	{usecase.ErrStructuralMismatch, http.StatusUnprocessableEntity, "structuralMismatch", "FAILED_PRECONDITION"},
	{entity.ErrDuplicateKey, http.StatusConflict, "duplicate", "ALREADY_EXISTS"},
}

var internalClass = errorClass{httpStatus: http.StatusInternalServerError, reason: "internalError", status: "INTERNAL"}

func classify(err error) errorClass {
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			return c
		}
	}
	return internalClass
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	c := classify(err)
	markSpanError(ctx, c.httpStatus, err)
	writeFailure(w, c, err.Error())
}

// writeInternalError hides the cause; used after a recovered panic.
func writeInternalError(w http.ResponseWriter) {
	writeFailure(w, internalClass, "internal server error")
}

func writeFailure(w http.ResponseWriter, c errorClass, msg string) {
	writeJSON(w, c.httpStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorObject{
			Code:    c.httpStatus,
			Message: msg,
			Status:  c.status,
			Errors:  []errorDetail{{Domain: errorDomain, Reason: c.reason, Message: msg}},
		},
	})
}
