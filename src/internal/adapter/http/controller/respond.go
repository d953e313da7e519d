package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/middleware"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/identity"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/payment"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor maps a service outcome onto an HTTP status.
func statusFor(message string, err error) int {
	switch {
	case message == "validation failed",
		errors.Is(err, domain.ErrInvalidReferralCode),
		errors.Is(err, domain.ErrSelfReferral),
		errors.Is(err, domain.ErrReferralCycle):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, identity.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrWithdrawalNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateRecord),
		errors.Is(err, domain.ErrAlreadySubscribed),
		errors.Is(err, domain.ErrInvalidStateTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, payment.ErrGatewayUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeResult[T any](w http.ResponseWriter, r *http.Request, start time.Time, successStatus int, response commons.Response[T], err error) {
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, successStatus, response)
	logResponse(r, successStatus, response, start)
}

func allowMethod[T any](w http.ResponseWriter, r *http.Request, start time.Time, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	response := commons.ErrorResponse[T]("method not allowed")
	writeJSON(w, http.StatusMethodNotAllowed, response)
	logResponse(r, http.StatusMethodNotAllowed, response, start)
	return false
}

// decodeRequest reads the JSON body into dst and runs its Validate method when present.
func decodeRequest[T any](w http.ResponseWriter, r *http.Request, start time.Time, dst any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[T]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return false
	}
	logRequest(r, dst)

	if v, ok := dst.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			logError(r, err, nil)
			response := commons.ErrorResponse[T]("validation failed", err.Error())
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, http.StatusBadRequest, response, start)
			return false
		}
	}

	return true
}

func requireClaims[T any](w http.ResponseWriter, r *http.Request, start time.Time) (identity.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.UserID() == "" {
		response := commons.ErrorResponse[T]("unauthorized")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return identity.Claims{}, false
	}
	return claims, true
}

func wrap(handler http.HandlerFunc, mw func(http.Handler) http.Handler) http.Handler {
	if mw == nil {
		return handler
	}
	return mw(handler)
}
