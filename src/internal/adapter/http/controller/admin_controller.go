package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
	"github.com/api-sage/cfc-rewards/src/internal/usecase/service_interfaces"
)

type AdminController struct {
	withdrawals service_interfaces.WithdrawalService
	kyc         service_interfaces.KYCService
	ledger      service_interfaces.LedgerService
}

func NewAdminController(
	withdrawals service_interfaces.WithdrawalService,
	kyc service_interfaces.KYCService,
	ledger service_interfaces.LedgerService,
) *AdminController {
	return &AdminController{
		withdrawals: withdrawals,
		kyc:         kyc,
		ledger:      ledger,
	}
}

func (c *AdminController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/admin/withdrawals", wrap(c.listPendingWithdrawals, authMiddleware))
	mux.Handle("/admin/withdrawals/process", wrap(c.processWithdrawal, authMiddleware))
	mux.Handle("/admin/kyc/review", wrap(c.reviewKYC, authMiddleware))
	mux.Handle("/admin/ledger/reconcile", wrap(c.reconcile, authMiddleware))
}

func (c *AdminController) listPendingWithdrawals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[[]models.WithdrawalResponse](w, r, start, http.MethodGet) {
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response := commons.ErrorResponse[[]models.WithdrawalResponse]("validation failed", "limit must be a positive integer")
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, http.StatusBadRequest, response, start)
			return
		}
		limit = parsed
	}

	response, err := c.withdrawals.ListPendingWithdrawals(r.Context(), limit)
	writeResult(w, r, start, http.StatusOK, response, err)
}

func (c *AdminController) processWithdrawal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.WithdrawalResponse](w, r, start, http.MethodPost) {
		return
	}

	var req models.ProcessWithdrawalRequest
	if !decodeRequest[models.WithdrawalResponse](w, r, start, &req) {
		return
	}

	response, err := c.withdrawals.ProcessWithdrawal(r.Context(), req)
	writeResult(w, r, start, http.StatusOK, response, err)
}

func (c *AdminController) reviewKYC(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.KYCResponse](w, r, start, http.MethodPost) {
		return
	}

	var req models.ReviewKYCRequest
	if !decodeRequest[models.KYCResponse](w, r, start, &req) {
		return
	}

	response, err := c.kyc.ReviewKYC(r.Context(), req)
	writeResult(w, r, start, http.StatusOK, response, err)
}

func (c *AdminController) reconcile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.ReconcileResponse](w, r, start, http.MethodGet) {
		return
	}

	response, err := c.ledger.Reconcile(r.Context(), strings.TrimSpace(r.URL.Query().Get("userId")))
	writeResult(w, r, start, http.StatusOK, response, err)
}
