package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/usecase/service_interfaces"
)

type WalletController struct {
	service service_interfaces.WalletService
}

func NewWalletController(service service_interfaces.WalletService) *WalletController {
	return &WalletController{service: service}
}

func (c *WalletController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/me/wallet", wrap(c.getWallet, authMiddleware))
	mux.Handle("/me/withdrawals", wrap(c.requestWithdrawal, authMiddleware))
}

func (c *WalletController) getWallet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.WalletResponse](w, r, start, http.MethodGet) {
		return
	}
	claims, ok := requireClaims[models.WalletResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.GetWallet(r.Context(), claims.UserID())
	writeResult(w, r, start, http.StatusOK, response, err)
}

func (c *WalletController) requestWithdrawal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.WithdrawalResponse](w, r, start, http.MethodPost) {
		return
	}
	claims, ok := requireClaims[models.WithdrawalResponse](w, r, start)
	if !ok {
		return
	}

	var req models.WithdrawalRequest
	if !decodeRequest[models.WithdrawalResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.RequestWithdrawal(r.Context(), claims.UserID(), req)
	writeResult(w, r, start, http.StatusCreated, response, err)
}
