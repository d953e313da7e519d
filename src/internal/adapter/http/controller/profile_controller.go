package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
	"github.com/api-sage/cfc-rewards/src/internal/usecase/service_interfaces"
)

type ProfileController struct {
	auth      service_interfaces.AuthService
	dashboard service_interfaces.DashboardService
	kyc       service_interfaces.KYCService
}

func NewProfileController(
	auth service_interfaces.AuthService,
	dashboard service_interfaces.DashboardService,
	kyc service_interfaces.KYCService,
) *ProfileController {
	return &ProfileController{
		auth:      auth,
		dashboard: dashboard,
		kyc:       kyc,
	}
}

func (c *ProfileController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/me", wrap(c.getProfile, authMiddleware))
	mux.Handle("/me/dashboard", wrap(c.getDashboard, authMiddleware))
	mux.Handle("/me/referrals", wrap(c.listReferrals, authMiddleware))
	mux.Handle("/me/kyc", wrap(c.submitKYC, authMiddleware))
}

func (c *ProfileController) getProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.ProfileResponse](w, r, start, http.MethodGet) {
		return
	}
	claims, ok := requireClaims[models.ProfileResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.auth.EnsureProfile(r.Context(), claims)
	writeResult(w, r, start, http.StatusOK, response, err)
}

// getDashboard creates the profile row on first visit before reading it.
func (c *ProfileController) getDashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.DashboardResponse](w, r, start, http.MethodGet) {
		return
	}
	claims, ok := requireClaims[models.DashboardResponse](w, r, start)
	if !ok {
		return
	}

	if profile, err := c.auth.EnsureProfile(r.Context(), claims); err != nil {
		response := commons.Recast[models.DashboardResponse](profile)
		writeResult(w, r, start, http.StatusOK, response, err)
		return
	}

	response, err := c.dashboard.GetDashboard(r.Context(), claims.UserID())
	writeResult(w, r, start, http.StatusOK, response, err)
}

func (c *ProfileController) listReferrals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[[]models.ReferralResponse](w, r, start, http.MethodGet) {
		return
	}
	claims, ok := requireClaims[[]models.ReferralResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.dashboard.ListReferrals(r.Context(), claims.UserID())
	writeResult(w, r, start, http.StatusOK, response, err)
}

func (c *ProfileController) submitKYC(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.KYCResponse](w, r, start, http.MethodPost) {
		return
	}
	claims, ok := requireClaims[models.KYCResponse](w, r, start)
	if !ok {
		return
	}

	var req models.SubmitKYCRequest
	if !decodeRequest[models.KYCResponse](w, r, start, &req) {
		return
	}

	response, err := c.kyc.SubmitKYC(r.Context(), claims.UserID(), req)
	writeResult(w, r, start, http.StatusOK, response, err)
}
