package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
	"github.com/api-sage/cfc-rewards/src/internal/usecase/service_interfaces"
)

type SubscriptionController struct {
	service service_interfaces.SubscriptionService
}

func NewSubscriptionController(service service_interfaces.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{service: service}
}

func (c *SubscriptionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/me/subscription", wrap(c.handle, authMiddleware))
}

func (c *SubscriptionController) handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.subscribe(w, r)
	case http.MethodGet:
		c.getSubscription(w, r)
	default:
		start := time.Now()
		logRequest(r, nil)
		w.Header().Set("Allow", "GET, POST")
		response := commons.ErrorResponse[models.SubscriptionResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
	}
}

func (c *SubscriptionController) subscribe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	claims, ok := requireClaims[models.SubscriptionResponse](w, r, start)
	if !ok {
		return
	}

	var req models.SubscribeRequest
	if !decodeRequest[models.SubscriptionResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.Subscribe(r.Context(), claims.UserID(), req)
	writeResult(w, r, start, http.StatusCreated, response, err)
}

func (c *SubscriptionController) getSubscription(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	claims, ok := requireClaims[models.SubscriptionResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.GetSubscription(r.Context(), claims.UserID())
	writeResult(w, r, start, http.StatusOK, response, err)
}
