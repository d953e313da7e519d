package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/usecase/service_interfaces"
)

type AuthController struct {
	service service_interfaces.AuthService
}

func NewAuthController(service service_interfaces.AuthService) *AuthController {
	return &AuthController{service: service}
}

// RegisterRoutes mounts the public auth endpoints behind the given limiter.
func (c *AuthController) RegisterRoutes(mux *http.ServeMux, rateLimit func(http.Handler) http.Handler) {
	mux.Handle("/auth/signup", wrap(c.signUp, rateLimit))
	mux.Handle("/auth/signin", wrap(c.signIn, rateLimit))
}

func (c *AuthController) signUp(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.AuthResponse](w, r, start, http.MethodPost) {
		return
	}

	var req models.SignUpRequest
	if !decodeRequest[models.AuthResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.SignUp(r.Context(), req)
	writeResult(w, r, start, http.StatusCreated, response, err)
}

func (c *AuthController) signIn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.AuthResponse](w, r, start, http.MethodPost) {
		return
	}

	var req models.SignInRequest
	if !decodeRequest[models.AuthResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.SignIn(r.Context(), req)
	writeResult(w, r, start, http.StatusOK, response, err)
}
