package service_interfaces

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/identity"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
)

type AuthService interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (commons.Response[models.AuthResponse], error)
	SignIn(ctx context.Context, req models.SignInRequest) (commons.Response[models.AuthResponse], error)
	EnsureProfile(ctx context.Context, claims identity.Claims) (commons.Response[models.ProfileResponse], error)
}
