package service_interfaces

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
)

type KYCService interface {
	SubmitKYC(ctx context.Context, userID string, req models.SubmitKYCRequest) (commons.Response[models.KYCResponse], error)
	ReviewKYC(ctx context.Context, req models.ReviewKYCRequest) (commons.Response[models.KYCResponse], error)
}
