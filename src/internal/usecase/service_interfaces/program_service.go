package service_interfaces

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
)

type ProgramService interface {
	GetProgram(ctx context.Context) (commons.Response[models.ProgramResponse], error)
}
