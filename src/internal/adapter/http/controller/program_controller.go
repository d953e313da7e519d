package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
	"github.com/api-sage/cfc-rewards/src/internal/usecase/service_interfaces"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type ProgramController struct {
	service service_interfaces.ProgramService
	db      Pinger
}

func NewProgramController(service service_interfaces.ProgramService, db Pinger) *ProgramController {
	return &ProgramController{service: service, db: db}
}

// RegisterRoutes mounts the public endpoints; they take no middleware.
func (c *ProgramController) RegisterRoutes(mux *http.ServeMux, _ func(http.Handler) http.Handler) {
	mux.HandleFunc("/program", c.getProgram)
	mux.HandleFunc("/healthz", c.health)
}

func (c *ProgramController) getProgram(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.ProgramResponse](w, r, start, http.MethodGet) {
		return
	}

	response, err := c.service.GetProgram(r.Context())
	writeResult(w, r, start, http.StatusOK, response, err)
}

func (c *ProgramController) health(w http.ResponseWriter, r *http.Request) {
	if c.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := c.db.PingContext(ctx); err != nil {
			logError(r, err, nil)
			writeJSON(w, http.StatusServiceUnavailable, commons.ErrorResponse[HealthResponse]("database unavailable"))
			return
		}
	}

	database := "unchecked"
	if c.db != nil {
		database = "up"
	}
	writeJSON(w, http.StatusOK, commons.SuccessResponse("ok", HealthResponse{Status: "ok", Database: database}))
}
