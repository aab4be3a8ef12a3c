package controller

import (
	"net/http"

	"github.com/LightD31/humidex-ha/internal/modules/sensor/repository"
	"github.com/LightD31/humidex-ha/internal/modules/sensor/service"
)

type SensorController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type sensorControllerImpl struct {
	repository repository.SensorRepository
	service    *service.Service
}

func NewSensorController(repo repository.SensorRepository, svc *service.Service) SensorController {
	return &sensorControllerImpl{repository: repo, service: svc}
}

func (c *sensorControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/sensors", c.handleList)
	mux.HandleFunc("POST /api/v1/sensors", c.handleCreate)
	mux.HandleFunc("DELETE /api/v1/sensors/{id}", c.handleDelete)
	mux.HandleFunc("GET /api/v1/sensors/{id}/state", c.handleState)
}
