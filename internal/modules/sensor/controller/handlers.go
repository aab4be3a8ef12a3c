package controller

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/LightD31/humidex-ha/internal/modules/sensor/repository"
	"github.com/LightD31/humidex-ha/internal/modules/sensor/types"
	"github.com/LightD31/humidex-ha/internal/utils"
)

func (c *sensorControllerImpl) handleList(w http.ResponseWriter, r *http.Request) {
	sensors, err := c.repository.GetSensors()
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sensors == nil {
		sensors = []types.Sensor{}
	}
	utils.WriteJSON(w, http.StatusOK, sensors)
}

type createSensorRequest struct {
	Name              string  `json:"name"`
	TemperatureEntity string  `json:"temperature_entity"`
	HumidityEntity    string  `json:"humidity_entity"`
	PressureEntity    *string `json:"pressure_entity,omitempty"`
}

func (req *createSensorRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("'name' is required")
	}
	if strings.TrimSpace(req.TemperatureEntity) == "" {
		return errors.New("'temperature_entity' is required")
	}
	if strings.TrimSpace(req.HumidityEntity) == "" {
		return errors.New("'humidity_entity' is required")
	}
	if req.PressureEntity != nil && strings.TrimSpace(*req.PressureEntity) == "" {
		return errors.New("'pressure_entity' must not be empty when present")
	}
	return nil
}

func (c *sensorControllerImpl) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createSensorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.validate(); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sensor := types.Sensor{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(req.Name),
		TemperatureEntity: strings.TrimSpace(req.TemperatureEntity),
		HumidityEntity:    strings.TrimSpace(req.HumidityEntity),
		PressureEntity:    req.PressureEntity,
	}
	if err := c.repository.InsertSensor(sensor); err != nil {
		slog.Error("insert sensor failed", "name", sensor.Name, "error", err)
		utils.WriteError(w, http.StatusConflict, "could not create sensor")
		return
	}

	// Publish the initial (typically unavailable) state right away so
	// subscribers see the sensor exists before its sources report.
	if _, err := c.service.Evaluate(sensor.ID); err != nil {
		slog.Warn("initial evaluation failed", "sensor_id", sensor.ID, "error", err)
	}

	utils.WriteJSON(w, http.StatusCreated, sensor)
}

func (c *sensorControllerImpl) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "missing sensor id")
		return
	}
	if err := c.repository.DeleteSensor(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "sensor not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	c.service.Forget(id)
	w.WriteHeader(http.StatusNoContent)
}

func (c *sensorControllerImpl) handleState(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "missing sensor id")
		return
	}
	state, err := c.service.CurrentState(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "sensor not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, state)
}
