package sensor

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/LightD31/humidex-ha/internal/modules/sensor/controller"
	"github.com/LightD31/humidex-ha/internal/modules/sensor/repository"
	"github.com/LightD31/humidex-ha/internal/modules/sensor/service"
	"github.com/LightD31/humidex-ha/internal/mqtt"
)

// RegisterFeature wires the sensor module: repository on the shared DB,
// service on the MQTT client, HTTP routes on the mux. The MQTT handler
// is attached here, before the client connects.
func RegisterFeature(mux *http.ServeMux, db *sql.DB, client *mqtt.Client, statePrefix string, logger *slog.Logger) *service.Service {
	sensorRepository := repository.NewRepository(db)
	sensorService := service.NewService(sensorRepository, client, statePrefix, logger)
	sensorService.Register(client)
	sensorController := controller.NewSensorController(sensorRepository, sensorService)
	sensorController.RegisterRoutes(mux)
	return sensorService
}
