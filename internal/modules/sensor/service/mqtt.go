package service

import "github.com/LightD31/humidex-ha/internal/mqtt"

// Register attaches the service to the MQTT source subscription. Must
// run before the client connects so no queued message is missed.
func (s *Service) Register(subscriber mqtt.SourceSubscriber) {
	subscriber.SetMessageHandler(s.HandleSourceState)
}
