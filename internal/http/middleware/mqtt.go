package middleware

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// Displays subscribe to display/<id>/commands and refresh their loop when a
// campaign affecting their group is committed or removed. Publishing is
// best-effort: a display that is offline catches up on its next poll.

var (
	mqttClient mqtt.Client
	brokerURL  = "tcp://0.0.0.0:1883"
)

// SetBrokerURL configures the MQTT broker address before InitMQTT.
func SetBrokerURL(url string) {
	brokerURL = url
}

// InitMQTT connects the server's publisher client.
func InitMQTT(clientName string) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Error().Err(err).Msg("MQTT connection lost")
	}

	mqttClient = mqtt.NewClient(opts)
	if token := mqttClient.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return nil
}

type refreshEvent struct {
	Event      string `json:"event"`
	CampaignID string `json:"campaign_id"`
}

// NotifyDisplays tells each display that its playlist changed because of the
// campaign. Failures are logged per display and never surfaced to the
// request that triggered the change.
func NotifyDisplays(displayIDs []string, event, campaignID string) {
	if mqttClient == nil {
		return
	}
	payload, err := json.Marshal(refreshEvent{Event: event, CampaignID: campaignID})
	if err != nil {
		return
	}
	for _, id := range displayIDs {
		topic := fmt.Sprintf("display/%s/commands", id)
		token := mqttClient.Publish(topic, 1, false, payload)
		token.Wait()
		if token.Error() != nil {
			log.Error().Err(token.Error()).Str("display_id", id).Msg("failed to notify display")
		}
	}
}

// CleanupMQTT disconnects the publisher client.
func CleanupMQTT() {
	if mqttClient != nil {
		mqttClient.Disconnect(250)
		mqttClient = nil
	}
}
