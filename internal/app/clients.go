package app

import (
	"fmt"

	"github.com/evelahealth/evela-backend/internal/clients/openai"
	"github.com/evelahealth/evela-backend/internal/clients/redis"
	"github.com/evelahealth/evela-backend/internal/clients/twilio"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type Clients struct {
	OpenAI    openai.Client
	Twilio    twilio.Client
	StatusBus redis.StatusBus
}

// wireClients connects the external services. The model client is required;
// SMS and the status bus are optional and stay nil when not configured.
func wireClients(log *logger.Logger) (Clients, error) {
	var out Clients

	if !openai.IsConfigured() {
		return out, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	aiClient, err := openai.NewClient(log)
	if err != nil {
		return out, fmt.Errorf("init openai client: %w", err)
	}
	out.OpenAI = aiClient

	if twilio.IsConfigured() {
		sms, err := twilio.NewFromEnv(log)
		if err != nil {
			log.Warn("Twilio init failed, SOS SMS disabled", "error", err)
		} else {
			out.Twilio = sms
		}
	} else {
		log.Warn("Twilio not configured, SOS SMS disabled")
	}

	if redis.IsConfigured() {
		bus, err := redis.NewStatusBus(log)
		if err != nil {
			log.Warn("Redis init failed, status events disabled", "error", err)
		} else {
			out.StatusBus = bus
		}
	} else {
		log.Info("Redis not configured, status events disabled")
	}

	return out, nil
}
