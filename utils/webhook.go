package utils

import (
	"academia/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyEvent posts a platform event to the configured webhook, if any.
// Fire-and-forget: failures are logged and never surfaced to the
// request that triggered them.
func NotifyEvent(event string, payload map[string]interface{}) {
	url := config.AppConfig.NotifyWebhookURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	body := map[string]interface{}{
		"event":     event,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"data":      payload,
	}

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(url)
	if err != nil {
		log.Printf("Error posting webhook event %s: %v", event, err)
		return
	}
	if resp.IsError() {
		log.Printf("Webhook event %s returned status %d", event, resp.StatusCode())
	}
}
