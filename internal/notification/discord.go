package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/forest-guardian/landcover-samples/internal/log"
	"github.com/forest-guardian/landcover-samples/internal/properties"
	"go.uber.org/zap"
)

const logTag = "notification:"

const (
	colorRed   = 16711680
	colorGreen = 65280
)

var client = &http.Client{Timeout: 10 * time.Second}

type DiscordMessage struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

type DiscordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

func send(url string, embed DiscordEmbed) error {
	if url == "" {
		log.Debug(logTag+"no webhook configured", zap.String("title", embed.Title))
		return nil
	}
	payload, err := json.Marshal(DiscordMessage{Embeds: []DiscordEmbed{embed}})
	if err != nil {
		return err
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send Discord notification, status code: %d", resp.StatusCode)
	}
	return nil
}

// SendDiscordErrorNotification posts to DISCORD_ERROR_NOTIFICATION_URL. It
// does nothing when the variable is unset.
func SendDiscordErrorNotification(errorMessage string) error {
	return send(properties.DiscordErrorNotificationUrl(), DiscordEmbed{
		Title:       "🚨 Landcover samples error",
		Description: errorMessage,
		Color:       colorRed,
	})
}

func SendDiscordSuccessNotification(successMessage string) error {
	return send(properties.DiscordSuccessNotificationUrl(), DiscordEmbed{
		Title:       "✅ Landcover samples",
		Description: successMessage,
		Color:       colorGreen,
	})
}
