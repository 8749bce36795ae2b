package sender

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"mdt/pkg/tools"

	"github.com/bytedance/sonic"
)

const (
	discordColorNormal = 0x1F6FEB
	discordColorUrgent = 0xD73A49
)

type (
	// DiscordSender posts to a Discord channel webhook.
	DiscordSender struct {
		Hook     string
		Username string
	}

	discordPayload struct {
		Username string         `json:"username,omitempty"`
		Embeds   []discordEmbed `json:"embeds"`
	}

	discordEmbed struct {
		Title       string         `json:"title"`
		Description string         `json:"description,omitempty"`
		Color       int            `json:"color"`
		Fields      []discordField `json:"fields,omitempty"`
		Timestamp   string         `json:"timestamp"`
	}

	discordField struct {
		Name   string `json:"name"`
		Value  string `json:"value"`
		Inline bool   `json:"inline"`
	}
)

func NewDiscordSender(hook string) SendInter {
	return &DiscordSender{
		Hook:     hook,
		Username: "MDT Centrale",
	}
}

func (d *DiscordSender) Name() string {
	return "discord"
}

func (d *DiscordSender) Send(msg Message) error {
	body, err := sonic.Marshal(d.payload(msg, time.Now()))
	if err != nil {
		return err
	}

	res, err := tools.Post(nil, d.Hook, bytes.NewReader(body), 10)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusNoContent {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("discord answered %d: %s", res.StatusCode, string(detail))
	}
	return nil
}

func (d *DiscordSender) payload(msg Message, now time.Time) discordPayload {
	embed := discordEmbed{
		Title:       msg.Title,
		Description: msg.Content,
		Color:       discordColorNormal,
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
	if msg.Urgent {
		embed.Color = discordColorUrgent
	}
	for _, f := range msg.Fields {
		if f.Value == "" {
			continue
		}
		embed.Fields = append(embed.Fields, discordField{Name: f.Name, Value: f.Value, Inline: true})
	}

	return discordPayload{
		Username: d.Username,
		Embeds:   []discordEmbed{embed},
	}
}
