package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/pkg/logger"
	"github.com/saandeep/portfolio-api/pkg/mail"
	"github.com/saandeep/portfolio-api/pkg/metrics"
)

// clickMilestone is the interval at which project click notifications fire.
const clickMilestone = 10

// DiscordConfig configures the Discord webhook channel.
type DiscordConfig struct {
	Enabled    bool
	WebhookURL string
}

// Config wires the outbound channels for the notifier.
type Config struct {
	Mailer   mail.Mailer
	OwnerTo  string
	Discord  DiscordConfig
	HTTPDoer *http.Client
}

// Notifier fans site events out to email and Discord. Delivery is best
// effort: failures are logged and never surface to the request path.
type Notifier struct {
	mailer  mail.Mailer
	ownerTo string
	discord DiscordConfig
	client  *http.Client
	log     *zap.Logger
}

// New constructs a Notifier from the supplied channels.
func New(cfg Config) *Notifier {
	client := cfg.HTTPDoer
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Notifier{
		mailer:  cfg.Mailer,
		ownerTo: strings.TrimSpace(cfg.OwnerTo),
		discord: cfg.Discord,
		client:  client,
		log:     logger.WithModule("notify"),
	}
}

// ContactReceived notifies the site owner about a new contact message.
func (n *Notifier) ContactReceived(ctx context.Context, msg *models.ContactMessage) {
	subject := fmt.Sprintf("New contact message from %s", msg.Name)
	body := fmt.Sprintf("From: %s <%s>\r\n\r\n%s", msg.Name, msg.Email, msg.Message)
	n.deliver(ctx, subject, body, fmt.Sprintf("📬 **%s** (%s) sent a message:\n>>> %s", msg.Name, msg.Email, truncate(msg.Message, 500)))
}

// TestimonialReceived notifies the owner that a testimonial awaits approval.
func (n *Notifier) TestimonialReceived(ctx context.Context, t *models.Testimonial) {
	subject := fmt.Sprintf("New testimonial from %s", t.Name)
	body := fmt.Sprintf("%s (%s, %s) rated %d/5:\r\n\r\n%s", t.Name, t.Role, t.Company, t.Rating, t.Message)
	n.deliver(ctx, subject, body, fmt.Sprintf("⭐ New testimonial from **%s** (%d/5), awaiting approval", t.Name, t.Rating))
}

// BlogPublished announces a newly published post on Discord.
func (n *Notifier) BlogPublished(ctx context.Context, post *models.BlogPost) {
	n.sendDiscord(ctx, fmt.Sprintf("📝 Published: **%s**\n%s", post.Title, truncate(post.Excerpt, 300)))
}

// ProjectClicked reports project click milestones. Only every tenth click
// produces a notification to keep the channel quiet.
func (n *Notifier) ProjectClicked(ctx context.Context, project *models.Project, clicks int64) {
	if clicks <= 0 || clicks%clickMilestone != 0 {
		return
	}
	n.sendDiscord(ctx, fmt.Sprintf("🚀 **%s** reached %d clicks", project.Title, clicks))
}

// SendReply emails a visitor directly. Unlike the owner notifications this
// reports failure, because the caller needs to know the reply did not go out.
func (n *Notifier) SendReply(ctx context.Context, to, subject, body string) error {
	if n.mailer == nil {
		return mail.ErrSMTPDisabled
	}

	err := n.mailer.Send(ctx, mail.Message{
		To:      []string{to},
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		if !errors.Is(err, mail.ErrSMTPDisabled) {
			metrics.NotificationsSent.WithLabelValues("email", "error").Inc()
		}
		return err
	}
	metrics.NotificationsSent.WithLabelValues("email", "ok").Inc()
	return nil
}

func (n *Notifier) deliver(ctx context.Context, subject, body, discordText string) {
	n.sendMail(ctx, subject, body)
	n.sendDiscord(ctx, discordText)
}

func (n *Notifier) sendMail(ctx context.Context, subject, body string) {
	if n.mailer == nil || n.ownerTo == "" {
		return
	}

	err := n.mailer.Send(ctx, mail.Message{
		To:      []string{n.ownerTo},
		Subject: subject,
		Body:    body,
	})
	switch {
	case errors.Is(err, mail.ErrSMTPDisabled):
		return
	case err != nil:
		n.log.Warn("email delivery failed", zap.String("subject", subject), zap.Error(err))
		metrics.NotificationsSent.WithLabelValues("email", "error").Inc()
	default:
		metrics.NotificationsSent.WithLabelValues("email", "ok").Inc()
	}
}

func (n *Notifier) sendDiscord(ctx context.Context, content string) {
	if !n.discord.Enabled || n.discord.WebhookURL == "" || content == "" {
		return
	}

	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.discord.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		n.log.Warn("discord request failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Warn("discord delivery failed", zap.Error(err))
		metrics.NotificationsSent.WithLabelValues("discord", "error").Inc()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.log.Warn("discord webhook rejected", zap.Int("status", resp.StatusCode))
		metrics.NotificationsSent.WithLabelValues("discord", "error").Inc()
		return
	}
	metrics.NotificationsSent.WithLabelValues("discord", "ok").Inc()
}

// truncate clips to max runes so a cut never splits a UTF-8 sequence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
