package email

import (
	"log"
	"strings"

	"brandpulse/internal/config"
	"brandpulse/internal/models"
)

// Notifier sends email notifications for analysis events.
type Notifier struct {
	service    *Service
	cfg        *config.Config
	recipients []string
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config) *Notifier {
	var recipients []string
	for _, addr := range strings.Split(cfg.AlertRecipients, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}

	return &Notifier{
		service:    NewService(cfg),
		cfg:        cfg,
		recipients: recipients,
	}
}

// NotifyNegativeTone alerts the configured recipients that an analysis
// landed with negative overall sentiment.
func (n *Notifier) NotifyNegativeTone(summary *models.AnalysisSummary) {
	if !n.service.IsEnabled() || !n.cfg.AlertOnNegativeTone {
		return
	}
	if len(n.recipients) == 0 {
		log.Println("No alert recipients configured for negative tone notification")
		return
	}

	subject, body := NegativeToneAlert(summary)
	n.service.SendAsync(n.recipients, subject, body)
}

// SendDigest emails the periodic rollup of recent analyses. Does nothing
// when there is nothing to report.
func (n *Notifier) SendDigest(summaries []models.AnalysisSummary) {
	if !n.service.IsEnabled() || len(n.recipients) == 0 || len(summaries) == 0 {
		return
	}

	subject, body := DailyDigest(summaries)
	n.service.SendAsync(n.recipients, subject, body)
}
