package worker

// email_worker.go
// Processes email jobs from QueueEmail: party booking confirmations and
// invoice documents, sent via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JanRocha/sencto-pdv/internal/infra"

	"github.com/rs/zerolog/log"
)

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	if payload.To == "" {
		log.Warn().Msg("email_worker: empty recipient — skipping")
		return nil
	}

	err := withRetry(ctx, maxAttempts, func(attempt int) error {
		if err := w.mailer.Send(payload.To, payload.Subject, payload.Body, payload.PDFPath); err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("to", payload.To).
				Msg("email_worker: send failed, retrying")
			return fmt.Errorf("send email: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Str("to", payload.To).Msg("email_worker: email sent")
	return nil
}
