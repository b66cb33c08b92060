package worker

// auditoria_worker.go
// Persists audit trail entries dequeued from QueueAuditoria. The write is
// retried with backoff; jobs that still fail land in the DLQ, never back
// in the caller's transaction.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JanRocha/sencto-pdv/internal/model"
	"github.com/JanRocha/sencto-pdv/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type AuditoriaWorker struct {
	repo repository.AuditoriaRepository
}

func NewAuditoriaWorker(repo repository.AuditoriaRepository) *AuditoriaWorker {
	return &AuditoriaWorker{repo: repo}
}

func (w *AuditoriaWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload AuditoriaPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("auditoria_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}

	colaboradorID, err := uuid.Parse(payload.ColaboradorID)
	if err != nil {
		log.Error().Str("colaborador_id", payload.ColaboradorID).Msg("auditoria_worker: invalid colaborador_id")
		return nil
	}

	reg := &model.RegistroAuditoria{
		ColaboradorID: colaboradorID,
		Acao:          payload.Acao,
		TipoAlvo:      payload.TipoAlvo,
		AlvoID:        payload.AlvoID,
	}
	if len(payload.Detalhes) > 0 {
		if data, err := json.Marshal(payload.Detalhes); err == nil {
			s := string(data)
			reg.Detalhes = &s
		}
	}
	if payload.EnderecoIP != "" {
		ip := payload.EnderecoIP
		reg.EnderecoIP = &ip
	}

	return withRetry(ctx, maxAttempts, func(attempt int) error {
		if err := w.repo.Create(ctx, reg); err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("acao", payload.Acao).
				Msg("auditoria_worker: persist failed, retrying")
			return fmt.Errorf("persist audit entry: %w", err)
		}
		return nil
	})
}
