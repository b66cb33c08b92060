package worker

// danfe_worker.go
// Renders the XML and DANFE PDF for an issued invoice and writes the
// file paths back on the nota row. Rendering is offloaded so emission
// stays fast; a temporarily missing file only affects document download.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JanRocha/sencto-pdv/internal/infra"
	"github.com/JanRocha/sencto-pdv/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type DanfeWorker struct {
	repo        repository.FiscalRepository
	storagePath string
}

func NewDanfeWorker(repo repository.FiscalRepository, storagePath string) *DanfeWorker {
	return &DanfeWorker{repo: repo, storagePath: storagePath}
}

func (w *DanfeWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload DanfePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("danfe_worker: invalid payload")
		return nil
	}

	notaID, err := uuid.Parse(payload.NotaID)
	if err != nil {
		log.Error().Str("nota_id", payload.NotaID).Msg("danfe_worker: invalid nota_id")
		return nil
	}

	nota, err := w.repo.FindNotaByID(ctx, notaID)
	if err != nil {
		return fmt.Errorf("danfe_worker: nota %s not found: %w", payload.NotaID, err)
	}

	return withRetry(ctx, maxAttempts, func(attempt int) error {
		xmlPath, err := infra.GenerateNotaXML(nota, w.storagePath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Msg("danfe_worker: XML generation failed, retrying")
			return err
		}
		pdfPath, err := infra.GenerateDanfePDF(nota, w.storagePath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Msg("danfe_worker: DANFE generation failed, retrying")
			return err
		}

		nota.XMLPath = &xmlPath
		nota.DanfePath = &pdfPath
		if err := w.repo.UpdateNota(ctx, nota); err != nil {
			return err
		}
		log.Info().
			Str("nota_id", payload.NotaID).
			Str("danfe", pdfPath).
			Msg("danfe_worker: documents generated")
		return nil
	})
}
