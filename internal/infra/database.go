package infra

import (
	"fmt"

	"github.com/JanRocha/sencto-pdv/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies the idempotent SQL patches
// that GORM cannot express (partial unique indexes, CHECK constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Surface unique violations as gorm.ErrDuplicatedKey so services
		// can map races on partial unique indexes to conflict errors.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Also used by the
// integration tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Colaborador{},
		&model.Categoria{},
		&model.Produto{},
		&model.SessaoCaixa{},
		&model.MovimentacaoCaixa{},
		&model.Venda{},
		&model.VendaItem{},
		&model.ConfigFiscal{},
		&model.NotaFiscal{},
		&model.CancelamentoFiscal{},
		&model.CertificadoDigital{},
		&model.PacoteFesta{},
		&model.Festa{},
		&model.Tutor{},
		&model.Crianca{},
		&model.Visita{},
		&model.RegistroAuditoria{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running on an
// already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// One ABERTO session per operator. The service layer checks first,
		// but only this index makes concurrent opens safe.
		{"partial unique index: one open till per operator", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_sessao_aberta_por_operador') THEN
    CREATE UNIQUE INDEX uni_sessao_aberta_por_operador
        ON sessoes_caixa (operador_id)
        WHERE status = 'ABERTO';
  END IF;
END $$`},
		// Stock can never go negative even if a future code path skips the
		// guarded decrement.
		{"check constraint: non-negative stock", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_produtos_estoque_nao_negativo') THEN
    ALTER TABLE produtos
      ADD CONSTRAINT chk_produtos_estoque_nao_negativo CHECK (estoque >= 0);
  END IF;
END $$`},
		// One non-cancelled booking per party slot.
		{"partial unique index: one booking per party slot", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_festa_slot') THEN
    CREATE UNIQUE INDEX uni_festa_slot
        ON festas (data, horario)
        WHERE status <> 'CANCELADA';
  END IF;
END $$`},
		// One open visit per child.
		{"partial unique index: one open visit per child", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_visita_aberta_por_crianca') THEN
    CREATE UNIQUE INDEX uni_visita_aberta_por_crianca
        ON visitas (crianca_id)
        WHERE status = 'ABERTA';
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
