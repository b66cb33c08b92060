package infra

// pdf.go — DANFE and XML rendering for issued invoices using go-pdf/fpdf.
// The documents are simplified representations: layout follows the DANFE
// convention (header, parties, totals) but no digital signature or
// authorization protocol is embedded. Files land under
// storagePath/{danfe,xml}_{tipo}_{numero}.{pdf,xml}.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/JanRocha/sencto-pdv/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateDanfePDF renders the DANFE for an authorized invoice and
// returns the absolute file path.
func GenerateDanfePDF(nota *model.NotaFiscal, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("danfe_%s_%d.pdf", nota.Tipo, nota.Numero)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "SANCTO PDV", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Documento Auxiliar da Nota Fiscal Eletrônica", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Invoice identity ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6,
		fmt.Sprintf("%s nº %d — Série %d", nota.Tipo, nota.Numero, nota.Serie), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Emissão: "+nota.EmitidaEm.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Status: "+nota.Status, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Customer ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "Destinatário", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, nota.NomeCliente, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Documento: "+nota.DocumentoCliente, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW*0.6, 7, "VALOR TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 7, "R$ "+nota.ValorTotal.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, "Operador: "+nota.NomeOperador, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Documento emitido em ambiente de homologação — sem valor fiscal", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateNotaXML writes a minimal NFe-shaped XML document for the
// invoice and returns the absolute file path.
func GenerateNotaXML(nota *model.NotaFiscal, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("xml: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("nota_%s_%d.xml", nota.Tipo, nota.Numero)
	filePath := filepath.Join(storagePath, fileName)

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<notaFiscal tipo=%q>
  <numero>%d</numero>
  <serie>%d</serie>
  <emissao>%s</emissao>
  <destinatario>
    <nome>%s</nome>
    <documento>%s</documento>
  </destinatario>
  <valorTotal>%s</valorTotal>
  <status>%s</status>
</notaFiscal>
`,
		nota.Tipo, nota.Numero, nota.Serie,
		nota.EmitidaEm.Format("2006-01-02T15:04:05-07:00"),
		nota.NomeCliente, nota.DocumentoCliente,
		nota.ValorTotal.StringFixed(2), nota.Status)

	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("xml: write file: %w", err)
	}
	return filePath, nil
}
