// Package export monta a planilha de versão: uma pasta de trabalho xlsx
// com os registros crus, o resumo financeiro e as duas visões de
// desembolso. Gerada sob demanda para download, nunca toca o arquivo de
// dados vivo.
package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"posobra-painel/internal/disbursement"
	"posobra-painel/internal/models"
)

const (
	sheetRecords      = "Registros"
	sheetFinancial    = "Resumo Financeiro"
	sheetConsolidated = "Desembolso Consolidado"
	sheetBreakdown    = "Desembolso por Projeto"
)

var cem = decimal.NewFromInt(100)

// BuildWorkbook produz a pasta de trabalho com as quatro abas a partir da
// tabela atual e dos rateios de desembolso da sessão.
func BuildWorkbook(records []*models.Record, schedules *disbursement.Table) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetRecords); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetFinancial, sheetConsolidated, sheetBreakdown} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	if err := writeRecords(f, records); err != nil {
		return nil, err
	}
	if err := writeFinancialSummary(f, records); err != nil {
		return nil, err
	}

	var projects []disbursement.ProjectSchedule
	for _, r := range records {
		if !r.IsProject() {
			continue
		}
		projects = append(projects, disbursement.ProjectSchedule{
			ID:      r.ID,
			Name:    r.Name,
			Budget:  r.Budget,
			Entries: schedules.ScheduleFor(r),
		})
	}
	if err := writeDisbursement(f, disbursement.Consolidate(projects)); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRecords(f *excelize.File, records []*models.Record) error {
	header := []any{
		"Código", "Projeto", "Tipo de Serviço", "Status",
		"Data Início Contrapartida (Previsto)", "Data Término Contrapartida (Previsto)",
		"Valor Viabilidade", "Orçamento", "% Execução", "Gasto Real",
		"Modo de Medição", "Comentários",
	}
	if err := f.SetSheetRow(sheetRecords, "A1", &header); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{
			r.SequenceCode, r.Name, r.ServiceType, string(r.Status),
			formatDate(r), formatEndDate(r),
			r.Feasibility.InexactFloat64(), r.Budget.InexactFloat64(),
			r.ExecutionPct.InexactFloat64(), r.ActualSpend.InexactFloat64(),
			string(r.Mode), r.Comments,
		}
		if err := f.SetSheetRow(sheetRecords, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeFinancialSummary(f *excelize.File, records []*models.Record) error {
	header := []any{"Código", "Projeto", "Orçamento", "Gasto Real", "Saldo", "% Gasto"}
	if err := f.SetSheetRow(sheetFinancial, "A1", &header); err != nil {
		return err
	}
	for i, r := range records {
		spentPct := decimal.Zero
		if !r.Budget.IsZero() {
			spentPct = r.ActualSpend.Div(r.Budget).Mul(cem).Round(2)
		}
		row := []any{
			r.SequenceCode, r.Name,
			r.Budget.InexactFloat64(), r.ActualSpend.InexactFloat64(),
			r.Budget.Sub(r.ActualSpend).InexactFloat64(),
			spentPct.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheetFinancial, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeDisbursement(f *excelize.File, c disbursement.Consolidated) error {
	header := []any{"Mês", "Total"}
	if err := f.SetSheetRow(sheetConsolidated, "A1", &header); err != nil {
		return err
	}
	for i, t := range c.Totals {
		row := []any{t.Month, t.Total.InexactFloat64()}
		if err := f.SetSheetRow(sheetConsolidated, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	header = []any{"Mês", "Projeto", "Valor", "% do Mês"}
	if err := f.SetSheetRow(sheetBreakdown, "A1", &header); err != nil {
		return err
	}
	for i, s := range c.Breakdown {
		row := []any{s.Month, s.Project, s.Amount.InexactFloat64(), s.SharePct.InexactFloat64()}
		if err := f.SetSheetRow(sheetBreakdown, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func formatDate(r *models.Record) string {
	if r.PlannedStart == nil {
		return ""
	}
	return r.PlannedStart.Format("02/01/2006")
}

func formatEndDate(r *models.Record) string {
	if r.PlannedEnd == nil {
		return ""
	}
	return r.PlannedEnd.Format("02/01/2006")
}
