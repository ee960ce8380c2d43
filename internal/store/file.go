package store

import (
	"encoding/csv"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"posobra-painel/internal/models"
)

// Colunas do arquivo, na ordem gravada. Na leitura as colunas são
// resolvidas pelo nome: coluna ausente vira valor vazio/padrão, nunca
// rejeição.
var columns = []string{
	"id",
	"id_pai",
	"codigo_sequencia",
	"Status",
	"Projeto",
	"Tipo de Serviço",
	"Data Início Contrapartida (Previsto)",
	"Data Término Contrapartida (Previsto)",
	"Valor Viabilidade",
	"Orçamento",
	"% Execução",
	"Gasto Real",
	"Modo de Medição",
	"Comentários",
}

const dateLayout = "2006-01-02"

func load(path string) ([]*models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}
	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []*models.Record
	for _, row := range rows[1:] {
		r := &models.Record{
			ID:           field(row, "id"),
			ParentID:     field(row, "id_pai"),
			SequenceCode: field(row, "codigo_sequencia"),
			Status:       models.RecordStatus(field(row, "Status")),
			Name:         field(row, "Projeto"),
			ServiceType:  field(row, "Tipo de Serviço"),
			PlannedStart: parseDate(field(row, "Data Início Contrapartida (Previsto)")),
			PlannedEnd:   parseDate(field(row, "Data Término Contrapartida (Previsto)")),
			Feasibility:  parseDecimal(field(row, "Valor Viabilidade")),
			Budget:       parseDecimal(field(row, "Orçamento")),
			ExecutionPct: parseDecimal(field(row, "% Execução")),
			ActualSpend:  parseDecimal(field(row, "Gasto Real")),
			Mode:         models.MeasurementMode(field(row, "Modo de Medição")),
			Comments:     field(row, "Comentários"),
		}
		// linhas editadas à mão podem vir sem id; geramos um na carga
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if !models.ValidStatus(r.Status) {
			r.Status = models.StatusPlanejamento
		}
		if !models.ValidMode(r.Mode) {
			r.Mode = models.ModePorExecucao
		}
		records = append(records, r)
	}
	return records, nil
}

func save(path string, records []*models.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(f)
	writer.Comma = ';'

	if err := writer.Write(columns); err != nil {
		f.Close()
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.ParentID,
			r.SequenceCode,
			string(r.Status),
			r.Name,
			r.ServiceType,
			formatDate(r.PlannedStart),
			formatDate(r.PlannedEnd),
			r.Feasibility.String(),
			r.Budget.String(),
			r.ExecutionPct.String(),
			r.ActualSpend.String(),
			string(r.Mode),
			r.Comments,
		}
		if err := writer.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// parseDate aceita ISO (como gravado) e DD/MM/YYYY (arquivos antigos).
// Valor irreconhecível vira data ausente.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{dateLayout, "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
