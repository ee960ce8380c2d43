package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecordStatus string

const (
	StatusNaoIniciado  RecordStatus = "Não Iniciado"
	StatusPlanejamento RecordStatus = "Planejamento"
	StatusEmAndamento  RecordStatus = "Em Andamento"
	StatusConcluido    RecordStatus = "Concluído"
)

func ValidStatus(s RecordStatus) bool {
	switch s {
	case StatusNaoIniciado, StatusPlanejamento, StatusEmAndamento, StatusConcluido:
		return true
	}
	return false
}

// Record é uma etapa de contrapartida (registro de topo) ou uma subetapa.
// O vínculo pai/filho usa o id imutável da etapa, nunca o nome exibido;
// codigo_sequencia é derivado da posição e serve só para exibição.
type Record struct {
	ID           string
	ParentID     string // vazio para etapas
	SequenceCode string
	Status       RecordStatus
	Name         string // coluna "Projeto"
	ServiceType  string
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	Feasibility  decimal.Decimal // "Valor Viabilidade", usado só nas etapas
	Budget       decimal.Decimal
	ExecutionPct decimal.Decimal
	ActualSpend  decimal.Decimal
	Mode         MeasurementMode
	Comments     string
}

func (r *Record) IsProject() bool { return r.ParentID == "" }
