// Package session controla a edição de registros: um único registro em
// edição por vez, com ciclo iniciar → salvar/cancelar. O estado vive na
// struct da aplicação, não em variável global, e só é alcançado com o
// modo de edição da sessão autenticada ligado.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"posobra-painel/internal/models"
	"posobra-painel/internal/store"
)

var (
	ErrNotEditing    = errors.New("nenhum registro em edição")
	ErrWrongRecord   = errors.New("registro diferente do que está em edição")
	ErrInvalidDate   = errors.New("data inválida, utilize o formato DD/MM/YYYY")
	ErrInvalidStatus = errors.New("status inválido")
	ErrInvalidMode   = errors.New("modo de medição inválido")
)

const dateLayout = "02/01/2006"

type Edit struct {
	mu       sync.Mutex
	editing  bool
	recordID string
}

func NewEdit() *Edit { return &Edit{} }

// StartEdit entra em edição do registro dado, de qualquer estado —
// inclusive trocando um registro em edição por outro.
func (e *Edit) StartEdit(st *store.Store, id string) error {
	if _, ok := st.Get(id); !ok {
		return store.ErrNotFound
	}
	e.mu.Lock()
	e.editing = true
	e.recordID = id
	e.mu.Unlock()
	return nil
}

// Editing devolve o registro em edição, se houver.
func (e *Edit) Editing() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.recordID, e.editing
}

// Cancel volta para o estado ocioso sem gravar nada.
func (e *Edit) Cancel() {
	e.mu.Lock()
	e.editing = false
	e.recordID = ""
	e.mu.Unlock()
}

// SaveInput são os campos editáveis como chegam do formulário. As datas
// são texto livre validado contra DD/MM/YYYY; o par execução/gasto vem
// como uma única medição e o campo derivado é recalculado no salvamento.
type SaveInput struct {
	Name        string
	ServiceType string
	Status      models.RecordStatus
	StartDate   string
	EndDate     string
	Feasibility decimal.Decimal
	Budget      decimal.Decimal
	Measurement models.Measurement
	Comments    string
}

// Save valida os campos, grava no registro em edição, persiste e volta ao
// estado ocioso. Em subetapa o nome e a viabilidade não são editáveis e
// ficam como estão.
func (e *Edit) Save(st *store.Store, id string, in SaveInput) (models.Record, error) {
	e.mu.Lock()
	if !e.editing {
		e.mu.Unlock()
		return models.Record{}, ErrNotEditing
	}
	if e.recordID != id {
		e.mu.Unlock()
		return models.Record{}, ErrWrongRecord
	}
	e.mu.Unlock()

	if !models.ValidStatus(in.Status) {
		return models.Record{}, ErrInvalidStatus
	}
	if !models.ValidMode(in.Measurement.Mode) {
		return models.Record{}, ErrInvalidMode
	}
	start, err := parseFormDate("Data Início Contrapartida (Previsto)", in.StartDate)
	if err != nil {
		return models.Record{}, err
	}
	end, err := parseFormDate("Data Término Contrapartida (Previsto)", in.EndDate)
	if err != nil {
		return models.Record{}, err
	}

	updated, err := st.Update(id, func(r *models.Record) error {
		if r.IsProject() {
			r.Name = in.Name
			r.Feasibility = in.Feasibility
		}
		r.ServiceType = in.ServiceType
		r.Status = in.Status
		r.PlannedStart = &start
		r.PlannedEnd = &end
		r.Budget = in.Budget
		r.Mode = in.Measurement.Mode
		r.ExecutionPct, r.ActualSpend = in.Measurement.Resolve(in.Budget)
		r.Comments = in.Comments
		return nil
	})
	if err != nil {
		return models.Record{}, err
	}

	e.Cancel()
	return updated, nil
}

func parseFormDate(label, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", label, ErrInvalidDate)
	}
	return t, nil
}
