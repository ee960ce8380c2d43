package disbursement

import (
	"sync"

	"posobra-painel/internal/models"
)

// Table guarda os rateios brutos editados por projeto. Vive junto do
// estado da aplicação: construída na subida do processo e descartada com
// ele, sem persistência própria — um projeto sem edição usa o rateio
// uniforme derivado das datas previstas.
type Table struct {
	mu       sync.Mutex
	byRecord map[string][]Entry
}

func NewTable() *Table {
	return &Table{byRecord: make(map[string][]Entry)}
}

func (t *Table) Set(recordID string, entries []Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	t.byRecord[recordID] = cp
}

func (t *Table) Delete(recordID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.byRecord, recordID)
}

// ScheduleFor devolve o rateio editado do registro, ou o uniforme padrão
// quando nunca foi editado. Registro sem as duas datas previstas não tem
// meses e devolve nil.
func (t *Table) ScheduleFor(r *models.Record) []Entry {
	t.mu.Lock()
	entries, ok := t.byRecord[r.ID]
	t.mu.Unlock()
	if ok {
		cp := make([]Entry, len(entries))
		copy(cp, entries)
		return cp
	}
	if r.PlannedStart == nil || r.PlannedEnd == nil {
		return nil
	}
	return DefaultSchedule(*r.PlannedStart, *r.PlannedEnd)
}
