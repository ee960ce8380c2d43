// Package store mantém a tabela de registros de contrapartida em memória,
// espelhada no arquivo plano delimitado por ';'. Toda mutação renumera os
// códigos quando muda a estrutura e regrava o arquivo inteiro em seguida.
// O mutex serializa os handlers do processo; o arquivo em si continua com
// semântica de escritor único, sem verificação de conflito entre processos.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"posobra-painel/internal/models"
	"posobra-painel/internal/sequence"
)

var (
	ErrNotFound   = errors.New("registro não encontrado")
	ErrNotProject = errors.New("registro não é uma etapa")
)

type Store struct {
	mu      sync.Mutex
	path    string
	records []*models.Record
}

// Open carrega o arquivo de dados. Arquivo ausente vira tabela vazia.
func Open(path string) (*Store, error) {
	records, err := load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, records: records}, nil
}

// Records devolve uma cópia da tabela na ordem das linhas.
func (s *Store) Records() []*models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Record, len(s.records))
	for i, r := range s.records {
		cp := *r
		out[i] = &cp
	}
	return out
}

func (s *Store) Get(id string) (models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r := s.find(id); r != nil {
		return *r, true
	}
	return models.Record{}, false
}

// AddProject inclui uma nova etapa com os valores padrão e persiste.
func (s *Store) AddProject() (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := dateOnly(time.Now())
	r := &models.Record{
		ID:           uuid.NewString(),
		Status:       models.StatusPlanejamento,
		Name:         "Novo Projeto",
		PlannedStart: &today,
		PlannedEnd:   &today,
		Feasibility:  decimal.Zero,
		Budget:       decimal.Zero,
		ExecutionPct: decimal.Zero,
		ActualSpend:  decimal.Zero,
		Mode:         models.ModePorExecucao,
	}
	s.records = append(s.records, r)
	sequence.Renumber(s.records)
	if err := s.persistLocked(); err != nil {
		return models.Record{}, err
	}
	return *r, nil
}

// AddSubStage inclui uma subetapa da etapa dada, herdando nome e datas
// previstas do pai, e persiste.
func (s *Store) AddSubStage(parentID string) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent := s.find(parentID)
	if parent == nil {
		return models.Record{}, ErrNotFound
	}
	if !parent.IsProject() {
		return models.Record{}, ErrNotProject
	}

	r := &models.Record{
		ID:           uuid.NewString(),
		ParentID:     parent.ID,
		Status:       models.StatusPlanejamento,
		Name:         parent.Name,
		PlannedStart: copyDate(parent.PlannedStart),
		PlannedEnd:   copyDate(parent.PlannedEnd),
		Feasibility:  decimal.Zero,
		Budget:       decimal.Zero,
		ExecutionPct: decimal.Zero,
		ActualSpend:  decimal.Zero,
		Mode:         models.ModePorExecucao,
	}
	s.records = append(s.records, r)
	sequence.Renumber(s.records)
	if err := s.persistLocked(); err != nil {
		return models.Record{}, err
	}
	return *r, nil
}

// Update aplica fn ao registro e persiste. Edição de campos não muda a
// estrutura, então não renumera.
func (s *Store) Update(id string, fn func(*models.Record) error) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.find(id)
	if r == nil {
		return models.Record{}, ErrNotFound
	}
	if err := fn(r); err != nil {
		return models.Record{}, err
	}
	if err := s.persistLocked(); err != nil {
		return models.Record{}, err
	}
	return *r, nil
}

// Delete remove o registro; etapa leva junto todas as suas subetapas.
// Renumera e persiste.
func (s *Store) Delete(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.find(id)
	if r == nil {
		return nil, ErrNotFound
	}

	var removed []string
	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.ID == id || (r.IsProject() && rec.ParentID == id) {
			removed = append(removed, rec.ID)
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	sequence.Renumber(s.records)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *Store) find(id string) *models.Record {
	for _, r := range s.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *Store) persistLocked() error {
	return save(s.path, s.records)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
