package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"posobra-painel/internal/models"
	"posobra-painel/internal/store"
)

func openStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contrapartidas.csv")
	st, err := store.Open(path)
	require.NoError(t, err)
	return st, path
}

func TestOpenMissingFile(t *testing.T) {
	st, _ := openStore(t)
	require.Empty(t, st.Records())
}

func TestAddProjectDefaults(t *testing.T) {
	st, path := openStore(t)

	r, err := st.AddProject()
	require.NoError(t, err)

	require.NotEmpty(t, r.ID)
	require.Equal(t, "1", r.SequenceCode)
	require.Equal(t, "Novo Projeto", r.Name)
	require.Equal(t, models.StatusPlanejamento, r.Status)
	require.Equal(t, models.ModePorExecucao, r.Mode)
	require.NotNil(t, r.PlannedStart)
	require.NotNil(t, r.PlannedEnd)
	require.True(t, r.Budget.IsZero())

	// toda mutação regrava o arquivo
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestAddSubStageInheritsParent(t *testing.T) {
	st, _ := openStore(t)

	parent, err := st.AddProject()
	require.NoError(t, err)

	sub, err := st.AddSubStage(parent.ID)
	require.NoError(t, err)

	require.Equal(t, parent.ID, sub.ParentID)
	require.Equal(t, "1.1", sub.SequenceCode)
	require.Equal(t, parent.Name, sub.Name)
	require.Equal(t, *parent.PlannedStart, *sub.PlannedStart)

	// subetapa de subetapa não existe
	_, err = st.AddSubStage(sub.ID)
	require.ErrorIs(t, err, store.ErrNotProject)

	_, err = st.AddSubStage("inexistente")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteProjectCascades(t *testing.T) {
	st, _ := openStore(t)

	p1, _ := st.AddProject()
	p2, _ := st.AddProject()
	p3, _ := st.AddProject()
	s21, _ := st.AddSubStage(p2.ID)
	s31, _ := st.AddSubStage(p3.ID)

	removed, err := st.Delete(p2.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{p2.ID, s21.ID}, removed)

	records := st.Records()
	require.Len(t, records, 3)

	byID := map[string]*models.Record{}
	for _, r := range records {
		byID[r.ID] = r
	}
	require.Equal(t, "1", byID[p1.ID].SequenceCode)
	require.Equal(t, "2", byID[p3.ID].SequenceCode)
	require.Equal(t, "2.1", byID[s31.ID].SequenceCode)
}

func TestDeleteSubStageOnly(t *testing.T) {
	st, _ := openStore(t)

	p, _ := st.AddProject()
	s1, _ := st.AddSubStage(p.ID)
	s2, _ := st.AddSubStage(p.ID)

	removed, err := st.Delete(s1.ID)
	require.NoError(t, err)
	require.Equal(t, []string{s1.ID}, removed)

	r, ok := st.Get(s2.ID)
	require.True(t, ok)
	require.Equal(t, "1.1", r.SequenceCode)
}

func TestUpdatePersistsAndReloads(t *testing.T) {
	st, path := openStore(t)

	p, _ := st.AddProject()
	_, err := st.Update(p.ID, func(r *models.Record) error {
		r.Name = "Praça; Centro"
		r.Budget = decimal.RequireFromString("150000.50")
		r.Comments = "contém; delimitador e \"aspas\""
		return nil
	})
	require.NoError(t, err)

	reloaded, err := store.Open(path)
	require.NoError(t, err)

	r, ok := reloaded.Get(p.ID)
	require.True(t, ok)
	require.Equal(t, "Praça; Centro", r.Name)
	require.Equal(t, "contém; delimitador e \"aspas\"", r.Comments)
	require.True(t, r.Budget.Equal(decimal.RequireFromString("150000.50")))
	require.True(t, r.PlannedStart.Equal(*p.PlannedStart))
}

func TestLoadSynthesizesMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contrapartidas.csv")
	legacy := "Projeto;Orçamento\nPonte Norte;120000\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	st, err := store.Open(path)
	require.NoError(t, err)

	records := st.Records()
	require.Len(t, records, 1)

	r := records[0]
	require.Equal(t, "Ponte Norte", r.Name)
	require.True(t, r.Budget.Equal(decimal.RequireFromString("120000")))
	// colunas ausentes viram padrão, nunca rejeição
	require.NotEmpty(t, r.ID)
	require.Equal(t, models.StatusPlanejamento, r.Status)
	require.Equal(t, models.ModePorExecucao, r.Mode)
	require.Nil(t, r.PlannedStart)
	require.True(t, r.Feasibility.IsZero())
}

func TestLoadAcceptsLegacyDateFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contrapartidas.csv")
	legacy := "id;Projeto;Data Início Contrapartida (Previsto)\nx1;Ponte;15/03/2024\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	st, err := store.Open(path)
	require.NoError(t, err)

	r, ok := st.Get("x1")
	require.True(t, ok)
	require.NotNil(t, r.PlannedStart)
	require.Equal(t, 2024, r.PlannedStart.Year())
}
