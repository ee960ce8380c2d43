package session_test

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"posobra-painel/internal/models"
	"posobra-painel/internal/session"
	"posobra-painel/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "contrapartidas.csv"))
	require.NoError(t, err)
	return st
}

func validInput() session.SaveInput {
	return session.SaveInput{
		Name:        "Ponte Norte",
		ServiceType: "Drenagem",
		Status:      models.StatusEmAndamento,
		StartDate:   "01/02/2025",
		EndDate:     "30/06/2025",
		Feasibility: dec("250000"),
		Budget:      dec("100000"),
		Measurement: models.Measurement{Mode: models.ModePorExecucao, Value: dec("40")},
		Comments:    "ok",
	}
}

func TestSaveRequiresStartEdit(t *testing.T) {
	st := newStore(t)
	p, _ := st.AddProject()

	e := session.NewEdit()
	_, err := e.Save(st, p.ID, validInput())
	require.ErrorIs(t, err, session.ErrNotEditing)
}

func TestSaveWrongRecord(t *testing.T) {
	st := newStore(t)
	p1, _ := st.AddProject()
	p2, _ := st.AddProject()

	e := session.NewEdit()
	require.NoError(t, e.StartEdit(st, p1.ID))

	_, err := e.Save(st, p2.ID, validInput())
	require.ErrorIs(t, err, session.ErrWrongRecord)
}

func TestStartEditUnknownRecord(t *testing.T) {
	st := newStore(t)
	e := session.NewEdit()
	require.ErrorIs(t, e.StartEdit(st, "inexistente"), store.ErrNotFound)
}

func TestSaveValidatesDateFormat(t *testing.T) {
	st := newStore(t)
	p, _ := st.AddProject()

	e := session.NewEdit()
	require.NoError(t, e.StartEdit(st, p.ID))

	in := validInput()
	in.StartDate = "2025-02-01" // formato errado
	_, err := e.Save(st, p.ID, in)
	require.ErrorIs(t, err, session.ErrInvalidDate)

	// a sessão continua em edição após erro de validação
	id, editing := e.Editing()
	require.True(t, editing)
	require.Equal(t, p.ID, id)
}

func TestSaveValidatesStatusAndMode(t *testing.T) {
	st := newStore(t)
	p, _ := st.AddProject()

	e := session.NewEdit()
	require.NoError(t, e.StartEdit(st, p.ID))

	in := validInput()
	in.Status = "Pendente"
	_, err := e.Save(st, p.ID, in)
	require.ErrorIs(t, err, session.ErrInvalidStatus)

	in = validInput()
	in.Measurement.Mode = "Por Estimativa"
	_, err = e.Save(st, p.ID, in)
	require.ErrorIs(t, err, session.ErrInvalidMode)
}

func TestSaveByExecutionPctDerivesSpend(t *testing.T) {
	st := newStore(t)
	p, _ := st.AddProject()

	e := session.NewEdit()
	require.NoError(t, e.StartEdit(st, p.ID))

	updated, err := e.Save(st, p.ID, validInput())
	require.NoError(t, err)

	require.True(t, updated.ExecutionPct.Equal(dec("40")))
	require.True(t, updated.ActualSpend.Equal(dec("40000.00")), "gasto derivado: %s", updated.ActualSpend)
	require.Equal(t, models.StatusEmAndamento, updated.Status)
	require.Equal(t, "Ponte Norte", updated.Name)
	require.Equal(t, 2025, updated.PlannedStart.Year())

	// salvar encerra a edição
	_, editing := e.Editing()
	require.False(t, editing)
}

func TestSaveByActualSpendDerivesPct(t *testing.T) {
	st := newStore(t)
	p, _ := st.AddProject()

	e := session.NewEdit()
	require.NoError(t, e.StartEdit(st, p.ID))

	in := validInput()
	in.Measurement = models.Measurement{Mode: models.ModePorGastoReal, Value: dec("25000")}
	updated, err := e.Save(st, p.ID, in)
	require.NoError(t, err)

	require.True(t, updated.ActualSpend.Equal(dec("25000")))
	require.True(t, updated.ExecutionPct.Equal(dec("25.00")), "execução derivada: %s", updated.ExecutionPct)
}

func TestSaveZeroBudgetByActualSpend(t *testing.T) {
	st := newStore(t)
	p, _ := st.AddProject()

	e := session.NewEdit()
	require.NoError(t, e.StartEdit(st, p.ID))

	in := validInput()
	in.Budget = decimal.Zero
	in.Measurement = models.Measurement{Mode: models.ModePorGastoReal, Value: dec("1000")}
	updated, err := e.Save(st, p.ID, in)
	require.NoError(t, err)

	require.True(t, updated.ExecutionPct.IsZero())
}

func TestSubStageNameAndFeasibilityNotEditable(t *testing.T) {
	st := newStore(t)
	p, _ := st.AddProject()
	sub, _ := st.AddSubStage(p.ID)

	e := session.NewEdit()
	require.NoError(t, e.StartEdit(st, sub.ID))

	in := validInput()
	in.Name = "Outro Nome"
	in.Feasibility = dec("999")
	updated, err := e.Save(st, sub.ID, in)
	require.NoError(t, err)

	require.Equal(t, sub.Name, updated.Name)
	require.True(t, updated.Feasibility.IsZero())
	require.Equal(t, "Drenagem", updated.ServiceType)
}

func TestCancelKeepsStore(t *testing.T) {
	st := newStore(t)
	p, _ := st.AddProject()

	e := session.NewEdit()
	require.NoError(t, e.StartEdit(st, p.ID))
	e.Cancel()

	_, editing := e.Editing()
	require.False(t, editing)

	r, ok := st.Get(p.ID)
	require.True(t, ok)
	require.Equal(t, "Novo Projeto", r.Name)
}
