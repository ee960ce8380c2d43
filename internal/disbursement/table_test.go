package disbursement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"posobra-painel/internal/disbursement"
	"posobra-painel/internal/models"
)

func TestScheduleForDefaultsToUniform(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)
	r := &models.Record{ID: "a", PlannedStart: &start, PlannedEnd: &end}

	table := disbursement.NewTable()
	entries := table.ScheduleFor(r)

	require.Len(t, entries, 4)
	requireDecimal(t, "25", entries[0].Pct)
}

func TestScheduleForReturnsEdited(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	r := &models.Record{ID: "a", PlannedStart: &start, PlannedEnd: &end}

	table := disbursement.NewTable()
	table.Set("a", []disbursement.Entry{
		{Month: "01/2025", Pct: dec("70")},
		{Month: "02/2025", Pct: dec("30")},
	})

	entries := table.ScheduleFor(r)
	require.Len(t, entries, 2)
	requireDecimal(t, "70", entries[0].Pct)

	table.Delete("a")
	entries = table.ScheduleFor(r)
	requireDecimal(t, "50", entries[0].Pct)
}

func TestScheduleForWithoutDates(t *testing.T) {
	table := disbursement.NewTable()
	require.Nil(t, table.ScheduleFor(&models.Record{ID: "a"}))
}
