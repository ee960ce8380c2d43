// Package disbursement calcula o cronograma financeiro de desembolso:
// percentuais mensais por projeto, normalização para 100% e a visão
// consolidada entre projetos.
package disbursement

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MonthLayout é o formato dos rótulos de mês ("01/2025").
const MonthLayout = "01/2006"

var cem = decimal.NewFromInt(100)

// Entry é um par (mês, percentual bruto) editável pelo usuário.
type Entry struct {
	Month string          `json:"mes"`
	Pct   decimal.Decimal `json:"percentual"`
}

// Allocation é a linha resultante do rateio de um projeto.
type Allocation struct {
	Month  string          `json:"mes"`
	Pct    decimal.Decimal `json:"percentual"`
	Amount decimal.Decimal `json:"valor"`
}

// Months devolve cada mês-calendário entre start e end, inclusive.
func Months(start, end time.Time) []string {
	if end.Before(start) {
		return nil
	}
	var out []string
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(last) {
		out = append(out, cur.Format(MonthLayout))
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

// DefaultSchedule monta o rateio uniforme round(100/n, 1) para o período.
func DefaultSchedule(start, end time.Time) []Entry {
	months := Months(start, end)
	if len(months) == 0 {
		return nil
	}
	pct := cem.Div(decimal.NewFromInt(int64(len(months)))).Round(1)
	entries := make([]Entry, len(months))
	for i, m := range months {
		entries[i] = Entry{Month: m, Pct: pct}
	}
	return entries
}

// Normalize devolve os percentuais reescalonados para somar 100.
// Se a soma bruta já é exatamente 100, os valores voltam inalterados.
// O arredondamento a 1 casa pode deixar a soma em 99.9 ou 100.1; o
// resíduo não é corrigido. Soma zero não tem como ser reescalonada e
// volta como está.
func Normalize(entries []Entry) []decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Pct)
	}

	out := make([]decimal.Decimal, len(entries))
	if total.Equal(cem) || total.IsZero() {
		for i, e := range entries {
			out[i] = e.Pct
		}
		return out
	}
	for i, e := range entries {
		out[i] = e.Pct.Div(total).Mul(cem).Round(1)
	}
	return out
}

// Allocate aplica os percentuais normalizados ao orçamento do projeto.
// Orçamento zero produz rateio todo zerado, saída válida.
func Allocate(budget decimal.Decimal, entries []Entry) []Allocation {
	normalized := Normalize(entries)
	out := make([]Allocation, len(entries))
	for i, e := range entries {
		out[i] = Allocation{
			Month:  e.Month,
			Pct:    normalized[i],
			Amount: normalized[i].Div(cem).Mul(budget).Round(2),
		}
	}
	return out
}

// ProjectSchedule é a entrada de um projeto na consolidação.
type ProjectSchedule struct {
	ID      string
	Name    string
	Budget  decimal.Decimal
	Entries []Entry
}

// MonthTotal é o total consolidado de um mês.
type MonthTotal struct {
	Month string          `json:"mes"`
	Total decimal.Decimal `json:"total"`
}

// Share é a participação de um projeto em um mês.
type Share struct {
	Month    string          `json:"mes"`
	Project  string          `json:"projeto"`
	Amount   decimal.Decimal `json:"valor"`
	SharePct decimal.Decimal `json:"participacao"`
}

// Consolidated é o fluxo de caixa mensal somado entre os projetos
// selecionados, mais a abertura mês×projeto com a participação de cada um.
type Consolidated struct {
	Totals    []MonthTotal `json:"totais"`
	Breakdown []Share      `json:"abertura"`
}

// Consolidate soma os rateios dos projetos por mês e calcula a
// participação de cada projeto (valor / total do mês × 100, 1 casa).
func Consolidate(projects []ProjectSchedule) Consolidated {
	type cell struct {
		project string
		amount  decimal.Decimal
	}
	totals := make(map[string]decimal.Decimal)
	cells := make(map[string][]cell)

	for _, p := range projects {
		for _, a := range Allocate(p.Budget, p.Entries) {
			totals[a.Month] = totals[a.Month].Add(a.Amount)
			cells[a.Month] = append(cells[a.Month], cell{project: p.Name, amount: a.Amount})
		}
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		a, errA := time.Parse(MonthLayout, months[i])
		b, errB := time.Parse(MonthLayout, months[j])
		if errA != nil || errB != nil {
			return months[i] < months[j]
		}
		return a.Before(b)
	})

	var out Consolidated
	for _, m := range months {
		out.Totals = append(out.Totals, MonthTotal{Month: m, Total: totals[m]})
		for _, c := range cells[m] {
			share := decimal.Zero
			if !totals[m].IsZero() {
				share = c.amount.Div(totals[m]).Mul(cem).Round(1)
			}
			out.Breakdown = append(out.Breakdown, Share{
				Month:    m,
				Project:  c.project,
				Amount:   c.amount,
				SharePct: share,
			})
		}
	}
	return out
}
