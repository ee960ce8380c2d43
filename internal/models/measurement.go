package models

import "github.com/shopspring/decimal"

type MeasurementMode string

const (
	ModePorExecucao  MeasurementMode = "Por % Execução"
	ModePorGastoReal MeasurementMode = "Por Gasto Real"
)

func ValidMode(m MeasurementMode) bool {
	return m == ModePorExecucao || m == ModePorGastoReal
}

var cem = decimal.NewFromInt(100)

// Measurement é a única entrada independente de medição de um registro:
// o modo diz qual dos dois campos o usuário informou, o outro é sempre
// derivado do orçamento por Resolve.
type Measurement struct {
	Mode  MeasurementMode
	Value decimal.Decimal
}

// Resolve devolve o par (% execução, gasto real) para o orçamento dado.
// Com orçamento zero no modo "Por Gasto Real", a execução fica em zero.
func (m Measurement) Resolve(budget decimal.Decimal) (pct, spend decimal.Decimal) {
	if m.Mode == ModePorGastoReal {
		spend = m.Value
		if budget.IsZero() {
			return decimal.Zero, spend
		}
		pct = spend.Div(budget).Mul(cem).Round(2)
		return pct, spend
	}
	pct = m.Value
	spend = pct.Div(cem).Mul(budget).Round(2)
	return pct, spend
}
