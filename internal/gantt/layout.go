// Package gantt projeta os registros filtrados sobre um eixo de tempo
// horizontal: barras com offset/duração em dias contados da menor data de
// início, cores por etapa com variação clareada nas subetapas e marcas
// mensais no eixo. Função pura, nada aqui altera a tabela.
package gantt

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"posobra-painel/internal/models"
	"posobra-painel/internal/sequence"
)

type Kind string

const (
	KindEtapa    Kind = "Etapa"
	KindSubetapa Kind = "Subetapa"
)

// Filtros de exibição: KindEtapa/KindSubetapa restringem o tipo (vazio =
// ambos); Projects restringe às etapas selecionadas (ids) e suas
// subetapas; Year restringe pelo ano da data de início prevista (0 = todos).
type Filter struct {
	Kind     Kind
	Projects []string
	Year     int
}

type Bar struct {
	RecordID     string          `json:"id"`
	Code         string          `json:"codigo"`
	Label        string          `json:"rotulo"`
	Kind         Kind            `json:"tipo"`
	StartOffset  int             `json:"inicio_dias"`
	DurationDays int             `json:"duracao_dias"`
	Color        string          `json:"cor"`
	ExecutionPct decimal.Decimal `json:"execucao"`
}

type Tick struct {
	Offset int    `json:"dias"`
	Label  string `json:"rotulo"` // "MM/YYYY"
}

// Layout é a saída pronta para desenho. Bars já vem na ordem vertical de
// exibição, de cima para baixo: a primeira etapa no topo, cada subetapa
// logo abaixo da sua etapa.
type Layout struct {
	Reference time.Time `json:"referencia"`
	Bars      []Bar     `json:"barras"`
	Ticks     []Tick    `json:"marcas"`
}

var palette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// Build monta o layout do Gantt para o conjunto filtrado. Registros sem
// uma das duas datas previstas ficam de fora, sem erro. Layout vazio
// (nenhuma barra) é saída válida.
func Build(records []*models.Record, f Filter) Layout {
	rows := filter(records, f)

	var bars []*models.Record
	for _, r := range rows {
		if r.PlannedStart == nil || r.PlannedEnd == nil {
			continue
		}
		bars = append(bars, r)
	}
	if len(bars) == 0 {
		return Layout{}
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return sequence.Less(sequence.SortKey(bars[i].SequenceCode), sequence.SortKey(bars[j].SequenceCode))
	})

	reference := *bars[0].PlannedStart
	maxEnd := *bars[0].PlannedEnd
	for _, r := range bars {
		if r.PlannedStart.Before(reference) {
			reference = *r.PlannedStart
		}
		if r.PlannedEnd.After(maxEnd) {
			maxEnd = *r.PlannedEnd
		}
	}

	// cor por etapa, ciclada pela posição entre as etapas renderizadas
	colors := make(map[string]string)
	i := 0
	for _, r := range bars {
		if r.IsProject() {
			colors[r.ID] = palette[i%len(palette)]
			i++
		}
	}

	out := Layout{Reference: reference}
	for _, r := range bars {
		kind := KindEtapa
		color, ok := colors[r.ID]
		if !r.IsProject() {
			kind = KindSubetapa
			parentColor, okParent := colors[r.ParentID]
			if !okParent {
				parentColor = palette[0]
			}
			color = lighten(parentColor, 0.5)
		} else if !ok {
			color = palette[0]
		}
		out.Bars = append(out.Bars, Bar{
			RecordID:     r.ID,
			Code:         r.SequenceCode,
			Label:        fmt.Sprintf("Código: %s | %s | %s", r.SequenceCode, r.Name, r.ServiceType),
			Kind:         kind,
			StartOffset:  days(r.PlannedStart.Sub(reference)),
			DurationDays: days(r.PlannedEnd.Sub(*r.PlannedStart)),
			Color:        color,
			ExecutionPct: r.ExecutionPct,
		})
	}

	out.Ticks = monthlyTicks(reference, maxEnd)
	return out
}

func filter(records []*models.Record, f Filter) []*models.Record {
	selected := make(map[string]bool, len(f.Projects))
	for _, id := range f.Projects {
		selected[id] = true
	}

	var out []*models.Record
	for _, r := range records {
		if len(selected) > 0 {
			key := r.ID
			if !r.IsProject() {
				key = r.ParentID
			}
			if !selected[key] {
				continue
			}
		}
		switch f.Kind {
		case KindEtapa:
			if !r.IsProject() {
				continue
			}
		case KindSubetapa:
			if r.IsProject() {
				continue
			}
		}
		if f.Year != 0 && (r.PlannedStart == nil || r.PlannedStart.Year() != f.Year) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func days(d time.Duration) int {
	return int(d.Hours() / 24)
}

// monthlyTicks gera uma marca em cada primeiro dia de mês entre o início
// mínimo e o fim máximo, com o offset em dias contado da referência.
func monthlyTicks(reference, maxEnd time.Time) []Tick {
	var ticks []Tick
	cur := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
	for !cur.After(maxEnd) {
		ticks = append(ticks, Tick{
			Offset: days(cur.Sub(reference)),
			Label:  cur.Format("01/2006"),
		})
		cur = cur.AddDate(0, 1, 0)
	}
	return ticks
}

// lighten mistura a cor com branco, canal a canal, pelo fator dado.
func lighten(hexColor string, amount float64) string {
	var r, g, b int
	if _, err := fmt.Sscanf(hexColor, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return hexColor
	}
	r += int(float64(255-r) * amount)
	g += int(float64(255-g) * amount)
	b += int(float64(255-b) * amount)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
