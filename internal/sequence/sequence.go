// Package sequence reatribui os códigos hierárquicos ("1", "1.1", "2", ...)
// dos registros a partir da posição atual das linhas.
package sequence

import (
	"strconv"
	"strings"

	"posobra-painel/internal/models"
)

// Renumber percorre a tabela na ordem das linhas e reatribui codigo_sequencia:
// etapas recebem "1".."N"; as subetapas de cada etapa recebem
// "<código do pai>.1", "<código do pai>.2", ... Idempotente: sem mutação
// estrutural entre duas chamadas, os códigos não mudam.
//
// Subetapas cujo id_pai não resolve para nenhuma etapa são puladas em
// silêncio e mantêm o código antigo.
func Renumber(records []*models.Record) {
	parentCode := make(map[string]string)
	childCount := make(map[string]int)

	n := 0
	for _, r := range records {
		if !r.IsProject() {
			continue
		}
		n++
		r.SequenceCode = strconv.Itoa(n)
		parentCode[r.ID] = r.SequenceCode
	}

	for _, r := range records {
		if r.IsProject() {
			continue
		}
		code, ok := parentCode[r.ParentID]
		if !ok {
			continue
		}
		childCount[r.ParentID]++
		r.SequenceCode = code + "." + strconv.Itoa(childCount[r.ParentID])
	}
}

// sentinela para códigos malformados: ordena depois de qualquer código válido
const malformed = 999

// SortKey converte um código pontilhado na chave numérica usada para
// ordenação ("2.10" > "2.9"). Código malformado vira a chave sentinela.
func SortKey(code string) []int {
	parts := strings.Split(code, ".")
	key := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return []int{malformed}
		}
		key = append(key, v)
	}
	return key
}

// Less compara duas chaves de SortKey lexicograficamente.
func Less(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
