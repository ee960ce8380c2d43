// Package state agrupa o estado mutável do painel em uma única struct
// construída na subida do processo e passada aos handlers, no lugar das
// variáveis ambientais soltas.
package state

import (
	"posobra-painel/internal/disbursement"
	"posobra-painel/internal/session"
	"posobra-painel/internal/store"
)

type App struct {
	Store     *store.Store
	Edit      *session.Edit
	Schedules *disbursement.Table
}

func New(st *store.Store) *App {
	return &App{
		Store:     st,
		Edit:      session.NewEdit(),
		Schedules: disbursement.NewTable(),
	}
}
