package main

import (
	"fmt"
	"log"

	"posobra-painel/internal/config"
	"posobra-painel/internal/database"
	"posobra-painel/internal/handlers"
	"posobra-painel/internal/server"
	"posobra-painel/internal/state"
	"posobra-painel/internal/store"
)

func main() {
	cfg := config.Load()
	database.Init(cfg.DBDSN)

	st, err := store.Open(cfg.DataFile)
	if err != nil {
		log.Fatalf("failed to load data file %s: %v", cfg.DataFile, err)
	}

	app := state.New(st)
	r := server.NewRouter(cfg, handlers.New(app))

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
