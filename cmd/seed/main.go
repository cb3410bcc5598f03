package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"sapacademy/internal/config"
	"sapacademy/internal/gen"
	"sapacademy/internal/pg"
)

// Батч-прогон генераторов: mm → fi → sd → pm (или подмножество через
// -modules). Любой сбой фатален — датасет перегенерируется с нуля.
func main() {
	modulesFlag := flag.String("modules", "", "comma-separated subset (mm,fi,sd,pm); empty = all")

	cfg := config.LoadWithPath("config.json")
	log := config.GetLogger()

	if cfg.DBURL == "" {
		log.Fatal("no database url configured (DATABASE_URL / ACADEMY_DB_URL / -db)")
	}

	db, err := pg.Open(cfg.DBURL)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer db.Close()

	var modules []string
	if strings.TrimSpace(*modulesFlag) != "" {
		modules = strings.Split(*modulesFlag, ",")
	}

	engine := gen.NewEngine(db, log, cfg.Volumes)
	counts, err := engine.Run(context.Background(), cfg.Seed, modules)
	if err != nil {
		log.Errorf("seed failed: %v", err)
		os.Exit(1)
	}
	for table, n := range counts {
		log.Infof("%s: %d rows", table, n)
	}
}
