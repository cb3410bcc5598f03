package main

import (
	"sapacademy/internal/api"
	"sapacademy/internal/config"
	"sapacademy/internal/gen"
	"sapacademy/internal/lessons"
	"sapacademy/internal/pg"
)

func main() {
	cfg := config.LoadWithPath("config.json")
	log := config.GetLogger()

	if cfg.DBURL == "" {
		log.Fatal("no database url configured (DATABASE_URL / ACADEMY_DB_URL / -db)")
	}

	// 1. Подключаемся к хранилищу
	db, err := pg.Open(cfg.DBURL)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer db.Close()

	// 2. Загружаем методички
	catalog, err := lessons.LoadCatalog(cfg.LessonsDir)
	if err != nil {
		log.Fatalf("lessons load: %v", err)
	}
	log.Infof("lessons loaded: %d modules", len(catalog))

	// 3. Запускаем REST API дашборда
	deps := &api.Deps{
		DB:      db,
		Log:     log,
		Lessons: catalog,
		Engine:  gen.NewEngine(db, log, cfg.Volumes),
		Audit:   api.NewAuditLog(db, log),
		Seed:    cfg.Seed,
		Origins: cfg.Origins(),
	}
	log.Infof("academy server on :%s", cfg.Port)
	api.RunServer(":"+cfg.Port, deps)
}
