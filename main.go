package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/config"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/database"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/router"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/service"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/store"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(filepath.Dir(cfg.Storage.Path)); err != nil {
		log.Fatalf("create storage dir: %v", err)
	}
	if err := ensureDir(cfg.Storage.QuarantineDir); err != nil {
		log.Fatalf("create quarantine dir: %v", err)
	}

	// init database (audit trail, and the ledger itself in sqlite mode)
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// pick the ledger backend
	var st store.Store
	switch cfg.Storage.Backend {
	case "sqlite":
		st = store.NewSQLiteStore(db)
	case "", "xlsx":
		st = store.NewXLSXStore(cfg.Storage.Path, cfg.Storage.QuarantineDir)
	default:
		log.Fatalf("unknown storage backend %q", cfg.Storage.Backend)
	}

	var mirror *store.Mirror
	if cfg.GitHub.Enabled {
		mirror = store.NewMirror(cfg.GitHub)
		log.Printf("mirroring ledger to %s/%s:%s", cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.Path)
	}

	// load the persisted table into canonical form
	svc, err := service.New(st, mirror)
	if err != nil {
		log.Fatalf("load ledger: %v", err)
	}

	// setup router
	r := router.SetupRouter(cfg, db, svc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
