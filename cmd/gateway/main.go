package main

import (
	"log"

	"github.com/LJTian/NewsRadar/internal/config"
	"github.com/LJTian/NewsRadar/internal/gateway"
	"github.com/LJTian/NewsRadar/internal/ledger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	store, err := newLedgerStore(cfg)
	if err != nil {
		log.Fatalf("init ledger store failed: %v", err)
	}

	classifier := gateway.NewClassifierClient(cfg.ClassifierAnalyzeURL)
	server := gateway.NewServer(store, cfg.MaxHistorySize, classifier)

	r := gin.Default()
	server.RegisterRoutes(r)

	addr := ":" + cfg.GatewayPort
	log.Printf("starting gateway at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

func newLedgerStore(cfg *config.Config) (ledger.Store, error) {
	switch cfg.LedgerBackend {
	case "redis":
		return ledger.NewRedisStore(cfg.RedisAddr), nil
	case "postgres":
		return ledger.NewGormStore(cfg.PostgresDSN)
	default:
		return ledger.NewFileStore(cfg.HistoryFile), nil
	}
}
