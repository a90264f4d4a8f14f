package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LJTian/NewsRadar/internal/collector"
	"github.com/LJTian/NewsRadar/internal/config"
	"github.com/LJTian/NewsRadar/internal/scheduler"
)

func main() {
	once := flag.Bool("once", false, "run a single fetch cycle and exit")
	flag.Parse()

	cfg := config.Load()

	fetcher := collector.NewFetcher(cfg.FeedURLs, cfg.FetchTimeout)
	pusher := collector.NewPusher(cfg.GatewayInputURL)

	s, err := scheduler.New(cfg.CronSpec, fetcher, pusher)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}

	if *once {
		s.RunOnce()
		return
	}

	s.Start()
	log.Printf("fetcher started, cron=%s", cfg.CronSpec)

	// 收到退出信号后等当前一轮跑完再退出，避免批次推到一半
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.Stop(ctx)
	log.Println("fetcher stopped")
}
