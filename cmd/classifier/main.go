package main

import (
	"log"

	"github.com/LJTian/NewsRadar/internal/classifier"
	"github.com/LJTian/NewsRadar/internal/config"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	var analyzer classifier.Analyzer
	if cfg.SentimentAPIURL != "" {
		analyzer = classifier.NewHTTPAnalyzer(cfg.SentimentAPIURL, cfg.SentimentAPIKey)
		log.Printf("using remote sentiment model at %s", cfg.SentimentAPIURL)
	} else {
		analyzer = classifier.LexiconAnalyzer{}
		log.Println("SENTIMENT_API_URL not set, using built-in lexicon analyzer")
	}

	store := classifier.NewPublishedStore()
	server := classifier.NewServer(analyzer, store)

	r := gin.Default()
	server.RegisterRoutes(r)

	addr := ":" + cfg.ClassifierPort
	log.Printf("starting classifier at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
