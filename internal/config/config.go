package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	GatewayPort    string
	ClassifierPort string

	// fetcher 推送批次的入口，以及 gateway 转发新文章的分析入口
	GatewayInputURL      string
	ClassifierAnalyzeURL string

	CronSpec     string
	FetchTimeout time.Duration

	// 去重账本：backend 可选 file / redis / postgres
	LedgerBackend  string
	HistoryFile    string
	MaxHistorySize int
	RedisAddr      string
	PostgresDSN    string

	// 情感模型推理服务，留空则使用内置的词典分析器
	SentimentAPIURL string
	SentimentAPIKey string

	FeedURLs []string
}

// defaultFeeds 内置的订阅源列表；可通过 FEEDS_FILE 指定 YAML 文件整体覆盖
var defaultFeeds = []string{
	"http://feeds.bbci.co.uk/news/rss.xml",
	"http://rss.cnn.com/rss/edition.rss",
	"https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml",
	"https://feeds.a.dj.com/rss/RSSWorldNews.xml",
	"https://www.aljazeera.com/xml/rss/all.xml",
	"https://www.reuters.com/tools/rss",
	"https://feeds.npr.org/1001/rss.xml",
	"https://www.theguardian.com/world/rss",
	"https://www.ft.com/?format=rss",
	"https://www.economist.com/latest/rss.xml",
	"https://www.bloomberg.com/feed/podcast/have-a-nice-future.xml",
	"https://rss.dw.com/rdf/rss-en-all",
	"https://www.sciencedaily.com/rss/all.xml",
	"https://www.nationalgeographic.com/content/natgeo/en_us/rss/index.rss",
	"https://www.techradar.com/rss",
	"https://feeds.feedburner.com/TechCrunch/",
	"https://www.wired.com/feed/rss",
	"https://www.vice.com/en_us/rss",
	"https://www.politico.com/rss/politics08.xml",
	"https://rss.politico.com/politics-news.xml",
	"https://feeds.bloomberg.com/bview/news.rss",
	"https://www.yahoo.com/news/rss",
	"https://abcnews.go.com/abcnews/topstories",
}

func Load() *Config {
	// .env 存在则加载，便于本地开发；不存在不算错误
	_ = godotenv.Load()

	cfg := &Config{
		GatewayPort:          getEnv("GATEWAY_PORT", "5000"),
		ClassifierPort:       getEnv("CLASSIFIER_PORT", "5001"),
		GatewayInputURL:      getEnv("GATEWAY_INPUT_URL", "http://localhost:5000/input"),
		ClassifierAnalyzeURL: getEnv("CLASSIFIER_ANALYZE_URL", "http://localhost:5001/analyze"),
		CronSpec:             getEnv("CRON_SPEC", "*/10 * * * *"),
		FetchTimeout:         getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		LedgerBackend:        getEnv("LEDGER_BACKEND", "file"),
		HistoryFile:          getEnv("HISTORY_FILE", "history.json"),
		MaxHistorySize:       getEnvInt("MAX_HISTORY_SIZE", 1000),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		PostgresDSN:          getEnv("POSTGRES_DSN", "host=localhost user=newsradar password=newsradar dbname=newsradar port=5432 sslmode=disable TimeZone=UTC"),
		SentimentAPIURL:      getEnv("SENTIMENT_API_URL", ""),
		SentimentAPIKey:      getEnv("SENTIMENT_API_KEY", ""),
		FeedURLs:             defaultFeeds,
	}

	if path := os.Getenv("FEEDS_FILE"); path != "" {
		if feeds, err := loadFeedsFile(path); err != nil {
			log.Printf("config: load feeds file %s: %v (keeping built-in list)", path, err)
		} else if len(feeds) > 0 {
			cfg.FeedURLs = feeds
		}
	}

	log.Printf("config loaded: gateway=%s classifier=%s cron=%s feeds=%d ledger=%s",
		cfg.GatewayPort, cfg.ClassifierPort, cfg.CronSpec, len(cfg.FeedURLs), cfg.LedgerBackend)
	return cfg
}

// loadFeedsFile 解析形如 {feeds: [url, ...]} 的 YAML 文件
func loadFeedsFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Feeds []string `yaml:"feeds"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc.Feeds, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("config: invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}
