package collector

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	maxItemsPerFeed      = 5
	maxFeedResponseBytes = 4 << 20 // 4MB
	fetchConcurrency     = 8
	defaultFetchTimeout  = 10 * time.Second
)

// Fetcher 轮询一组订阅源，产出规范化后的候选文章批次
type Fetcher struct {
	feeds  []string
	client *http.Client
}

func NewFetcher(feeds []string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{
		feeds:  feeds,
		client: &http.Client{Timeout: timeout},
	}
}

// FetchAll 抓取全部源并合并成一个批次。单个源失败只记日志并跳过，
// 不影响其余源，也不中断本轮
func (f *Fetcher) FetchAll() []Article {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		sem   = make(chan struct{}, fetchConcurrency)
		batch = make([]Article, 0, len(f.feeds)*maxItemsPerFeed)
	)

	for _, feed := range f.feeds {
		wg.Add(1)
		sem <- struct{}{}
		go func(feedURL string) {
			defer wg.Done()
			defer func() { <-sem }()

			articles, err := f.fetchFeed(feedURL)
			if err != nil {
				log.Printf("fetch %s: %v", feedURL, err)
				return
			}

			mu.Lock()
			batch = append(batch, articles...)
			mu.Unlock()
		}(feed)
	}
	wg.Wait()

	return batch
}

// fetchFeed 抓取并解析单个源，最多取最新的 maxItemsPerFeed 条
func (f *Fetcher) fetchFeed(feedURL string) ([]Article, error) {
	resp, err := f.client.Get(feedURL)
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	parser := gofeed.NewParser()
	feed, err := parser.Parse(io.LimitReader(resp.Body, maxFeedResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := feed.Items
	if len(items) > maxItemsPerFeed {
		items = items[:maxItemsPerFeed]
	}

	return normalizeItems(items), nil
}
