package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const classifierClientTimeout = 15 * time.Second

// ArticleFields 按标题索引的文章字段，即转发给 classifier 的载荷形态
type ArticleFields struct {
	Text  string `json:"text"`
	URL   string `json:"url"`
	Date  string `json:"date"`
	Image string `json:"image"`
}

// ClassifierClient 调用分析服务的 /analyze。调用失败只记日志不重试，
// 准入结果不回滚
type ClassifierClient struct {
	analyzeURL string
	client     *http.Client
}

func NewClassifierClient(analyzeURL string) *ClassifierClient {
	return &ClassifierClient{
		analyzeURL: analyzeURL,
		client:     &http.Client{Timeout: classifierClientTimeout},
	}
}

func (c *ClassifierClient) Analyze(ctx context.Context, articles map[string]ArticleFields) error {
	body, err := json.Marshal(map[string]any{"articles": articles})
	if err != nil {
		return fmt.Errorf("marshal articles: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.analyzeURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
