package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// 情感模型只区分正负；正面映射到 breaking，其余一律 alerting
const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
)

// Analyzer 对一段文本给出情感标签。模型本身是外部协作方，这里只约定
// 输入输出契约
type Analyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}

const inferenceClientTimeout = 15 * time.Second

// HTTPAnalyzer 调用远端推理服务（HuggingFace inference 风格的接口）
type HTTPAnalyzer struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPAnalyzer(endpoint, apiKey string) *HTTPAnalyzer {
	return &HTTPAnalyzer{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: inferenceClientTimeout},
	}
}

func (a *HTTPAnalyzer) Analyze(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return "", fmt.Errorf("marshal inputs: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// 推理服务返回 [[{"label":...,"score":...}, ...]]，取得分最高的标签
	var result [][]struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode result: %w", err)
	}
	if len(result) == 0 || len(result[0]) == 0 {
		return "", fmt.Errorf("empty result")
	}

	best := result[0][0]
	for _, r := range result[0][1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return best.Label, nil
}

// LexiconAnalyzer 内置的词典分析器：未配置推理服务时使用。
// 对固定输入结果确定，方便测试与离线运行
type LexiconAnalyzer struct{}

var positiveWords = []string{
	"win", "wins", "growth", "breakthrough", "record", "success",
	"recovery", "surge", "boost", "agreement", "celebrate", "hope",
	"launch", "rescue", "discovered", "progress",
}

var negativeWords = []string{
	"crisis", "death", "dead", "war", "attack", "crash", "collapse",
	"fear", "loss", "warning", "threat", "fraud", "disaster", "outbreak",
	"decline", "sanctions",
}

func (LexiconAnalyzer) Analyze(_ context.Context, text string) (string, error) {
	lower := strings.ToLower(text)

	var score int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			score--
		}
	}

	if score > 0 {
		return LabelPositive, nil
	}
	return LabelNegative, nil
}
