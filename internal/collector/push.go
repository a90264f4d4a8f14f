package collector

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"
)

const pushClientTimeout = 30 * time.Second

// Pusher 把一轮采集的完整批次作为一份 XML 文档发给 gateway 的入口
type Pusher struct {
	inputURL string
	client   *http.Client
}

func NewPusher(inputURL string) *Pusher {
	return &Pusher{
		inputURL: inputURL,
		client:   &http.Client{Timeout: pushClientTimeout},
	}
}

// Push 序列化并推送批次；失败由调用方记日志后丢弃，下一轮从零开始
func (p *Pusher) Push(articles []Article) error {
	payload, err := xml.Marshal(Batch{Articles: articles})
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	resp, err := p.client.Post(p.inputURL, "application/xml", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("post batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return nil
}
