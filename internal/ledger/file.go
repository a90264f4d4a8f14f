package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// FileStore 默认后端：单个 JSON 文件存标题数组
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) ([]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		log.Printf("ledger: read %s: %v, starting with empty history", s.path, err)
		return []string{}, nil
	}

	var titles []string
	if err := json.Unmarshal(raw, &titles); err != nil {
		log.Printf("ledger: parse %s: %v, starting with empty history", s.path, err)
		return []string{}, nil
	}
	return titles, nil
}

func (s *FileStore) Save(_ context.Context, titles []string) error {
	raw, err := json.Marshal(titles)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	// 先写临时文件再改名，避免写一半被打断留下损坏的账本
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename history: %w", err)
	}
	return nil
}
