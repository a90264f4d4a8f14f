package classifier

import "sync"

// CategorizedArticle 带分类标签的最终文章记录，创建后不再修改
type CategorizedArticle struct {
	Title    string `json:"title" xml:"title"`
	Category string `json:"category" xml:"category"`
	Date     string `json:"date" xml:"date"`
	Text     string `json:"text" xml:"text"`
	URL      string `json:"url" xml:"url"`
	Image    string `json:"image,omitempty" xml:"image,omitempty"`
}

// PublishedStore 进程生命周期内只追加的已分类文章集合，按插入顺序对外
// 提供。追加来自 /analyze 处理协程，读取来自 /feed 请求，读写并发
type PublishedStore struct {
	mu       sync.RWMutex
	articles []CategorizedArticle
}

func NewPublishedStore() *PublishedStore {
	return &PublishedStore{}
}

func (s *PublishedStore) Append(articles ...CategorizedArticle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = append(s.articles, articles...)
}

// All 返回当前集合的副本，调用方可随意持有
func (s *PublishedStore) All() []CategorizedArticle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CategorizedArticle, len(s.articles))
	copy(out, s.articles)
	return out
}

func (s *PublishedStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}
