package gateway

import (
	"encoding/xml"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/LJTian/NewsRadar/internal/ledger"
	"github.com/gin-gonic/gin"
)

// intakeArticle 入站批次里的单条文章；text 为空时兼容 body 标签
type intakeArticle struct {
	Title string `xml:"title"`
	Text  string `xml:"text"`
	Body  string `xml:"body"`
	Date  string `xml:"date"`
	URL   string `xml:"url"`
	Image string `xml:"image"`
}

// intakeEnvelope 根元素必须是 news，否则整个请求按格式错误拒绝
type intakeEnvelope struct {
	XMLName  xml.Name        `xml:"news"`
	Articles []intakeArticle `xml:"article"`
}

// Server 接收 fetcher 的批次，做结构校验与按标题去重，再把新文章
// 转发给 classifier
type Server struct {
	store      ledger.Store
	maxHistory int
	classifier *ClassifierClient

	// 整个 load-mutate-save 准入流程持锁，两个并发批次各自读到同一
	// 快照再先后写回会丢更新，去重就破了
	mu sync.Mutex
}

func NewServer(store ledger.Store, maxHistory int, classifier *ClassifierClient) *Server {
	return &Server{
		store:      store,
		maxHistory: maxHistory,
		classifier: classifier,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/", s.home)
	r.GET("/health", s.health)
	r.POST("/input", s.handleInput)
}

func (s *Server) home(c *gin.Context) {
	c.String(http.StatusOK, "This is a blank page. Please go back home :)")
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleInput(c *gin.Context) {
	if c.ContentType() != "application/xml" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid content type"})
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No data received"})
		return
	}

	var env intakeEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		log.Printf("gateway: parse envelope: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid XML format"})
		return
	}

	newArticles := s.admit(c, env.Articles)

	if len(newArticles) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Waiting for new news"})
		return
	}

	// 先持久化账本再转发：分析服务挂掉也保持「已收录」状态，
	// 同一篇文章不会在下一轮被重复接受
	if err := s.classifier.Analyze(c.Request.Context(), newArticles); err != nil {
		log.Printf("gateway: forward %d articles to classifier: %v (admitted but unclassified)", len(newArticles), err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Articles accepted", "data": newArticles})
}

// admit 一次准入流程：账本只读一次，轮转检查只做一次，内存中追加，
// 有新文章时统一写回
func (s *Server) admit(c *gin.Context, candidates []intakeArticle) map[string]ArticleFields {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := c.Request.Context()

	titles, _ := s.store.Load(ctx)
	if rotated := ledger.Rotate(titles, s.maxHistory); len(rotated) != len(titles) {
		log.Printf("gateway: history size exceeded %d, resetting", s.maxHistory)
		titles = rotated
	}

	seen := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		seen[t] = struct{}{}
	}

	newArticles := make(map[string]ArticleFields)
	for _, a := range candidates {
		text := a.Text
		if text == "" {
			text = a.Body
		}
		url := a.URL
		if url == "" {
			url = "N/A"
		}

		// 缺必填字段或标题已收录：静默跳过该条，批次继续
		if a.Title == "" || text == "" || a.Date == "" {
			continue
		}
		if _, dup := seen[a.Title]; dup {
			continue
		}

		seen[a.Title] = struct{}{}
		titles = append(titles, a.Title)
		newArticles[a.Title] = ArticleFields{
			Text:  text,
			URL:   url,
			Date:  a.Date,
			Image: a.Image,
		}
	}

	if len(newArticles) > 0 {
		if err := s.store.Save(ctx, titles); err != nil {
			log.Printf("gateway: save history: %v", err)
		}
	}

	return newArticles
}
