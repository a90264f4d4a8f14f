package classifier

import (
	"encoding/xml"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// 只取正文前缀喂给模型，标题拼上后再按模型输入上限截断
	textPrefixRunes   = 500
	modelInputCeiling = 512
)

const (
	CategoryBreaking = "breaking"
	CategoryAlerting = "alerting"
)

// ArticleFields gateway 转发来的文章字段，按标题索引
type ArticleFields struct {
	Text  string `json:"text"`
	URL   string `json:"url"`
	Date  string `json:"date"`
	Image string `json:"image"`
}

type analyzeRequest struct {
	Articles map[string]ArticleFields `json:"articles"`
}

type feedDocument struct {
	XMLName  xml.Name             `xml:"articles"`
	Articles []CategorizedArticle `xml:"article"`
}

// Server 分类服务：/analyze 接收新文章并打标签，/feed 输出累计的
// 已分类集合
type Server struct {
	analyzer Analyzer
	store    *PublishedStore
}

func NewServer(analyzer Analyzer, store *PublishedStore) *Server {
	return &Server{analyzer: analyzer, store: store}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.POST("/analyze", s.handleAnalyze)
	r.GET("/feed", s.handleFeed)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Articles == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No data received or incorrect format"})
		return
	}

	categorized := s.classify(c, req.Articles)
	s.store.Append(categorized...)

	c.JSON(http.StatusOK, gin.H{
		"message":              "Analysis complete",
		"categorized_articles": categorized,
	})
}

// classify 逐条计算情感并映射到分类。模型正面为 breaking，负面、中性
// 以及分析失败（记日志）都归 alerting
func (s *Server) classify(c *gin.Context, articles map[string]ArticleFields) []CategorizedArticle {
	out := make([]CategorizedArticle, 0, len(articles))

	for title, fields := range articles {
		combined := title + " " + truncateRunes(fields.Text, textPrefixRunes)
		combined = truncateRunes(combined, modelInputCeiling)

		category := CategoryAlerting
		label, err := s.analyzer.Analyze(c.Request.Context(), combined)
		if err != nil {
			log.Printf("classifier: analyze %q: %v, defaulting to %s", title, err, CategoryAlerting)
		} else if label == LabelPositive {
			category = CategoryBreaking
		}

		out = append(out, CategorizedArticle{
			Title:    title,
			Category: category,
			Date:     fields.Date,
			Text:     fields.Text,
			URL:      fields.URL,
			Image:    fields.Image,
		})
		log.Printf("article passed verification: %s (%s)", title, category)
	}

	return out
}

func (s *Server) handleFeed(c *gin.Context) {
	c.XML(http.StatusOK, feedDocument{Articles: s.store.All()})
}

// truncateRunes 按 rune 数截断，避免把多字节字符切到一半
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}
