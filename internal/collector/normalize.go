package collector

import (
	"strings"

	"github.com/mmcdole/gofeed"
)

// 各字段可接受的标签别名，首个为主标签；不同源站对同一字段的命名并不统一
var fieldAliases = map[string][]string{
	"title": {"title", "head", "summary", "postTitle"},
	"text":  {"description", "details", "postBody", "content", "body"},
	"date":  {"pubDate", "date", "published", "postDate"},
}

// fieldValue 按标签名取条目文本。gofeed 没认出来的非标准标签都落在
// Custom 里，所以先查 Custom，再回到解析器认识的标准字段
func fieldValue(item *gofeed.Item, tag string) string {
	if v := strings.TrimSpace(item.Custom[tag]); v != "" {
		return v
	}
	switch tag {
	case "title":
		return strings.TrimSpace(item.Title)
	case "description":
		return strings.TrimSpace(item.Description)
	case "content":
		return strings.TrimSpace(item.Content)
	case "pubDate", "published":
		return strings.TrimSpace(item.Published)
	case "link":
		return strings.TrimSpace(item.Link)
	}
	return ""
}

// resolveAliases 用一个源的首条条目确定该源本轮会话使用的标签映射。
// 每个字段取第一个在首条条目上有文本的别名；都没有则回到主标签。
func resolveAliases(first *gofeed.Item) map[string]string {
	resolved := make(map[string]string, len(fieldAliases))
	for field, aliases := range fieldAliases {
		resolved[field] = aliases[0]
		for _, tag := range aliases {
			if fieldValue(first, tag) != "" {
				resolved[field] = tag
				break
			}
		}
	}
	return resolved
}

// feedSession 保存单个源在一轮抓取内的别名解析结果
type feedSession struct {
	aliases map[string]string
}

// field 先试主标签，为空且本会话已做过别名解析时再试解析出的标签。
// 找不到一律返回空串，是否必填由下游校验
func (s *feedSession) field(item *gofeed.Item, name string) string {
	primary := fieldAliases[name][0]
	if v := fieldValue(item, primary); v != "" {
		return v
	}
	if s.aliases == nil {
		return ""
	}
	return fieldValue(item, s.aliases[name])
}

// itemImage 从 media:content / media:thumbnail 扩展取图片地址，按属性取值
// 而非标签文本；两者都没有时返回空串
func itemImage(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, tag := range []string{"content", "thumbnail"} {
		for _, ext := range media[tag] {
			if url := strings.TrimSpace(ext.Attrs["url"]); url != "" {
				return url
			}
		}
	}
	return ""
}

// normalizeItems 把一个源解析出的条目转成规范化文章。
// 若首条条目的主标签没能填满必填字段，则做一次别名解析并在整轮复用
func normalizeItems(items []*gofeed.Item) []Article {
	if len(items) == 0 {
		return nil
	}

	session := &feedSession{}
	first := items[0]
	if fieldValue(first, "title") == "" ||
		fieldValue(first, "description") == "" ||
		fieldValue(first, "pubDate") == "" {
		session.aliases = resolveAliases(first)
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, Article{
			Title: session.field(item, "title"),
			Text:  session.field(item, "text"),
			Date:  session.field(item, "date"),
			URL:   fieldValue(item, "link"),
			Image: itemImage(item),
		})
	}
	return articles
}
