package collector

import (
	"testing"

	"github.com/mmcdole/gofeed"
)

func parseFeed(t *testing.T, doc string) []*gofeed.Item {
	t.Helper()
	feed, err := gofeed.NewParser().ParseString(doc)
	if err != nil {
		t.Fatalf("parse test feed: %v", err)
	}
	return feed.Items
}

func TestNormalizeStandardTags(t *testing.T) {
	items := parseFeed(t, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>std</title>
<item>
  <title>Title A</title>
  <description>Text A</description>
  <pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate>
  <link>http://example.com/a</link>
</item>
</channel></rss>`)

	articles := normalizeItems(items)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	a := articles[0]
	if a.Title != "Title A" || a.Text != "Text A" || a.URL != "http://example.com/a" {
		t.Fatalf("unexpected article: %+v", a)
	}
	if a.Date == "" {
		t.Fatalf("date should come from pubDate, got empty")
	}
}

// 主标签缺失时，应从首条条目解析出别名并对整轮复用
func TestNormalizeAliasFallback(t *testing.T) {
	items := parseFeed(t, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>alias</title>
<item>
  <head>Head A</head>
  <details>Details A</details>
  <postDate>2024-01-01</postDate>
  <link>http://example.com/a</link>
</item>
<item>
  <head>Head B</head>
  <details>Details B</details>
  <postDate>2024-01-02</postDate>
  <link>http://example.com/b</link>
</item>
</channel></rss>`)

	articles := normalizeItems(items)
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "Head A" {
		t.Fatalf("title = %q, want %q (resolved via head alias)", articles[0].Title, "Head A")
	}
	if articles[1].Title != "Head B" || articles[1].Text != "Details B" || articles[1].Date != "2024-01-02" {
		t.Fatalf("second article should reuse the session resolution: %+v", articles[1])
	}
}

func TestResolveAliasesPicksFirstMatching(t *testing.T) {
	items := parseFeed(t, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>r</title>
<item>
  <summary>Summary A</summary>
  <postBody>Body A</postBody>
  <published>2024-01-01</published>
</item>
</channel></rss>`)

	resolved := resolveAliases(items[0])
	if resolved["title"] != "summary" {
		t.Fatalf("title alias = %q, want %q", resolved["title"], "summary")
	}
	if resolved["text"] != "postBody" {
		t.Fatalf("text alias = %q, want %q", resolved["text"], "postBody")
	}
	if resolved["date"] != "published" {
		t.Fatalf("date alias = %q, want %q", resolved["date"], "published")
	}
}

// 任何别名都匹配不到时返回空串而不是报错，必填校验由下游负责
func TestNormalizeMissingFieldsYieldEmpty(t *testing.T) {
	items := parseFeed(t, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>m</title>
<item>
  <link>http://example.com/only-link</link>
</item>
</channel></rss>`)

	articles := normalizeItems(items)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	a := articles[0]
	if a.Title != "" || a.Text != "" || a.Date != "" {
		t.Fatalf("missing fields should be empty, got %+v", a)
	}
	if a.URL != "http://example.com/only-link" {
		t.Fatalf("url = %q", a.URL)
	}
}

func TestItemImageFromMediaTags(t *testing.T) {
	items := parseFeed(t, `<?xml version="1.0"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/"><channel><title>img</title>
<item>
  <title>With content</title>
  <description>x</description>
  <pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate>
  <media:content url="http://img.example.com/full.jpg"/>
</item>
<item>
  <title>With thumbnail</title>
  <description>x</description>
  <pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate>
  <media:thumbnail url="http://img.example.com/thumb.jpg"/>
</item>
<item>
  <title>No image</title>
  <description>x</description>
  <pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate>
</item>
</channel></rss>`)

	if got := itemImage(items[0]); got != "http://img.example.com/full.jpg" {
		t.Fatalf("media:content image = %q", got)
	}
	if got := itemImage(items[1]); got != "http://img.example.com/thumb.jpg" {
		t.Fatalf("media:thumbnail image = %q", got)
	}
	if got := itemImage(items[2]); got != "" {
		t.Fatalf("expected empty image, got %q", got)
	}
}
