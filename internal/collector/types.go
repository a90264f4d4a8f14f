package collector

import "encoding/xml"

// Article 规范化后的候选文章，字段名不再依赖源站的标签习惯
type Article struct {
	Title string `xml:"title"`
	Text  string `xml:"text"`
	Date  string `xml:"date"`
	URL   string `xml:"url"`
	Image string `xml:"image,omitempty"`
}

// Batch 一轮采集产出的批次，整体作为一份 XML 文档推送给 gateway
type Batch struct {
	XMLName  xml.Name  `xml:"news"`
	Articles []Article `xml:"article"`
}
