package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var vnDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// ParseDateVN 解析 DD/MM/YYYY（也接受 YYYY-MM-DD）；日超出当月天数时取月末，如 29/02/2025 -> 2025-02-28
func ParseDateVN(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	m := vnDate.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	d, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(m[3])
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	last := time.Date(y, time.Month(mo)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if d > last {
		d = last
	}
	return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC), true
}

// CleanHTML 抓取来的描述里常带 HTML：块级元素换行，li 加 "• "，多余空白合并
func CleanHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	var b strings.Builder
	walk(doc.Find("body"), &b)

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func walk(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "#text":
			b.WriteString(s.Text())
		case "#comment", "script", "style":
		case "br":
			b.WriteString("\n")
		case "li":
			b.WriteString("\n• ")
			walk(s, b)
			b.WriteString("\n")
		case "p", "div", "ul", "ol", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
			walk(s, b)
			b.WriteString("\n")
		default:
			walk(s, b)
		}
	})
}
