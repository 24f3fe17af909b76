package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	responseSelector = "div.response"
	headingSelector  = "h1, h2"
	groupSelector    = "table.group"
	questionSelector = "tr.question"
)

type htmlParser struct{}

func (htmlParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".html") || strings.HasSuffix(name, ".htm")
}

func (htmlParser) Parse(r io.Reader) ([]Record, error) {
	return Extract(r)
}

// Extract parses a survey export and returns one Record per element
// tagged with the "response" class, in document order.
//
// Inside a response, h1/h2 headings set the current question group and
// tables tagged "group" contribute their "question" rows. A row yields its
// first two cells as question and answer; rows with fewer cells are ignored.
func Extract(r io.Reader) ([]Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var out []Record
	doc.Find(responseSelector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, extractResponse(s))
	})
	return out, nil
}

func extractResponse(container *goquery.Selection) Record {
	var rec Record
	group := ""
	container.Children().Each(func(_ int, c *goquery.Selection) {
		switch {
		case c.Is(headingSelector):
			group = strippedText(c)
		case c.Is(groupSelector):
			c.Find(questionSelector).Each(func(_ int, row *goquery.Selection) {
				cells := row.Find("td")
				if cells.Length() < 2 {
					return
				}
				question := strippedText(cells.Eq(0))
				answer := strippedText(cells.Eq(1))
				key := question
				if group != "" {
					key = group + " - " + question
				}
				rec.Set(key, answer)
			})
		}
	})
	return rec
}

// strippedText concatenates every text node below s, each trimmed, with no
// separator between them.
func strippedText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(strings.TrimSpace(c.Text()))
			return
		}
		b.WriteString(strippedText(c))
	})
	return b.String()
}
