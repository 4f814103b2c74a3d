package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// boilerplateSelector matches elements that never carry policy text
const boilerplateSelector = "script, style, noscript, template, svg, iframe, nav, header, footer, form"

// contentSelector matches the elements most likely to hold the main document
const contentSelector = "main, article, [role=main]"

// blockSelector matches elements whose text should be separated from their neighbours
const blockSelector = "p, div, section, li, dt, dd, br, tr, td, th, h1, h2, h3, h4, h5, h6, blockquote, pre"

// ReadableText extracts the visible document text and the page title from HTML.
// Boilerplate is dropped, the main content region is preferred over the whole
// body, and whitespace is collapsed to single spaces.
func ReadableText(html string) (text, title string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", ""
	}

	title = collapse(doc.Find("title").First().Text())

	doc.Find(boilerplateSelector).Remove()
	doc.Find(blockSelector).AfterHtml(" ")

	root := doc.Find(contentSelector).First()
	if root.Length() == 0 || collapse(root.Text()) == "" {
		root = doc.Find("body")
	}

	return collapse(root.Text()), title
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
