// Package importer reads bookmark collections exported by browsers or by lv.
package importer

import (
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nikbrunner/linkvault/internal/model"
)

// FolderCategory maps a bookmark folder name to a category.
func FolderCategory(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseHTML parses Netscape bookmark HTML. Each bookmark's category is the
// name of its innermost folder (see FolderCategory); bookmarks outside any
// folder get an empty category. IDs are left empty for the store to assign.
func ParseHTML(r io.Reader) ([]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var bookmarks []model.Bookmark

	// Track current folder stack for hierarchy
	var folderStack []string
	pendingFolder := "" // folder waiting to be pushed on next DL
	lastWasBookmark := false

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				pendingFolder = getTextContent(n)
				lastWasBookmark = false
				return // Don't recurse into H3

			case "a":
				href := strings.TrimSpace(getAttr(n, "href"))
				if href == "" || !isWebURL(href) {
					lastWasBookmark = false
					return
				}

				name := getTextContent(n)
				if name == "" {
					name = href // fallback to URL as name
				}

				category := ""
				if len(folderStack) > 0 {
					category = FolderCategory(folderStack[len(folderStack)-1])
				}

				b := model.NewBookmark("", model.BookmarkInput{
					Name:     name,
					URL:      href,
					Category: category,
				}, parseTimestamp(getAttr(n, "add_date")))
				if modified := parseTimestamp(getAttr(n, "last_modified")); !modified.IsZero() {
					b.DateModified = &modified
				}

				bookmarks = append(bookmarks, b)
				lastWasBookmark = true
				return // Don't recurse into A

			case "dd":
				// Description of the preceding bookmark
				if lastWasBookmark {
					bookmarks[len(bookmarks)-1].Description = ownText(n)
				}
				lastWasBookmark = false

			case "dl":
				pushedFolder := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushedFolder = true
				}
				lastWasBookmark = false

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return // Don't recurse further, we handled children
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, nil
}

// isWebURL rejects hrefs with a non-web scheme such as place: or javascript:.
// Scheme-less hrefs are accepted and normalized to https later.
func isWebURL(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
		return true
	}
	return false
}

// parseTimestamp parses a Unix seconds attribute. Returns the zero time when
// missing or invalid.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ts <= 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// ownText returns the text directly inside n, stopping at the first element.
// The parser nests following DT/DL elements inside an unclosed DD.
func ownText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			break
		}
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
