// Package exporter writes the collection in formats browsers and lv can import.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/linkvault/internal/model"
)

// DefaultExportPath returns the default export file path for ext ("html" or "json").
// Format: ~/Downloads/linkvault-export-YYYY-MM-DD.<ext>
func DefaultExportPath(ext string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("linkvault-export-%s.%s", time.Now().Format("2006-01-02"), ext)
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders records as Netscape bookmark HTML. Each category becomes
// a folder, in first-seen order; uncategorized records sit at the root.
func ExportHTML(records []model.Bookmark) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	prefix := "    "
	for _, category := range model.Categories(records) {
		if category == "" {
			continue
		}
		fmt.Fprintf(&b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(model.CategoryLabel(category)))
		fmt.Fprintf(&b, "%s<DL><p>\n", prefix)
		writeBookmarks(&b, model.ByCategory(records, category), prefix+"    ")
		fmt.Fprintf(&b, "%s</DL><p>\n", prefix)
	}
	writeBookmarks(&b, model.ByCategory(records, ""), prefix)

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeBookmarks(b *strings.Builder, records []model.Bookmark, prefix string) {
	for _, r := range records {
		fmt.Fprintf(b, "%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\"", prefix, html.EscapeString(r.URL), r.DateAdded.Unix())
		if r.DateModified != nil {
			fmt.Fprintf(b, " LAST_MODIFIED=\"%d\"", r.DateModified.Unix())
		}
		fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(r.Name))
		if r.Description != "" {
			fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(r.Description))
		}
	}
}
