package netscape

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Parse reads a bookmark file and returns its entries in document order.
// Each entry's Folder is the innermost <H3> it sits under, or "" at the root.
// Anchors without HREF are skipped.
func Parse(r io.Reader) ([]Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0)
	var folders []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "h3" {
			folders = append(folders, strings.TrimSpace(textContent(n)))
		}

		if n.Type == html.ElementNode && n.Data == "a" {
			e := Entry{Title: strings.TrimSpace(textContent(n))}
			for _, attr := range n.Attr {
				switch attr.Key {
				case "href":
					e.URL = attr.Val
				case "add_date":
					e.AddDate = parseEpoch(attr.Val)
				case "last_modified":
					e.LastModified = parseEpoch(attr.Val)
				}
			}
			if len(folders) > 0 {
				e.Folder = folders[len(folders)-1]
			}
			if e.URL != "" {
				entries = append(entries, e)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type != html.ElementNode || len(folders) == 0 {
			return
		}
		// leaving a folder's <DL> closes the folder; the root <DL> has none to close.
		// A heading without a <DL> is an empty folder, closed with its <DT>.
		if (n.Data == "dl" && hasFolderHeading(n)) || (n.Data != "dl" && endsWithBareHeading(n)) {
			folders = folders[:len(folders)-1]
		}
	}

	walk(doc)
	return entries, nil
}

// hasFolderHeading reports whether the <DL> belongs to a folder, i.e. an <H3>
// precedes it among its siblings.
func hasFolderHeading(dl *html.Node) bool {
	for s := dl.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && s.Data == "h3" {
			return true
		}
	}
	return false
}

// endsWithBareHeading reports whether the last <H3> or <DL> child of n is an
// <H3>, i.e. a folder heading that no list follows.
func endsWithBareHeading(n *html.Node) bool {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "dl":
			return false
		case "h3":
			return true
		}
	}
	return false
}

// textContent concatenates all text below n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}

// parseEpoch converts an epoch-seconds attribute; invalid values yield the zero time.
func parseEpoch(s string) time.Time {
	sec, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
