// Package netscape reads and writes the Netscape bookmark file format, the
// HTML layout every major browser can import and export.
//
// Refer to https://learn.microsoft.com/en-us/previous-versions/windows/internet-explorer/ie-developer/platform-apis/aa753582(v=vs.85).
package netscape

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strconv"
	"time"
)

const header = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
`

const defaultTitle = "Bookmarks"

// Entry is a single bookmark.
type Entry struct {
	URL          string
	Title        string
	AddDate      time.Time // written as ADD_DATE epoch seconds, omitted when zero
	LastModified time.Time // written as LAST_MODIFIED epoch seconds, omitted when zero
	Folder       string    // enclosing folder name; only set by Parse
}

// Folder is a named group of entries rendered as an <H3> section.
type Folder struct {
	Name         string
	AddDate      time.Time
	LastModified time.Time
	Entries      []Entry
}

// Document is the content of a bookmark file. Root entries are written
// before folders.
type Document struct {
	Title   string // defaults to "Bookmarks"
	Entries []Entry
	Folders []Folder
}

// Len returns the total number of entries, root and folders combined.
func (d Document) Len() int {
	n := len(d.Entries)
	for _, f := range d.Folders {
		n += len(f.Entries)
	}
	return n
}

// Write renders doc to w. URLs, titles and folder names are HTML-escaped.
func Write(w io.Writer, doc Document) error {
	title := doc.Title
	if title == "" {
		title = defaultTitle
	}

	// bufio keeps the first write error, so checking Flush is enough
	bw := bufio.NewWriter(w)
	_, _ = io.WriteString(bw, header)
	_, _ = fmt.Fprintf(bw, "<TITLE>%s</TITLE>\n", html.EscapeString(title))
	_, _ = fmt.Fprintf(bw, "<H1>%s</H1>\n", html.EscapeString(title))
	_, _ = io.WriteString(bw, "<DL><p>\n")

	for _, e := range doc.Entries {
		writeEntry(bw, e, 1)
	}
	for _, f := range doc.Folders {
		writeFolder(bw, f)
	}

	_, _ = io.WriteString(bw, "</DL><p>\n")
	return bw.Flush()
}

func writeFolder(w *bufio.Writer, f Folder) {
	_, _ = fmt.Fprintf(w, "    <DT><H3%s>%s</H3>\n", dateAttrs(f.AddDate, f.LastModified), html.EscapeString(f.Name))
	_, _ = io.WriteString(w, "    <DL><p>\n")
	for _, e := range f.Entries {
		writeEntry(w, e, 2)
	}
	_, _ = io.WriteString(w, "    </DL><p>\n")
}

func writeEntry(w *bufio.Writer, e Entry, depth int) {
	indent := "    "
	if depth > 1 {
		indent += "    "
	}
	_, _ = fmt.Fprintf(w, "%s<DT><A HREF=\"%s\"%s>%s</A>\n",
		indent, html.EscapeString(e.URL), dateAttrs(e.AddDate, e.LastModified), html.EscapeString(e.Title))
}

// dateAttrs renders the ADD_DATE and LAST_MODIFIED attributes, skipping zero times.
func dateAttrs(added, modified time.Time) string {
	var s string
	if !added.IsZero() {
		s += ` ADD_DATE="` + strconv.FormatInt(added.Unix(), 10) + `"`
	}
	if !modified.IsZero() {
		s += ` LAST_MODIFIED="` + strconv.FormatInt(modified.Unix(), 10) + `"`
	}
	return s
}
