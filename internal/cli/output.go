package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/akhdanfadh/larderkeep/internal/backup"
	"github.com/akhdanfadh/larderkeep/internal/netscape"
)

func printBackupSummary(w io.Writer, res *backup.Result, elapsed time.Duration) {
	_, _ = fmt.Fprintf(w, "\n=== Summary ===\n")
	_, _ = fmt.Fprintf(w, "Folders         : %d\n", res.Folders)
	_, _ = fmt.Fprintf(w, "Bookmarks       : %d\n", res.Bookmarks)
	_, _ = fmt.Fprintf(w, "Total time      : %.2fs\n", elapsed.Seconds())
	if res.Folders > 0 {
		_, _ = fmt.Fprintf(w, "  Avg per folder: %dms\n", (elapsed / time.Duration(res.Folders)).Milliseconds())
	}
}

// printInspectSummary prints counts per folder and the date range of a bookmark file.
func printInspectSummary(w io.Writer, path string, entries []netscape.Entry) {
	_, _ = fmt.Fprintf(w, "=== %s ===\n", path)
	_, _ = fmt.Fprintf(w, "Bookmarks       : %d\n", len(entries))

	perFolder := make(map[string]int)
	for _, e := range entries {
		perFolder[e.Folder]++
	}
	// a flat file has only root entries, nothing to break down
	if _, flat := perFolder[""]; len(perFolder) > 1 || (len(perFolder) == 1 && !flat) {
		names := make([]string, 0, len(perFolder))
		for name := range perFolder {
			names = append(names, name)
		}
		sort.Strings(names)

		_, _ = fmt.Fprintf(w, "\nFolders:\n")
		for _, name := range names {
			label := name
			if label == "" {
				label = "(root)"
			}
			_, _ = fmt.Fprintf(w, "  %-14s: %d\n", label, perFolder[name])
		}
	}

	// find date range, entries without ADD_DATE are ignored
	var oldest, newest time.Time
	for _, e := range entries {
		if e.AddDate.IsZero() {
			continue
		}
		if oldest.IsZero() || e.AddDate.Before(oldest) {
			oldest = e.AddDate
		}
		if e.AddDate.After(newest) {
			newest = e.AddDate
		}
	}
	if !oldest.IsZero() {
		_, _ = fmt.Fprintf(w, "\nDate range:\n")
		_, _ = fmt.Fprintf(w, "  Oldest        : %s\n", oldest.Format("2006-01-02"))
		_, _ = fmt.Fprintf(w, "  Newest        : %s\n", newest.Format("2006-01-02"))
	}
}
