// Package backup exports every bookmark of a Larder account into a Netscape
// bookmark file.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/akhdanfadh/larderkeep/internal/larder"
	"github.com/akhdanfadh/larderkeep/internal/logger"
	"github.com/akhdanfadh/larderkeep/internal/netscape"
)

// fileNameLayout is the time layout of the backup file name, local time with second precision.
const fileNameLayout = "2006-01-02_15:04:05"

// ErrNotDirectory is returned when the destination path exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrVerification is returned when the written file does not read back to the
// number of bookmarks that were fetched.
var ErrVerification = errors.New("backup verification failed")

// FilesystemError is returned when the destination cannot hold the backup.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem error on %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// Source defines the interface for fetching folders and their bookmarks.
type Source interface {
	Folders(ctx context.Context) ([]larder.Folder, error)
	FolderBookmarks(ctx context.Context, folder larder.Folder) ([]larder.Bookmark, error)
}

// Result describes a completed backup.
type Result struct {
	Path      string
	Folders   int
	Bookmarks int
}

// Exporter represents the backup pipeline orchestrator.
type Exporter struct {
	source        Source
	logger        logger.Logger
	progresser    logger.Progresser
	groupByFolder bool
	now           func() time.Time
}

// Option configures the Exporter.
type Option func(*Exporter)

// New creates a new Exporter reading from the given source.
func New(source Source, opts ...Option) *Exporter {
	e := &Exporter{
		source: source,
		logger: logger.Noop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithLogger sets the logger for info/warn/error messages.
func WithLogger(l logger.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// WithProgress sets a progresser updated after each folder is fetched.
func WithProgress(p logger.Progresser) Option {
	return func(e *Exporter) {
		e.progresser = p
	}
}

// WithGroupByFolder keeps each folder as its own <H3> section instead of the
// default flat list.
func WithGroupByFolder(group bool) Option {
	return func(e *Exporter) {
		e.groupByFolder = group
	}
}

// WithClock sets the time source used to name the backup file.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// FileName returns the backup file name for the given time.
func FileName(t time.Time) string {
	return "LarderBackup_" + t.Format(fileNameLayout) + ".html"
}

// Run fetches all folders, then each folder's bookmarks one request at a time,
// and writes them into destDir.
//
// The file is written under a temporary name, read back to check the entry
// count, then renamed. On any error the temporary file is removed and no
// backup file is left behind.
func (e *Exporter) Run(ctx context.Context, destDir string) (*Result, error) {
	// acquire the temp file first so an unusable destination fails before any request
	tmp, err := createTemp(destDir)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	doc, folderCount, err := e.collect(ctx)
	if err != nil {
		return nil, err
	}

	if err := netscape.Write(tmp, doc); err != nil {
		return nil, &FilesystemError{Path: tmp.Name(), Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return nil, &FilesystemError{Path: tmp.Name(), Err: err}
	}
	if err := tmp.Close(); err != nil {
		return nil, &FilesystemError{Path: tmp.Name(), Err: err}
	}

	if err := verify(tmp.Name(), doc.Len()); err != nil {
		return nil, err
	}

	target := filepath.Join(destDir, FileName(e.now()))
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return nil, &FilesystemError{Path: tmp.Name(), Err: err}
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return nil, &FilesystemError{Path: target, Err: err}
	}
	committed = true

	e.logger.Info("wrote %d bookmarks from %d folders to %s", doc.Len(), folderCount, target)
	return &Result{Path: target, Folders: folderCount, Bookmarks: doc.Len()}, nil
}

// collect walks the folders sequentially and builds the document.
func (e *Exporter) collect(ctx context.Context) (netscape.Document, int, error) {
	var doc netscape.Document

	e.logger.Info("retrieving folders...")
	folders, err := e.source.Folders(ctx)
	if err != nil {
		return doc, 0, fmt.Errorf("fetching folders: %w", err)
	}
	e.logger.Info("found %d folders", len(folders))

	for i, folder := range folders {
		e.logger.Debug("fetching bookmarks for %s", folder.Name)
		bookmarks, err := e.source.FolderBookmarks(ctx, folder)
		if err != nil {
			return doc, 0, fmt.Errorf("fetching bookmarks: %w", err)
		}

		entries, err := e.toEntries(bookmarks)
		if err != nil {
			return doc, 0, fmt.Errorf("folder %q: %w", folder.Name, err)
		}

		if e.groupByFolder {
			added, modified, err := recordDates(folder.Timestamps)
			if err != nil {
				return doc, 0, fmt.Errorf("folder %q: %w", folder.Name, err)
			}
			// within a folder section entries are listed by title
			slices.SortStableFunc(entries, func(a, b netscape.Entry) int {
				return strings.Compare(a.Title, b.Title)
			})
			doc.Folders = append(doc.Folders, netscape.Folder{
				Name:         folder.Name,
				AddDate:      added,
				LastModified: modified,
				Entries:      entries,
			})
		} else {
			doc.Entries = append(doc.Entries, entries...)
		}

		e.logger.Debug("fetched %d bookmarks for %s", len(bookmarks), folder.Name)
		if e.progresser != nil {
			e.progresser.Update(i+1, len(folders))
		}
	}
	return doc, len(folders), nil
}

// toEntries maps bookmarks onto file entries. Tags are not exported.
func (e *Exporter) toEntries(bookmarks []larder.Bookmark) ([]netscape.Entry, error) {
	entries := make([]netscape.Entry, 0, len(bookmarks))
	for _, bm := range bookmarks {
		if bm.URL == "" {
			e.logger.Warn("skipping bookmark %s without URL", bm.ID)
			continue
		}
		added, modified, err := recordDates(bm.Timestamps)
		if err != nil {
			return nil, fmt.Errorf("bookmark %s: %w", bm.URL, err)
		}
		entries = append(entries, netscape.Entry{
			URL:          bm.URL,
			Title:        bm.Title,
			AddDate:      added,
			LastModified: modified,
		})
	}
	return entries, nil
}

func recordDates(ts larder.Timestamps) (time.Time, time.Time, error) {
	added, err := ts.CreatedDate()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	modified, err := ts.ModifiedDate()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return added, modified, nil
}

// createTemp checks the destination directory and creates the temporary backup file in it.
func createTemp(destDir string) (*os.File, error) {
	info, err := os.Stat(destDir)
	if err != nil {
		return nil, &FilesystemError{Path: destDir, Err: err}
	}
	if !info.IsDir() {
		return nil, &FilesystemError{Path: destDir, Err: ErrNotDirectory}
	}

	tmp, err := os.CreateTemp(destDir, ".larderbackup-*.tmp")
	if err != nil {
		return nil, &FilesystemError{Path: destDir, Err: err}
	}
	return tmp, nil
}

// verify reads the written file back and checks it holds want entries.
func verify(path string, want int) error {
	f, err := os.Open(path)
	if err != nil {
		return &FilesystemError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	entries, err := netscape.Parse(f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerification, err)
	}
	if len(entries) != want {
		return fmt.Errorf("%w: read back %d bookmarks, wrote %d", ErrVerification, len(entries), want)
	}
	return nil
}
