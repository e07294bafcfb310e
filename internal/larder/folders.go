package larder

import (
	"context"
	"fmt"
)

const (
	foldersPath = "@me/folders"
	tagsPath    = "@me/tags"
)

// Folders lists every folder of the account in server order.
// The returned folders carry no bookmarks; use FolderBookmarks for those.
func (c *Client) Folders(ctx context.Context) ([]Folder, error) {
	folders, err := listAll[Folder](ctx, c, foldersPath+"/")
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	return folders, nil
}

// FolderBookmarks lists the bookmarks of the given folder in server order.
//
// NOTE: Larder's canonical folder URL returns the folder's bookmarks rather
// than the folder itself. Nothing is memoized: every call goes to the API and
// returns a fresh slice.
func (c *Client) FolderBookmarks(ctx context.Context, folder Folder) ([]Bookmark, error) {
	if folder.ID == "" {
		return nil, &ConfigurationError{Op: "list folder bookmarks", Err: ErrMissingID}
	}

	bookmarks, err := listAll[Bookmark](ctx, c, foldersPath+"/"+folder.ID+"/")
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks of folder %q: %w", folder.Name, err)
	}
	for i := range bookmarks {
		bookmarks[i].FolderID = folder.ID
	}
	return bookmarks, nil
}

// SaveFolder creates the folder when it has no ID, or edits it otherwise.
// On success the folder is updated with the server's representation.
func (c *Client) SaveFolder(ctx context.Context, folder *Folder) error {
	if err := folder.Validate(); err != nil {
		return &ConfigurationError{Op: "save folder", Err: err}
	}

	req := folderRequest{Name: folder.Name, Color: folder.Color, Icon: folder.Icon, Parent: folder.Parent}
	if err := c.save(ctx, foldersPath, folder.ID, req, folder); err != nil {
		return fmt.Errorf("saving folder %q: %w", folder.Name, err)
	}
	return nil
}

// DeleteFolder deletes the folder. A folder without ID is rejected without a request.
func (c *Client) DeleteFolder(ctx context.Context, folder Folder) error {
	if err := c.remove(ctx, foldersPath, folder.ID); err != nil {
		return fmt.Errorf("deleting folder %q: %w", folder.Name, err)
	}
	return nil
}
