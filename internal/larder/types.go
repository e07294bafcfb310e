package larder

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Authorization schemes accepted by the API.
const (
	AuthToken  = "Token"  // personal token from the Larder settings page
	AuthBearer = "Bearer" // OAuth access token
)

// DefaultBaseURL is the public Larder API endpoint.
const DefaultBaseURL = "https://larder.io/api/1"

// Config holds what the client needs to authenticate against the API.
// It replaces any process-wide session state: each Client owns its own copy.
type Config struct {
	Token      string
	BaseURL    string // defaults to DefaultBaseURL
	AuthScheme string // defaults to AuthToken
}

// Validate reports whether the config can be used to issue requests.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Token, validation.Required),
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.AuthScheme, validation.Required, validation.In(AuthToken, AuthBearer)),
	)
}

// Timestamps holds the raw created/modified values as sent by the API.
// The derived accessors parse the raw value on every call and never cache it.
type Timestamps struct {
	Created  string `json:"created,omitempty"`  // ISO8601, UTC
	Modified string `json:"modified,omitempty"` // ISO8601, UTC
}

// CreatedDate returns the parsed creation time, or the zero time if unset.
func (t Timestamps) CreatedDate() (time.Time, error) {
	return parseTimestamp("created", t.Created)
}

// ModifiedDate returns the parsed modification time, or the zero time if unset.
func (t Timestamps) ModifiedDate() (time.Time, error) {
	return parseTimestamp("modified", t.Modified)
}

// parseTimestamp converts an API date (e.g. 2019-02-17T16:10:28Z) into a UTC time.
// Fractional seconds are accepted because time.RFC3339 parsing allows them.
func parseTimestamp(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &DeserializationError{Source: field, Err: err}
	}
	return t.UTC(), nil
}

// Folder represents a Larder folder. Its bookmarks are not part of the listing
// payload and must be fetched with Client.FolderBookmarks.
type Folder struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
	Icon   string `json:"icon,omitempty"`
	Parent string `json:"parent,omitempty"`
	Links  int    `json:"links,omitempty"` // number of bookmarks, as reported by the server
	// Subfolders is populated when the API nests folders. The web interface
	// cannot create them yet, but the payload allows it.
	Subfolders []Folder `json:"folders,omitempty"`
	Timestamps
}

// Validate reports whether the folder can be saved.
func (f Folder) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 255)),
	)
}

// Bookmark represents a saved link.
type Bookmark struct {
	ID          string         `json:"id,omitempty"`
	URL         string         `json:"url"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Domain      string         `json:"domain,omitempty"`
	Tags        []Tag          `json:"tags,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
	Timestamps

	// FolderID is the folder the bookmark was fetched from. It is a lookup
	// key only; the API does not send it.
	FolderID string `json:"-"`
}

// Tag represents a Larder tag. Tags cannot be looked up by name or ID;
// list them with Client.Tags and pick from the result.
type Tag struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Timestamps
}

// Validate reports whether the tag can be saved.
func (t Tag) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required, validation.Length(1, 255)),
	)
}

// page is one page of a listing response.
type page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`     // absolute URL of the next page, nullable
	Previous *string `json:"previous"` // nullable
	Results  []T     `json:"results"`
}

// folderRequest is the body sent when creating or editing a folder.
type folderRequest struct {
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
	Icon   string `json:"icon,omitempty"`
	Parent string `json:"parent,omitempty"`
}

// tagRequest is the body sent when creating or editing a tag.
type tagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}
