// Package larder provides a client for interacting with the Larder API.
//
// Larder exposes folders, bookmarks (called "links" in the API) and tags
// under https://larder.io/api/1/@me/. Listings are returned as pages of the form
// {"count": n, "next": url|null, "previous": url|null, "results": [...]}.
//
// The client never retries and never caches. Every call maps to one request
// per page, and callers decide what to do with the typed errors it returns.
package larder
