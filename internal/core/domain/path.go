package domain

import "strings"

const (
	// RemoteEntryFileName is the file name remotes publish their metadata under.
	RemoteEntryFileName = "remoteEntry.json"

	// GlobalScope is the scope key that stands for the global imports.
	GlobalScope = "global"
)

// ToScope returns the import map scope of a remote entry URL.
// The remote entry file name is stripped, otherwise a trailing slash is ensured.
func ToScope(url string) string {
	if url == GlobalScope {
		return url
	}
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	if strings.HasSuffix(url, RemoteEntryFileName) {
		return url[:len(url)-len(RemoteEntryFileName)]
	}
	if strings.HasSuffix(url, "/") {
		return url
	}
	return url + "/"
}

// JoinURL joins a base URL and a relative path with exactly one slash.
func JoinURL(base, rel string) string {
	base = strings.TrimRight(base, "/")
	rel = strings.TrimPrefix(rel, "./")
	rel = strings.TrimLeft(rel, "/")
	if base == "" {
		return rel
	}
	if rel == "" {
		return base
	}
	return base + "/" + rel
}

// WithCacheTag appends the cache busting query parameter t to url.
func WithCacheTag(url, tag string) string {
	if tag == "" {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "t=" + tag
}
