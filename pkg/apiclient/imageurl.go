package apiclient

import "strings"

// PlaceholderImage is returned for empty image references.
const PlaceholderImage = "/images/placeholder.jpg"

// ResolveImageURL normalizes a stored image reference into a fetchable
// URL. Absolute URLs (externally hosted assets, Cloudinary) pass
// through unchanged; anything else is treated as a server-relative
// storage path under the API base.
func ResolveImageURL(base, path string) string {
	if path == "" {
		return PlaceholderImage
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// ImageURL resolves path against the client's base URL.
func (c *Client) ImageURL(path string) string {
	return ResolveImageURL(c.baseURL, path)
}
