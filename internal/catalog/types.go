package catalog

// Album is a catalog list entry as returned by GET /albums.
type Album struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// AlbumDetail mirrors GET /albums/{id}. The endpoint may omit any field or
// send it as null, so every field is optional.
type AlbumDetail struct {
	ID          *string `json:"id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Artist      *string `json:"artist,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Value returns the pointed-to string or "" with ok=false when absent.
func Value(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}
