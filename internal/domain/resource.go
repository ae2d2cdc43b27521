// Package domain defines the core entities of the Trackstash server.
package domain

// Tag is a caller-supplied label/value pair attached to a resource.
// Duplicates are permitted and order is preserved.
type Tag struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Resource is a bookmarked music reference — a link to a track or performance
// somewhere on the web, annotated with artist and title.
// ID is assigned by the service at creation time and never changes; it doubles
// as the document key in the store.
type Resource struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Type   string `json:"type,omitempty"`
	Tags   []Tag  `json:"tags,omitempty"`
}

// Clone returns a deep copy of the resource.
// Store implementations hand out clones so callers never alias stored state.
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	clone := *r
	if r.Tags != nil {
		clone.Tags = make([]Tag, len(r.Tags))
		copy(clone.Tags, r.Tags)
	}
	return &clone
}
