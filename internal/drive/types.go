package drive

// FileMeta is the subset of remote file metadata the rest of the
// application works with. Parents holds at most one useful entry in
// practice: Drive files created through the UI have a single parent.
type FileMeta struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	MimeType string   `json:"mime_type"`
	Parents  []string `json:"parents,omitempty"`
	Size     int64    `json:"size,omitempty"`
}
