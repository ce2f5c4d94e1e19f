package domain

// Article is the uniform record flowing through the pipeline: created by an
// extractor, enriched with a summary, rendered, then discarded. Never persisted.
type Article struct {
	Title         string
	URL           string
	Source        string
	PublishedDate string
	Summary       string
	Content       string
}

// Valid reports whether the record satisfies the extraction contract:
// title and URL must both be present.
func (a Article) Valid() bool {
	return a.Title != "" && a.URL != ""
}
