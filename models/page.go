package models

// PageRequest is one iteration of the crawl loop: the page index and the
// URL derived from it. Built fresh per iteration, never stored.
type PageRequest struct {
	Index int
	URL   string
}

// PageRecord is one successful fetch as it appears in the manifest:
// the local filename and the URL the bytes came from.
type PageRecord struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}
