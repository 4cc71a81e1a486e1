package models

// PageHandle identifies one wiki page. Enumeration produces each handle
// and the content fetcher consumes it exactly once; no two handles in
// one run share a title.
type PageHandle struct {
	Title  string
	PageID int

	// Redirect reports whether the page is a redirect according to API
	// metadata. RedirectKnown is false when that metadata could not be
	// obtained; the fetcher then falls back to sniffing the rendered
	// fragment for a redirect stub.
	Redirect      bool
	RedirectKnown bool
}
