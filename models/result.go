package models

// FetchResult is the discriminated outcome of fetching one page: either
// cleaned HTML with a nil Err, or an Err with empty HTML. Never both.
type FetchResult struct {
	Title string
	HTML  string
	Err   error
}

// Success builds a successful FetchResult.
func Success(title, html string) FetchResult {
	return FetchResult{Title: title, HTML: html}
}

// Failure builds a failed FetchResult.
func Failure(title string, err error) FetchResult {
	return FetchResult{Title: title, Err: err}
}

// OK reports whether the fetch succeeded.
func (r FetchResult) OK() bool { return r.Err == nil }
