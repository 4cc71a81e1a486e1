package mediawiki

// Typed projections of the MediaWiki API responses this client consumes
// (format=json, formatversion=2). Only consumed fields are declared;
// everything else in the payload is ignored by the decoder.

// apiError is the structured error object the API places under "error".
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// queryEnvelope is the top-level shape of an action=query response.
type queryEnvelope struct {
	Continue map[string]string `json:"continue"`
	Error    *apiError         `json:"error"`
	Query    *queryBody        `json:"query"`
}

type queryBody struct {
	AllPages        []PageListing `json:"allpages"`
	CategoryMembers []PageListing `json:"categorymembers"`
	Pages           []PageInfo    `json:"pages"`
}

// PageListing is one entry of a list=allpages or list=categorymembers
// result.
type PageListing struct {
	PageID int    `json:"pageid"`
	Ns     int    `json:"ns"`
	Title  string `json:"title"`
}

// PageInfo is one entry of a prop=info result. With formatversion=2 the
// redirect and missing markers are booleans, present only when true.
type PageInfo struct {
	PageID   int    `json:"pageid"`
	Title    string `json:"title"`
	Missing  bool   `json:"missing"`
	Redirect bool   `json:"redirect"`
}

// QueryResponse is the validated result of one action=query call.
type QueryResponse struct {
	Continue        map[string]string
	AllPages        []PageListing
	CategoryMembers []PageListing
	Pages           []PageInfo
}

// parseEnvelope is the top-level shape of an action=parse response.
type parseEnvelope struct {
	Error *apiError  `json:"error"`
	Parse *parseBody `json:"parse"`
}

type parseBody struct {
	Title  string `json:"title"`
	PageID int    `json:"pageid"`
	Text   string `json:"text"` // rendered HTML; plain string under formatversion=2
}

// ParseResponse is the validated result of one action=parse call.
type ParseResponse struct {
	Title  string
	PageID int
	HTML   string
}
