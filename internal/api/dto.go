package api

import "github.com/catenary/site/internal/siteservice"

// PageInfo is the metadata of a single page (aliased from the domain layer).
type PageInfo = siteservice.PageInfo

// PageListResponse wraps the page listing.
type PageListResponse struct {
	Version string     `json:"version"`
	Pages   []PageInfo `json:"pages"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
