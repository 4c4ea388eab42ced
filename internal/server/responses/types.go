// Package responses defines the JSON payloads served by the preview server.
package responses

import (
	"time"

	"git.home.luguber.info/inful/docnav/internal/nav"
)

// HealthResponse reports the build currently being served.
type HealthResponse struct {
	Status  string    `json:"status"`
	BuildID string    `json:"build_id"`
	BuiltAt time.Time `json:"built_at"`
	Pages   int       `json:"pages"`
}

// TreeResponse is the full navigation tree.
type TreeResponse struct {
	BuildID string    `json:"build_id"`
	Title   string    `json:"title"`
	Policy  string    `json:"group_pages"`
	Stats   nav.Stats `json:"stats"`
	Nodes   *nav.Tree `json:"nodes"`
}

// FlattenResponse is the linear reading order.
type FlattenResponse struct {
	BuildID string      `json:"build_id"`
	Entries []nav.Entry `json:"entries"`
}

// SectionRef names the top-level entry containing a route.
type SectionRef struct {
	Title string `json:"title"`
	Path  string `json:"path,omitempty"`
}

// LookupResponse describes one route: its node, trail and neighbors.
type LookupResponse struct {
	Route       string     `json:"route"`
	Node        *nav.Node  `json:"node"`
	Breadcrumbs []string   `json:"breadcrumbs"`
	Section     SectionRef `json:"section"`
	Prev        *nav.Entry `json:"prev,omitempty"`
	Next        *nav.Entry `json:"next,omitempty"`
}
