package handlers

import (
	"log/slog"
	"net/http"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/server/responses"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// SiteSource yields the Site to serve. Implementations must be safe for
// concurrent use; watch.Watcher is one.
type SiteSource interface {
	Current() *site.Site
}

// Static serves one fixed Site.
type Static struct{ Site *site.Site }

// Current implements SiteSource.
func (s Static) Current() *site.Site { return s.Site }

// NavHandlers serves the navigation API.
type NavHandlers struct {
	source       SiteSource
	recorder     metrics.Recorder
	errorAdapter *foundationerrors.HTTPErrorAdapter
}

// NewNavHandlers creates handlers reading from source. A nil recorder disables metrics.
func NewNavHandlers(source SiteSource, recorder metrics.Recorder, logger *slog.Logger) *NavHandlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &NavHandlers{
		source:       source,
		recorder:     recorder,
		errorAdapter: foundationerrors.NewHTTPErrorAdapter(logger),
	}
}

func (h *NavHandlers) current(w http.ResponseWriter, r *http.Request) (*site.Site, bool) {
	s := h.source.Current()
	if s == nil || s.Tree == nil {
		err := foundationerrors.RuntimeError("navigation not built yet").Retryable().Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return nil, false
	}
	return s, true
}

func (h *NavHandlers) write(w http.ResponseWriter, r *http.Request, v any) {
	if err := writeJSON(w, r, http.StatusOK, v); err != nil {
		internalErr := foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to write response").Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}

// HandleHealth reports the build being served.
func (h *NavHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w, r)
	if !ok {
		return
	}
	h.write(w, r, responses.HealthResponse{
		Status:  "ok",
		BuildID: s.BuildID,
		BuiltAt: s.BuiltAt.UTC(),
		Pages:   s.Tree.Len(),
	})
}

// HandleTree serves the whole tree.
func (h *NavHandlers) HandleTree(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w, r)
	if !ok {
		return
	}
	h.write(w, r, responses.TreeResponse{
		BuildID: s.BuildID,
		Title:   s.Config.Site.Title,
		Policy:  string(s.Tree.Policy()),
		Stats:   s.Tree.Stats(),
		Nodes:   s.Tree,
	})
}

// HandleFlatten serves the reading order.
func (h *NavHandlers) HandleFlatten(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w, r)
	if !ok {
		return
	}
	entries := s.Tree.Entries()
	if entries == nil {
		entries = []nav.Entry{}
	}
	h.write(w, r, responses.FlattenResponse{BuildID: s.BuildID, Entries: entries})
}

// HandleLookup resolves ?route= to its node, breadcrumbs, section and neighbors.
// Unknown routes answer 404.
func (h *NavHandlers) HandleLookup(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Query().Get("route")
	if route == "" {
		err := foundationerrors.ValidationError("missing route parameter").
			WithContext("parameter", "route").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	s, ok := h.current(w, r)
	if !ok {
		return
	}

	node, err := s.Tree.Lookup(route)
	if err != nil {
		h.recorder.IncLookup(metrics.LookupMiss)
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.recorder.IncLookup(metrics.LookupHit)

	crumbs, _ := s.Tree.Breadcrumbs(route)
	resp := responses.LookupResponse{
		Route:       route,
		Node:        node,
		Breadcrumbs: crumbs,
	}
	if sec := s.Tree.ActiveSection(route); sec != nil {
		resp.Section = responses.SectionRef{Title: sec.Title(), Path: sec.Path()}
	}
	// Page groups are absent from the reading order under the exclude policy.
	if prev, next, err := s.Tree.Neighbors(route); err == nil {
		resp.Prev, resp.Next = prev, next
	}
	h.write(w, r, resp)
}
