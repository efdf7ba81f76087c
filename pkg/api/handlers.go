package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// =============================================================================
// Grid
// =============================================================================

type depthsRequest struct {
	Columns int         `json:"columns,omitempty"`
	Layout  []grid.Rect `json:"layout"`
}

type depthsResponse struct {
	Depths grid.Depths `json:"depths"`
	Cached bool        `json:"cached"`
}

type placeRequest struct {
	Depths grid.Depths `json:"depths"`
	Width  int         `json:"width,omitempty"`
	Height int         `json:"height"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDepths(w http.ResponseWriter, r *http.Request) {
	var req depthsRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	runner := s.runner
	if req.Columns != 0 && req.Columns != runner.Grid.Columns {
		g := grid.Grid{Columns: req.Columns, WidgetWidth: min(runner.Grid.WidgetWidth, req.Columns)}
		d, err := g.Depths(req.Layout)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, depthsResponse{Depths: d})
		return
	}

	d, cached, err := runner.DepthsWithCacheInfo(r.Context(), req.Layout)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, depthsResponse{Depths: d, Cached: cached})
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	g := s.runner.Grid
	if len(req.Depths) != g.Columns {
		// The vector defines the grid width.
		g = grid.Grid{Columns: len(req.Depths), WidgetWidth: max(min(g.WidgetWidth, len(req.Depths)), 1)}
	}
	width := req.Width
	if width == 0 {
		width = g.WidgetWidth
	}
	p, err := g.PlaceSize(req.Depths, grid.Size{W: width, H: req.Height})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// =============================================================================
// Dashboards
// =============================================================================

func (s *Server) handleListDashboards(w http.ResponseWriter, r *http.Request) {
	org := chi.URLParam(r, "org")
	if err := errors.ValidateSlug("organization", org); err != nil {
		s.writeError(w, err)
		return
	}
	list, err := s.runner.Store.List(r.Context(), org)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.runner.Dashboard(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handlePutDashboard(w http.ResponseWriter, r *http.Request) {
	var d dashboard.Dashboard
	if err := decode(r, &d); err != nil {
		s.writeError(w, err)
		return
	}
	org, id := chi.URLParam(r, "org"), chi.URLParam(r, "id")
	if (d.Organization != "" && d.Organization != org) || (d.ID != "" && d.ID != id) {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "body does not match the dashboard in the URL"))
		return
	}
	d.Organization, d.ID = org, id

	saved, err := s.runner.SaveDashboard(r.Context(), &d)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteDashboard(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.DeleteDashboard(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addWidgetResponse struct {
	Widget     dashboard.Widget `json:"widget"`
	Position   grid.Position    `json:"position"`
	NextDepths grid.Depths      `json:"next_depths"`
}

func (s *Server) handleAddWidget(w http.ResponseWriter, r *http.Request) {
	var widget dashboard.Widget
	if err := decode(r, &widget); err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.runner.AddWidget(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "id"), widget)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, addWidgetResponse{
		Widget:     res.Widget,
		Position:   res.Placement.Position,
		NextDepths: res.Placement.Next,
	})
}

func (s *Server) handleMobileLayout(w http.ResponseWriter, r *http.Request) {
	d, err := s.runner.Dashboard(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dashboard.MobileLayout(d.Widgets))
}
