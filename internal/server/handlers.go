package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rickgao/niche-research/internal/api"
	"github.com/rickgao/niche-research/internal/provider"
	"github.com/rickgao/niche-research/internal/version"
	"github.com/rickgao/niche-research/internal/view"
)

// healthTimeout bounds all dependency probes of one /health request.
const healthTimeout = 2 * time.Second

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	checks := make(map[string]string, len(s.deps.Checks))
	for _, check := range s.deps.Checks {
		if err := check.Probe(ctx); err != nil {
			checks[check.Name] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		checks[check.Name] = "ok"
	}

	body := gin.H{
		"status":  status,
		"source":  s.deps.Source,
		"version": version.Get(),
		"checks":  checks,
	}
	if s.deps.Feed != nil {
		body["subscribers"] = s.deps.Feed.Subscribers()
	}
	c.JSON(code, body)
}

// -----------------------------------------------------------------------------
// Provider endpoints
// -----------------------------------------------------------------------------

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.deps.Provider.FetchProducts(c.Request.Context(), c.Query("search"))
	if err != nil {
		s.providerError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.ProductsResponse{Products: products})
}

func (s *Server) getCompany(c *gin.Context) {
	company, err := s.deps.Provider.FetchCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.providerError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.CompanyResponse{Company: company})
}

func (s *Server) listCompanyProducts(c *gin.Context) {
	products, err := s.deps.Provider.FetchCompanyProducts(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.providerError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.ProductsResponse{Products: products})
}

func (s *Server) listTrends(c *gin.Context) {
	trends, err := s.deps.Provider.FetchMarketTrends(c.Request.Context())
	if err != nil {
		s.providerError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.TrendsResponse{Trends: trends})
}

func (s *Server) listAlerts(c *gin.Context) {
	alerts, err := s.deps.Provider.FetchInvestmentAlerts(c.Request.Context())
	if err != nil {
		s.providerError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.AlertsResponse{Alerts: alerts})
}

func (s *Server) providerError(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, provider.ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "not_found", Message: err.Error()})
		return
	}
	s.logger.Error("provider request failed", "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "provider_error", Message: "provider request failed"})
}

// -----------------------------------------------------------------------------
// View endpoints
// -----------------------------------------------------------------------------

func (s *Server) dashboardView(c *gin.Context) {
	term, params, err := view.DashboardQuery{
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
		MaxPrice: c.Query("maxPrice"),
	}.Resolve()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid_query", Message: err.Error()})
		return
	}

	sess, release := s.session(c)
	defer release()

	st, err := s.views.Dashboard(c.Request.Context(), sess, term, params)
	writeView(c, st, err)
}

func (s *Server) comparisonView(c *gin.Context) {
	sess, release := s.session(c)
	defer release()

	st, err := s.views.Comparison(c.Request.Context(), sess, c.Query("productId"))
	writeView(c, st, err)
}

func (s *Server) companyView(c *gin.Context) {
	sess, release := s.session(c)
	defer release()

	st, err := s.views.Company(c.Request.Context(), sess, c.Param("id"))
	writeView(c, st, err)
}

func (s *Server) opportunitiesView(c *gin.Context) {
	sess, release := s.session(c)
	defer release()

	st, err := s.views.Opportunities(c.Request.Context(), sess)
	writeView(c, st, err)
}

// session returns the caller's view session, or nil for a one-off load,
// and the func that releases it once the response is written.
func (s *Server) session(c *gin.Context) (*view.Session, func()) {
	id := c.GetHeader(headerSessionID)
	if id == "" {
		return nil, func() {}
	}
	sess := s.sessions.Acquire(id)
	return sess, func() { s.sessions.Release(id, sess) }
}

func writeView[T any](c *gin.Context, st view.State[T], err error) {
	if errors.Is(err, view.ErrStaleResult) {
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "superseded", Message: "a newer request replaced this one"})
		return
	}

	code := http.StatusOK
	if st.Status == view.StatusError {
		code = http.StatusBadGateway
		if errors.Is(st.Err, provider.ErrNotFound) {
			code = http.StatusNotFound
		}
		_ = c.Error(st.Err)
	}
	c.JSON(code, st)
}
