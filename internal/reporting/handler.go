package reporting

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salesdash_backend/platform/apperr"
	"salesdash_backend/platform/httpkit"
	"salesdash_backend/platform/validator"
)

const dateParamLayout = "2006-01-02"

// reportQuery is the filter query string shared by all report endpoints.
type reportQuery struct {
	Agent     string `form:"agent" validate:"max=200"`
	Country   string `form:"country" validate:"max=200"`
	Status    string `form:"status" validate:"max=200"`
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// Handler handles reporting HTTP requests.
type Handler struct {
	service *Service
	val     *validator.Validator
}

// NewHandler creates a new reporting handler.
func NewHandler(service *Service, val *validator.Validator) *Handler {
	return &Handler{service: service, val: val}
}

// parseCriteria binds and validates the filter query parameters.
func (h *Handler) parseCriteria(c *gin.Context) (Criteria, error) {
	var query reportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return Criteria{}, apperr.Validation("invalid query parameters")
	}
	if err := h.val.Struct(query); err != nil {
		return Criteria{}, apperr.Validation("invalid filter values, dates must be YYYY-MM-DD")
	}

	criteria := Criteria{
		Agent:   query.Agent,
		Country: query.Country,
		Status:  query.Status,
	}
	if query.StartDate != "" {
		parsed, _ := time.Parse(dateParamLayout, query.StartDate)
		criteria.StartDate = &parsed
	}
	if query.EndDate != "" {
		parsed, _ := time.Parse(dateParamLayout, query.EndDate)
		criteria.EndDate = &parsed
	}

	if criteria.StartDate != nil && criteria.EndDate != nil && criteria.EndDate.Before(*criteria.StartDate) {
		return Criteria{}, apperr.Validation("end_date before start_date")
	}

	return criteria, nil
}

// HandleRecords returns the filtered raw records.
// GET /api/v1/reports/records
func (h *Handler) HandleRecords(c *gin.Context) {
	criteria, err := h.parseCriteria(c)
	if httpkit.HandleError(c, err) {
		return
	}

	recs, err := h.service.Records(c.Request.Context(), criteria)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": recs, "count": len(recs)})
}

// HandleSummary returns the headline metrics.
// GET /api/v1/reports/summary
func (h *Handler) HandleSummary(c *gin.Context) {
	criteria, err := h.parseCriteria(c)
	if httpkit.HandleError(c, err) {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), criteria)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusOK, summary)
}

// HandleAgents returns the per-agent breakdown.
// GET /api/v1/reports/agents
func (h *Handler) HandleAgents(c *gin.Context) {
	criteria, err := h.parseCriteria(c)
	if httpkit.HandleError(c, err) {
		return
	}

	stats, err := h.service.Agents(c.Request.Context(), criteria)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"agents": stats})
}

// HandleCountries returns the per-country breakdown.
// GET /api/v1/reports/countries
func (h *Handler) HandleCountries(c *gin.Context) {
	criteria, err := h.parseCriteria(c)
	if httpkit.HandleError(c, err) {
		return
	}

	stats, err := h.service.Countries(c.Request.Context(), criteria)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"countries": stats})
}

// HandleOutcomes returns the call outcome tally.
// GET /api/v1/reports/outcomes
func (h *Handler) HandleOutcomes(c *gin.Context) {
	criteria, err := h.parseCriteria(c)
	if httpkit.HandleError(c, err) {
		return
	}

	counts, err := h.service.Outcomes(c.Request.Context(), criteria)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcomes": counts})
}

// HandleIssues returns the extracted issue tally.
// GET /api/v1/reports/issues
func (h *Handler) HandleIssues(c *gin.Context) {
	criteria, err := h.parseCriteria(c)
	if httpkit.HandleError(c, err) {
		return
	}

	counts, err := h.service.Issues(c.Request.Context(), criteria)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"issues": counts})
}

// HandleFilters returns the selectable filter values.
// GET /api/v1/reports/filters
func (h *Handler) HandleFilters(c *gin.Context) {
	options, err := h.service.FilterOptions(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusOK, options)
}
