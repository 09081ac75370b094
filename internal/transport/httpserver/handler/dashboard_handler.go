package handler

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"video-research/internal/app/service"
	"video-research/internal/domain"
	"video-research/internal/transport/httpserver/dto"
	"video-research/internal/validator"
)

var searchOrders = []domain.SearchOrder{
	domain.SearchOrderViewCount,
	domain.SearchOrderDate,
	domain.SearchOrderRating,
	domain.SearchOrderRelevance,
	domain.SearchOrderTitle,
	domain.SearchOrderVideoCount,
}

// DashboardHandler serves the interactive research form.
type DashboardHandler struct {
	service   *service.ResearchService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.ResearchService, v *validator.Validator, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Render handles GET /dashboard
// The form is shown on every request; a workflow runs only when run=1 is submitted.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	mode := domain.Workflow(c.Query("mode", string(domain.WorkflowSearch)))
	if len(mode.Columns()) == 0 {
		mode = domain.WorkflowSearch
	}

	form := map[string]string{
		"q":          c.Query("q"),
		"order":      c.Query("order", string(domain.SearchOrderViewCount)),
		"region":     c.Query("region", domain.DefaultRegion),
		"category":   c.Query("category"),
		"channel_id": c.Query("channel_id"),
		"max":        c.Query("max", strconv.Itoa(defaultMax(mode))),
	}

	data := fiber.Map{
		"Title":  "Video Research",
		"Mode":   string(mode),
		"Form":   form,
		"Orders": searchOrders,
	}

	if c.Query("run") == "1" {
		h.logger.Debug("dashboard workflow requested", zap.String("workflow", string(mode)))

		rs, err := h.run(c, mode, form)
		if err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			c.Status(fiber.StatusBadRequest)
			data["Errors"] = verrs
		} else {
			data["Result"] = dto.ToTableView(rs)
			data["CSVLink"] = csvLink(mode, form)
		}
	}

	return c.Render("pages/dashboard", data, "layouts/base")
}

func (h *DashboardHandler) run(c *fiber.Ctx, mode domain.Workflow, form map[string]string) (*domain.ResultSet, error) {
	// An unparsable max fails the min=1 rule.
	maxResults, err := strconv.Atoi(form["max"])
	if err != nil {
		maxResults = -1
	}

	switch mode {
	case domain.WorkflowTrending:
		req := dto.TrendingRequest{Region: form["region"], Category: form["category"], MaxResults: maxResults}
		if err := h.validator.Validate(&req); err != nil {
			return nil, err
		}
		return h.service.Trending(c.Context(), req.ToParams()), nil
	case domain.WorkflowCompetitor:
		req := dto.CompetitorRequest{ChannelID: form["channel_id"], MaxResults: maxResults}
		if err := h.validator.Validate(&req); err != nil {
			return nil, err
		}
		return h.service.Competitor(c.Context(), req.ToParams()), nil
	default:
		req := dto.SearchRequest{Query: form["q"], Order: form["order"], MaxResults: maxResults}
		if err := h.validator.Validate(&req); err != nil {
			return nil, err
		}
		return h.service.Search(c.Context(), req.ToParams()), nil
	}
}

// csvLink builds the JSON API URL that downloads the same result as CSV.
func csvLink(mode domain.Workflow, form map[string]string) string {
	q := url.Values{}
	q.Set("format", dto.FormatCSV)
	q.Set("max", form["max"])

	switch mode {
	case domain.WorkflowTrending:
		q.Set("region", form["region"])
		if form["category"] != "" {
			q.Set("category", form["category"])
		}
		return "/api/v1/trending?" + q.Encode()
	case domain.WorkflowCompetitor:
		return "/api/v1/competitor/" + url.PathEscape(form["channel_id"]) + "?" + q.Encode()
	default:
		q.Set("q", form["q"])
		q.Set("order", form["order"])
		return "/api/v1/search?" + q.Encode()
	}
}

func defaultMax(mode domain.Workflow) int {
	switch mode {
	case domain.WorkflowTrending:
		return domain.DefaultTrendingMax
	case domain.WorkflowCompetitor:
		return domain.DefaultCompetitorMax
	default:
		return domain.DefaultSearchMax
	}
}
