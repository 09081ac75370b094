// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"video-research/internal/app/service"
	"video-research/internal/domain"
	"video-research/internal/export"
	"video-research/internal/transport/httpserver/dto"
	"video-research/internal/validator"
)

// ResearchHandler serves the research workflows as JSON or CSV.
type ResearchHandler struct {
	service   *service.ResearchService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewResearchHandler creates a new ResearchHandler.
func NewResearchHandler(svc *service.ResearchService, v *validator.Validator, logger *zap.Logger) *ResearchHandler {
	return &ResearchHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Search handles GET /api/v1/search
func (h *ResearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	rs := h.service.Search(c.Context(), req.ToParams())

	return h.respond(c, rs, req.Format)
}

// Trending handles GET /api/v1/trending
func (h *ResearchHandler) Trending(c *fiber.Ctx) error {
	var req dto.TrendingRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	rs := h.service.Trending(c.Context(), req.ToParams())

	return h.respond(c, rs, req.Format)
}

// Competitor handles GET /api/v1/competitor/:channel_id
func (h *ResearchHandler) Competitor(c *fiber.Ctx) error {
	var req dto.CompetitorRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	req.ChannelID = c.Params("channel_id")
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	rs := h.service.Competitor(c.Context(), req.ToParams())

	return h.respond(c, rs, req.Format)
}

func (h *ResearchHandler) respond(c *fiber.Ctx, rs *domain.ResultSet, format string) error {
	if !dto.WantsCSV(format) {
		return c.JSON(dto.FromResultSet(rs))
	}

	c.Attachment(export.FileName(rs.Workflow))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")

	if err := export.Write(c.Response().BodyWriter(), rs); err != nil {
		h.logger.Error("csv export failed",
			zap.String("workflow", string(rs.Workflow)),
			zap.Error(err),
		)

		return fiber.NewError(fiber.StatusInternalServerError, "csv export failed")
	}

	return nil
}

func invalidParams(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: "invalid query parameters",
		Code:  "INVALID_PARAMS",
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   "validation failed",
		Code:    "VALIDATION_ERROR",
		Details: err,
	})
}
