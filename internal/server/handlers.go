package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/p-blackswan/arkide-viewer/internal/guidelines"
	"github.com/p-blackswan/arkide-viewer/internal/metrics"
	"github.com/p-blackswan/arkide-viewer/internal/viewer"
)

type handlers struct {
	loader   *viewer.Loader
	bundle   *guidelines.Bundle
	renderer *guidelines.Renderer
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func newHandlers(loader *viewer.Loader, bundle *guidelines.Bundle, m *metrics.Metrics, logger zerolog.Logger) *handlers {
	return &handlers{
		loader:   loader,
		bundle:   bundle,
		renderer: guidelines.NewRenderer(bundle),
		metrics:  m,
		logger:   logger.With().Str("component", "handlers").Logger(),
	}
}

// fiberRequest adapts a Fiber context to viewer.RequestContext.
type fiberRequest struct {
	c *fiber.Ctx
}

// Query copies the value; Fiber reuses its buffers after the handler returns.
func (r fiberRequest) Query(key string) string {
	return utils.CopyString(r.c.Query(key))
}

func (r fiberRequest) SetHeader(key, value string) {
	r.c.Set(key, value)
}

// Viewer handles GET /viewer?id=<projectID>. Load failures are page data, so
// the response is always 200.
func (h *handlers) Viewer(c *fiber.Ctx) error {
	res := h.loader.Load(c.UserContext(), fiberRequest{c: c})
	return c.JSON(res)
}

type guidelineListResponse struct {
	Pages []guidelines.Page `json:"pages"`
}

// ListGuidelines handles GET /api/v1/guidelines.
func (h *handlers) ListGuidelines(c *fiber.Ctx) error {
	return c.JSON(guidelineListResponse{Pages: h.bundle.List()})
}

// GetGuideline handles GET /api/v1/guidelines/:key[?format=html].
func (h *handlers) GetGuideline(c *fiber.Ctx) error {
	key := guidelines.Key(utils.CopyString(c.Params("key")))
	format := c.Query("format", "markdown")

	var (
		body        string
		contentType string
		err         error
	)
	switch format {
	case "markdown", "md":
		format = "markdown"
		contentType = "text/markdown; charset=utf-8"
		var page guidelines.Page
		page, err = h.bundle.Page(key)
		body = page.Body
	case "html":
		format = "html"
		contentType = fiber.MIMETextHTMLCharsetUTF8
		body, err = h.renderer.HTML(key)
	default:
		return problemResponse(c, fiber.StatusBadRequest,
			"invalid_format", "Bad Request",
			"format must be markdown or html")
	}

	if errors.Is(err, guidelines.ErrUnknownPage) {
		return problemResponse(c, fiber.StatusNotFound,
			"guideline_not_found", "Not Found",
			"Unknown guideline page: "+string(key))
	}
	if err != nil {
		return err
	}

	if h.metrics != nil {
		h.metrics.RecordGuideline(string(key), format)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.SendString(body)
}
