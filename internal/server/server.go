// Package server exposes the conversation engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/easeaico/maitri/internal/agent"
	"github.com/easeaico/maitri/internal/emotion"
	"github.com/easeaico/maitri/internal/lexicon"
	"github.com/easeaico/maitri/internal/report"
	"github.com/easeaico/maitri/internal/types"
)

const defaultAstronautID = "ASTRO001"

// Engine generates replies.
type Engine interface {
	GenerateResponse(ctx context.Context, userID, persona, text string, tone emotion.ToneSignal) (*types.ResponseEnvelope, error)
}

// Reporter builds crisis reports.
type Reporter interface {
	CrisisReport(ctx context.Context, userID string) (*types.CrisisReport, error)
}

// Handler serves the HTTP API.
type Handler struct {
	engine   Engine
	reporter Reporter
	schema   *jsonschema.Resolved
}

// NewHandler returns a Handler.
func NewHandler(engine Engine, reporter Reporter) (*Handler, error) {
	schema, err := sendMessageSchema()
	if err != nil {
		return nil, err
	}
	return &Handler{engine: engine, reporter: reporter, schema: schema}, nil
}

// NewApp builds the fiber app. When reg is non-nil, HTTP metrics are recorded on it
// and served at /metrics.
func NewApp(h *Handler, reg *prometheus.Registry) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "maitri",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    64 * 1024,
	})
	app.Use(recover.New())

	if reg != nil {
		prom := fiberprometheus.NewWithRegistry(reg, "maitri", "", "", nil)
		prom.RegisterAt(app, "/metrics")
		app.Use(prom.Middleware)
	}

	app.Get("/healthz", h.Health)
	api := app.Group("/api")
	api.Post("/send_message", h.SendMessage)
	api.Get("/get_crisis_report/:astronaut_id", h.CrisisReport)
	api.Get("/personas", h.Personas)
	return app
}

// Health responds with server health status.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// SendMessage runs one conversation turn.
func (h *Handler) SendMessage(c *fiber.Ctx) error {
	var raw map[string]any
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if err := h.schema.Validate(raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req sendMessageRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if req.AstronautID == "" {
		req.AstronautID = defaultAstronautID
	}
	if req.Persona == "" {
		req.Persona = lexicon.DefaultPersona
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Empty message"})
	}

	var tone emotion.ToneSignal
	if len(req.Tone) > 0 {
		tone = make(emotion.ToneSignal, len(req.Tone))
		for label, v := range req.Tone {
			tone[types.Emotion(strings.ToLower(label))] = v
		}
	}

	envelope, err := h.engine.GenerateResponse(c.UserContext(), req.AstronautID, req.Persona, req.Message, tone)
	if errors.Is(err, agent.ErrEmptyMessage) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Empty message"})
	}
	if err != nil {
		slog.Error("failed to generate response", "astronaut_id", req.AstronautID, "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(envelope)
}

// CrisisReport returns the crisis report for an astronaut.
func (h *Handler) CrisisReport(c *fiber.Ctx) error {
	userID := c.Params("astronaut_id")
	rep, err := h.reporter.CrisisReport(c.UserContext(), userID)
	if errors.Is(err, report.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err != nil {
		slog.Error("failed to build crisis report", "astronaut_id", userID, "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rep)
}

// Personas lists the available persona keys.
func (h *Handler) Personas(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"personas": lexicon.PersonaKeys(),
		"default":  lexicon.DefaultPersona,
	})
}
