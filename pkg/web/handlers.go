package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/camera"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/exposure"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/guides"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/hub"
)

// handleSnapshot returns the engine's current published outputs.
func (s *Server) handleSnapshot(c *fiber.Ctx) error {
	return c.JSON(s.engine.Snapshot())
}

// assistConfigResponse mirrors the runtime-tunable engine settings.
type assistConfigResponse struct {
	Mode   exposure.Mode `json:"mode"`
	Guides []guides.Type `json:"guides"`
}

// handleAssistConfig returns the current engine configuration.
func (s *Server) handleAssistConfig(c *fiber.Ctx) error {
	cfg := s.engine.Config()
	return c.JSON(assistConfigResponse{Mode: cfg.Mode, Guides: cfg.Guides})
}

// handleSetMode switches the exposure suggestion policy.
func (s *Server) handleSetMode(c *fiber.Ctx) error {
	var req struct {
		Mode exposure.Mode `json:"mode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if err := s.engine.SetMode(req.Mode); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"mode": req.Mode})
}

// handleSetGuides replaces the published guide set.
func (s *Server) handleSetGuides(c *fiber.Ctx) error {
	var req struct {
		Guides []guides.Type `json:"guides"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if err := s.engine.SetGuides(req.Guides); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"guides": req.Guides})
}

// handleEnable toggles individual assistants. Absent fields are left as-is.
func (s *Server) handleEnable(c *fiber.Ctx) error {
	var req struct {
		Focus       *bool `json:"focus"`
		Exposure    *bool `json:"exposure"`
		Composition *bool `json:"composition"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if req.Focus != nil {
		s.engine.SetFocusEnabled(*req.Focus)
	}
	if req.Exposure != nil {
		s.engine.SetExposureEnabled(*req.Exposure)
	}
	if req.Composition != nil {
		s.engine.SetCompositionEnabled(*req.Composition)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// handleCameraConfig returns the capture configuration and capabilities.
func (s *Server) handleCameraConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"config":       s.manager.GetConfigJSON(),
		"capabilities": s.manager.Capabilities(),
	})
}

// handleCameraUpdate applies partial config updates or a preset.
func (s *Server) handleCameraUpdate(c *fiber.Ctx) error {
	var params map[string]interface{}
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if err := s.manager.UpdateConfig(params); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	s.publishCameraConfig()
	return c.JSON(s.manager.GetConfigJSON())
}

// handleCameraPresets lists the available presets.
func (s *Server) handleCameraPresets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"names":   camera.PresetNames(),
		"presets": camera.Presets(),
	})
}

// handleApplySuggestion pushes the engine's current suggestion and focus
// point to the camera hardware. Hardware without the needed control answers
// 409 so the UI can fall back to automatic mode.
func (s *Server) handleApplySuggestion(c *fiber.Ctx) error {
	snap := s.engine.Snapshot()
	if snap.ExposureSuggestion == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no suggestion available"})
	}

	if err := s.manager.ApplySuggestion(*snap.ExposureSuggestion); err != nil {
		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, camera.ErrUnsupportedCapability) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	if snap.FocusPoint != nil {
		if err := s.manager.ApplyFocusPoint(*snap.FocusPoint); err != nil &&
			!errors.Is(err, camera.ErrUnsupportedCapability) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
	}

	s.publishCameraConfig()
	return c.JSON(s.manager.GetConfigJSON())
}

// handleAssistWS streams engine snapshots over websocket. The current
// snapshot is sent immediately so clients render without waiting for the
// next analysis pass.
func (s *Server) handleAssistWS(c *websocket.Conn) {
	c.WriteJSON(hub.Envelope{Event: hub.EventSnapshot, Payload: s.engine.Snapshot()})

	client := hub.NewClient(s.assistHub, c)
	client.Run()
}
