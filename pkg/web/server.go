// Package web provides the HTTP/websocket dashboard for the assistance
// engine: current outputs, engine configuration and camera control.
package web

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/internal/log"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/assist"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/camera"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/hub"
)

// Server exposes one engine and one camera manager over HTTP and websocket.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	engine  *assist.Engine
	manager *camera.Manager

	// Hub for websocket snapshot broadcast
	assistHub *hub.Hub
}

// NewServer wires the dashboard around an engine and camera manager.
func NewServer(port string, engine *assist.Engine, manager *camera.Manager) *Server {
	s := &Server{
		port:      port,
		logger:    log.With("component", "web"),
		engine:    engine,
		manager:   manager,
		assistHub: hub.New("assist"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Assist Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/assist", s.handleSnapshot)
	api.Get("/assist/config", s.handleAssistConfig)
	api.Post("/assist/mode", s.handleSetMode)
	api.Post("/assist/guides", s.handleSetGuides)
	api.Post("/assist/enable", s.handleEnable)
	api.Get("/camera", s.handleCameraConfig)
	api.Post("/camera", s.handleCameraUpdate)
	api.Get("/camera/presets", s.handleCameraPresets)
	api.Post("/camera/apply", s.handleApplySuggestion)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/assist", websocket.New(s.handleAssistWS))

	s.app = app
	return s
}

// Start starts the web server and the broadcast hub. Blocks.
func (s *Server) Start() error {
	s.logger.Info("dashboard listening", "port", s.port)

	go s.assistHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("web server stopped", "err", err)
		}
	}()
}

// PublishSnapshot pushes a fresh engine snapshot to all websocket clients.
// Wire it to the engine's OnPublish callback.
func (s *Server) PublishSnapshot(snap assist.Snapshot) {
	// No listeners, no encode.
	if s.assistHub.ClientCount() == 0 {
		return
	}
	if err := s.assistHub.BroadcastEvent(hub.EventSnapshot, snap); err != nil {
		s.logger.Warn("snapshot broadcast failed", "err", err)
	}
}

// publishCameraConfig notifies websocket clients of an applied camera change
// so every open dashboard stays in sync with the one that made it.
func (s *Server) publishCameraConfig() {
	if s.assistHub.ClientCount() == 0 {
		return
	}
	if err := s.assistHub.BroadcastEvent(hub.EventCameraConfig, s.manager.GetConfigJSON()); err != nil {
		s.logger.Warn("camera config broadcast failed", "err", err)
	}
}

// Shutdown gracefully stops the web server and hub.
func (s *Server) Shutdown() error {
	s.assistHub.Stop()
	return s.app.Shutdown()
}
