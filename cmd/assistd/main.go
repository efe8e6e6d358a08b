// assistd runs the smart camera assistance engine as a daemon: it feeds
// frames through the analysis pipeline and serves the dashboard with live
// focus, exposure and composition output.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/internal/config"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/internal/log"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/assist"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/camera"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/exposure"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/frame"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/guides"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception/local"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/web"
)

func main() {
	port := flag.String("port", config.DashboardPort(), "Dashboard port")
	mode := flag.String("mode", "balanced", "Exposure suggestion mode: balanced, creative, technical")
	guideList := flag.String("guides", "rule_of_thirds,horizon", "Comma-separated guide types")
	timeout := flag.Duration("timeout", 2*time.Second, "Analysis timeout per pass")
	flag.Parse()

	log.Init(config.LogLevel())
	logger := log.With("component", "assistd")

	provider, err := selectProvider()
	if err != nil {
		logger.Error("perception provider setup failed", "err", err)
		os.Exit(1)
	}

	cfg := assist.DefaultConfig()
	cfg.Mode = exposure.Mode(*mode)
	cfg.Guides = parseGuides(*guideList)
	cfg.AnalysisTimeout = *timeout

	engine, err := assist.New(provider, cfg, logger)
	if err != nil {
		logger.Error("engine setup failed", "err", err)
		os.Exit(1)
	}
	defer engine.Close()

	manager := camera.NewManager(camera.DefaultCapabilities())
	manager.OnConfigChange = func(c camera.Config) error {
		logger.Info("camera config applied",
			"resolution", c.Width, "ev", c.ExposureValue, "iso", c.ISO, "af", c.AfMode)
		return nil
	}

	server := web.NewServer(*port, engine, manager)
	engine.OnPublish(server.PublishSnapshot)
	server.StartAsync()
	defer server.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("assistance engine running", "port", *port, "mode", cfg.Mode)
	feedFrames(ctx, engine, manager)
	logger.Info("shutting down")
}

// selectProvider picks the perception backend from the environment:
// a pushed detection stream, a local ONNX face model, or the HTTP service.
func selectProvider() (perception.Provider, error) {
	if streamURL := config.PerceptionStreamURL(); streamURL != "" {
		stream := perception.NewStream(streamURL, log.L())
		if err := stream.Connect(); err != nil {
			return nil, err
		}
		return stream, nil
	}

	if modelPath := config.FaceModelPath(); modelPath != "" {
		cfg := local.DefaultConfig()
		cfg.ModelPath = modelPath
		return local.New(cfg)
	}

	cfg := perception.DefaultClientConfig()
	cfg.BaseURL = config.PerceptionURL(cfg.BaseURL)
	cfg.Logger = log.L()
	return perception.NewClient(cfg), nil
}

func parseGuides(s string) []guides.Type {
	var out []guides.Type
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, guides.Type(part))
		}
	}
	return out
}

// feedFrames offers frames to the engine at the configured capture cadence.
// The capture hardware is external to this process; the feed carries frame
// metadata only, which is all the stability estimator and the perception
// service protocols need from this side.
func feedFrames(ctx context.Context, engine *assist.Engine, manager *camera.Manager) {
	fps := config.EnvFloat("CAPTURE_FPS", 30)
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			cfg := manager.GetConfig()
			engine.Analyze(&frame.Frame{
				Width:     cfg.Width,
				Height:    cfg.Height,
				Format:    frame.FormatBGR,
				Timestamp: now,
			})
		}
	}
}
