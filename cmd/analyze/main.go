// analyze runs one assistance pass over a still image and prints the result
// as JSON: fused subjects, focus point, exposure reading and suggestion.
// Useful for tuning detection thresholds without a running daemon.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/internal/config"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/internal/log"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/exposure"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/frame"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception/local"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/subject"
)

type report struct {
	Image      string               `json:"image"`
	Subjects   []subject.Subject    `json:"subjects"`
	FocusPoint geometry.Point       `json:"focus_point"`
	Reading    exposure.Reading     `json:"reading"`
	Suggestion *exposure.Suggestion `json:"suggestion,omitempty"`
	Partial    []string             `json:"partial_failures,omitempty"`
}

func main() {
	mode := flag.String("mode", "balanced", "Exposure suggestion mode: balanced, creative, technical")
	model := flag.String("model", config.FaceModelPath(), "ONNX face model path (or FACE_MODEL env)")
	timeout := flag.Duration("timeout", 5*time.Second, "Analysis timeout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: analyze [flags] <image.jpg>")
		os.Exit(2)
	}

	log.Init(config.LogLevel())

	if err := run(flag.Arg(0), *model, exposure.Mode(*mode), *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		os.Exit(1)
	}
}

func run(path, modelPath string, mode exposure.Mode, timeout time.Duration) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	if modelPath == "" {
		return fmt.Errorf("no face model configured; pass -model or set FACE_MODEL")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cfg := local.DefaultConfig()
	cfg.ModelPath = modelPath
	provider, err := local.New(cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	f := &frame.Frame{Format: frame.FormatJPEG, Pixels: data, Timestamp: time.Now()}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res := perception.Gather(ctx, provider, f)

	subjects := subject.Fuse(res)
	reading := exposure.NewReading(res.Luminance, time.Now())
	suggestion := exposure.Suggest(reading, nil, mode)

	rep := report{
		Image:      path,
		Subjects:   subjects,
		FocusPoint: subject.SelectFocusPoint(subjects),
		Reading:    reading,
		Suggestion: &suggestion,
	}
	for _, pe := range res.Partial {
		rep.Partial = append(rep.Partial, pe.Error())
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
