// Command cliprender renders the clip-to-mask scenarios as PNG files.
//
// Each file is named TestImage.CGContextClipping.<test>.<shape>.<type>.<WxH>.png.
// The shape is sq, di or rct. The type is mask (luminance) or alpha. WxH
// is the clip size, left out by scenarios that do not use one.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gogpu/quartz"
)

func main() {
	var (
		width   = flag.Int("width", 512, "image width")
		height  = flag.Int("height", 512, "image height")
		out     = flag.String("out", ".", "output directory")
		sizes   = flag.String("clip-sizes", formatSizes(clipSizes), "comma separated WxH rectangles masks are stretched over")
		workers = flag.Int("workers", 0, "number of images rendered at once (0 = GOMAXPROCS)")
		verbose = flag.Bool("v", false, "log clip decisions")
	)
	flag.Parse()

	if *verbose {
		quartz.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	clips, err := parseSizes(*sizes)
	if err != nil {
		log.Fatalf("Invalid -clip-sizes: %v", err)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n, err := run(ctx, *out, *width, *height, clips, *workers)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	log.Printf("Rendered %d images to %s (%dx%d)\n", n, *out, *width, *height)
}

// parseSizes parses a list such as "128x128,128x256".
func parseSizes(s string) ([]quartz.Size, error) {
	var sizes []quartz.Size
	for _, f := range strings.Split(s, ",") {
		ws, hs, ok := strings.Cut(strings.TrimSpace(f), "x")
		if !ok {
			return nil, fmt.Errorf("size %q: want WxH", f)
		}
		w, err := strconv.ParseFloat(ws, 64)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", f, err)
		}
		h, err := strconv.ParseFloat(hs, 64)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", f, err)
		}
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("size %q: must be positive", f)
		}
		sizes = append(sizes, quartz.Sz(w, h))
	}
	return sizes, nil
}

func formatSizes(sizes []quartz.Size) string {
	parts := make([]string, len(sizes))
	for i, sz := range sizes {
		parts[i] = fmt.Sprintf("%gx%g", sz.W, sz.H)
	}
	return strings.Join(parts, ",")
}
