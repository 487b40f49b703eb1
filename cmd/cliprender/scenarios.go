package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gogpu/quartz"
	"github.com/gogpu/quartz/internal/parallel"
)

// params are the inputs of one rendering.
type params struct {
	bounds quartz.Rect
	clip   quartz.Size
	shape  shape
	kind   quartz.MaskKind
	masks  maskSet
}

// centered returns the clip rectangle centered in the image.
func (p params) centered() quartz.Rect {
	return quartz.CenteredOn(p.clip, p.bounds.Center())
}

type scenario struct {
	name string
	clip func(dc *quartz.Context, p params) error
}

// shapeScenarios are rendered once per shape and mask kind.
var shapeScenarios = []scenario{
	{"StraightMask", func(dc *quartz.Context, p params) error {
		return dc.ClipToMask(p.centered(), p.masks.get(p.shape, p.kind))
	}},
	{"TransformedMask", func(dc *quartz.Context, p params) error {
		dc.ConcatCTM(quartz.AffineTransform{A: 1, C: 0.75, D: 1})
		return dc.ClipToMask(p.centered(), p.masks.get(p.shape, p.kind))
	}},
	{"StackedMaskSameType", func(dc *quartz.Context, p params) error {
		if err := dc.ClipToMask(p.centered(), p.masks.get(p.shape, p.kind)); err != nil {
			return err
		}
		return dc.ClipToMask(p.centered(), p.masks.get(p.shape.other(), p.kind))
	}},
	{"StackedMaskOtherType", func(dc *quartz.Context, p params) error {
		if err := dc.ClipToMask(p.centered(), p.masks.get(p.shape, p.kind)); err != nil {
			return err
		}
		return dc.ClipToMask(p.centered(), p.masks.get(p.shape.other(), otherKind(p.kind)))
	}},
	{"MaskedAndClipped", func(dc *quartz.Context, p params) error {
		dc.BeginPath()
		dc.AddEllipseInRect(quartz.CenteredOn(quartz.Sz(p.clip.W/2, p.clip.H/2), p.bounds.Center()))
		if err := dc.EOClip(); err != nil {
			return err
		}
		return dc.ClipToMask(p.centered(), p.masks.get(p.shape, p.kind))
	}},
}

// plainScenarios are rendered once, with their own solid 64x64 mask.
var plainScenarios = []scenario{
	// Nothing is visible.
	{"NonOverlappingImageMasks", func(dc *quartz.Context, p params) error {
		m, err := solidMask(quartz.Sz(64, 64))
		if err != nil {
			return err
		}
		if err := dc.ClipToMask(quartz.Rect{W: 64, H: 64}, m); err != nil {
			return err
		}
		return dc.ClipToMask(quartz.Rect{Y: p.bounds.H - 64, W: 64, H: 64}, m)
	}},
	// A 62x62 square 2px right of and below the origin is visible.
	{"CrossTransformedImageMasks", func(dc *quartz.Context, p params) error {
		m, err := solidMask(quartz.Sz(64, 64))
		if err != nil {
			return err
		}
		if err := dc.ClipToMask(quartz.Rect{W: 64, H: 64}, m); err != nil {
			return err
		}
		dc.TranslateCTM(2, 2)
		return dc.ClipToMask(quartz.Rect{W: 64, H: 64}, m)
	}},
}

// clipSizes are the rectangles every shape scenario stretches its masks
// over by default.
var clipSizes = []quartz.Size{quartz.Sz(128, 128), quartz.Sz(128, 256), quartz.Sz(256, 256)}

// fileName names one rendering. A zero clip size leaves the size suffix
// out.
func fileName(test string, s shape, k quartz.MaskKind, clip quartz.Size) string {
	if clip == (quartz.Size{}) {
		return fmt.Sprintf("TestImage.CGContextClipping.%s.%v.%s.png", test, s, kindName(k))
	}
	return fmt.Sprintf("TestImage.CGContextClipping.%s.%v.%s.%gx%g.png", test, s, kindName(k), clip.W, clip.H)
}

// render clips a fresh context as sc describes and fills it blue.
func render(sc scenario, width, height int, p params) (*quartz.Context, error) {
	dc, err := quartz.NewContext(width, height, quartz.WithInterpolationQuality(quartz.InterpolationNone))
	if err != nil {
		return nil, err
	}
	p.bounds = quartz.Rect{W: float64(width), H: float64(height)}

	dc.SaveGState()
	err = sc.clip(dc, p)
	if err == nil {
		dc.SetRGBFillColor(0, 0, 1, 1)
		err = dc.FillRect(p.bounds)
	}
	dc.RestoreGState()
	if err != nil {
		_ = dc.Close()
		return nil, fmt.Errorf("%s: %w", sc.name, err)
	}
	return dc, nil
}

func save(dc *quartz.Context, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return dc.EncodePNG(f)
}

// job is one image to render.
type job struct {
	sc   scenario
	file string
	p    params
}

func jobs(clips []quartz.Size, masks maskSet) []job {
	var out []job
	for _, sc := range shapeScenarios {
		for _, s := range shapes {
			for _, k := range kinds {
				for _, clip := range clips {
					out = append(out, job{sc, fileName(sc.name, s, k, clip), params{clip: clip, shape: s, kind: k, masks: masks}})
				}
			}
		}
	}
	for _, sc := range plainScenarios {
		out = append(out, job{sc, fileName(sc.name, shapeSquare, quartz.MaskAlpha, quartz.Size{}), params{}})
	}
	return out
}

// run renders every scenario into dir, once per clip size for the shape
// scenarios, on the given number of workers and returns the number of
// files written.
func run(ctx context.Context, dir string, width, height int, clips []quartz.Size, workers int) (int, error) {
	masks, err := buildMasks()
	if err != nil {
		return 0, err
	}

	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()

	var n atomic.Int64
	all := jobs(clips, masks)
	tasks := make([]parallel.Task, len(all))
	for i, j := range all {
		tasks[i] = func(context.Context) error {
			dc, err := render(j.sc, width, height, j.p)
			if err != nil {
				return err
			}
			err = save(dc, filepath.Join(dir, j.file))
			if cerr := dc.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", j.file, err)
			}
			n.Add(1)
			return nil
		}
	}

	err = pool.ExecuteAll(ctx, tasks)
	return int(n.Load()), err
}
