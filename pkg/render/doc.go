// Package render groups the rendering backends.
//
// # Overview
//
// Rendering turns an annotation tree plus a source image into a visual
// artifact. The only backend today is the raster overlay renderer:
//
//   - [overlay]: stroked polygons and labels drawn onto a copy of the
//     source image, one pass per hierarchy level
//
// # Overlay Rendering
//
// The [overlay] subpackage holds the draw settings document, the layered
// renderer, and the batch runner:
//
//	cfg := overlay.LoadOrDefault("draw_settings.toml", logger)
//	runner := overlay.NewRunner(cfg, logger)
//	out, err := runner.RenderFile(ctx, "scan.png", "scan.json", "")
//
// [overlay]: github.com/MalchuL/vision-ocr-dumper/pkg/render/overlay
package render
