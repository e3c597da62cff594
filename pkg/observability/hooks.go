// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about render execution and OCR engine calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetOCRHooks(&myOCRHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, imagePath)
//	// ... draw annotations ...
//	observability.Render().OnRenderComplete(ctx, imagePath, outputPath, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the annotation rendering pipeline.
type RenderHooks interface {
	// Single-image render events
	OnRenderStart(ctx context.Context, imagePath string)
	OnRenderComplete(ctx context.Context, imagePath, outputPath string, duration time.Duration, err error)

	// Batch events
	OnBatchStart(ctx context.Context, imagesDir string, imageCount int)
	OnBatchItemSkipped(ctx context.Context, imagePath, reason string)
	OnBatchComplete(ctx context.Context, rendered int, duration time.Duration)
}

// =============================================================================
// OCR Hooks
// =============================================================================

// OCRHooks receives events from OCR engine calls.
type OCRHooks interface {
	// OnRecognizeStart records the start of a recognition call.
	OnRecognizeStart(ctx context.Context, imagePath string, sizeBytes int)

	// OnRecognizeComplete records the outcome of a recognition call.
	OnRecognizeComplete(ctx context.Context, imagePath string, wordCount int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopRenderHooks) OnBatchStart(context.Context, string, int)          {}
func (NoopRenderHooks) OnBatchItemSkipped(context.Context, string, string) {}
func (NoopRenderHooks) OnBatchComplete(context.Context, int, time.Duration) {
}

// NoopOCRHooks is a no-op implementation of OCRHooks.
type NoopOCRHooks struct{}

func (NoopOCRHooks) OnRecognizeStart(context.Context, string, int) {}
func (NoopOCRHooks) OnRecognizeComplete(context.Context, string, int, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	ocrHooks    OCRHooks    = NoopOCRHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any render operations.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetOCRHooks registers custom OCR hooks.
// This should be called once at application startup before any OCR operations.
func SetOCRHooks(h OCRHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		ocrHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// OCR returns the registered OCR hooks.
func OCR() OCRHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return ocrHooks
}

// Reset restores the default no-op hooks. Intended for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	ocrHooks = NoopOCRHooks{}
}
