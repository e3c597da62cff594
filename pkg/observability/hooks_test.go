package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Render hooks
	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "scan.png")
	r.OnRenderComplete(ctx, "scan.png", "scan_visualized.png", time.Second, nil)
	r.OnBatchStart(ctx, "images", 3)
	r.OnBatchItemSkipped(ctx, "scan.png", "no label file")
	r.OnBatchComplete(ctx, 2, time.Second)

	// OCR hooks
	o := NoopOCRHooks{}
	o.OnRecognizeStart(ctx, "scan.png", 1024)
	o.OnRecognizeComplete(ctx, "scan.png", 42, time.Second, nil)
}

type testRenderHooks struct {
	NoopRenderHooks
	renders int
}

func (h *testRenderHooks) OnRenderStart(context.Context, string) { h.renders++ }

type testOCRHooks struct {
	NoopOCRHooks
	calls int
}

func (h *testOCRHooks) OnRecognizeStart(context.Context, string, int) { h.calls++ }

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	// Verify defaults are noop
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := OCR().(NoopOCRHooks); !ok {
		t.Error("OCR() should return NoopOCRHooks by default")
	}

	// Set custom hooks
	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customOCR := &testOCRHooks{}
	SetOCRHooks(customOCR)
	if OCR() != customOCR {
		t.Error("SetOCRHooks should set custom hooks")
	}

	Render().OnRenderStart(context.Background(), "x.png")
	if customRender.renders != 1 {
		t.Errorf("renders = %d, want 1", customRender.renders)
	}

	// Reset and verify
	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset should restore NoopRenderHooks")
	}
	if _, ok := OCR().(NoopOCRHooks); !ok {
		t.Error("Reset should restore NoopOCRHooks")
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	Reset()
	SetRenderHooks(nil)
	SetOCRHooks(nil)

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("nil render hooks should be ignored")
	}
	if _, ok := OCR().(NoopOCRHooks); !ok {
		t.Error("nil OCR hooks should be ignored")
	}
}
