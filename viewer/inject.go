package viewer

import (
	"context"
	"time"

	"github.com/Hugo9809/pdfcraft/logging"
)

// FullscreenControlID is the id of the control the host injects into the
// surface's toolbar. Check-before-insert keys on this id.
const FullscreenControlID = "pdfcraft-fullscreen"

// InjectorOptions tune the bounded retry loop. Zero values fall back to the
// defaults below.
type InjectorOptions struct {
	// SettleDelay is the wait after the surface's outer load notification
	// before the first patch attempt.
	SettleDelay time.Duration
	// Backoff is the fixed delay between attempts.
	Backoff time.Duration
	// MaxAttempts bounds the loop; after the cap the loop gives up silently
	// and the user keeps the surface's native controls.
	MaxAttempts int
	// HideLabel is the visible label of the surface control duplicated by
	// the host's own chrome. Empty means hide nothing.
	HideLabel string
	// ControlLabel is the visible label of the injected control.
	ControlLabel string
	// Logger receives retry diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

const (
	defaultSettleDelay = 500 * time.Millisecond
	defaultBackoff     = time.Second
	defaultMaxAttempts = 10
)

// Injector patches the embedded surface's DOM once it becomes available.
// The surface's internal readiness is not observable synchronously, so the
// injector polls: settle delay after the outer load signal, then bounded
// fixed-backoff attempts. The patch is idempotent; running the injector twice
// against the same surface inserts nothing twice.
type Injector struct {
	surface  Surface
	onToggle func()
	opts     InjectorOptions
	logger   logging.Logger
}

// NewInjector builds an injector for the surface. onToggle is the host-level
// state change (a full-screen toggle) the injected control dispatches into;
// the control lives inside the surface's context while the state it affects
// lives in the host, so a plain callback is the whole contract.
func NewInjector(surface Surface, onToggle func(), optFns ...func(o *InjectorOptions)) *Injector {
	opts := InjectorOptions{
		SettleDelay:  defaultSettleDelay,
		Backoff:      defaultBackoff,
		MaxAttempts:  defaultMaxAttempts,
		HideLabel:    "Download",
		ControlLabel: "Fullscreen",
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	return &Injector{surface: surface, onToggle: onToggle, opts: opts, logger: logging.Ensure(opts.Logger)}
}

// Run waits for the surface's load signal and drives the patch attempts until
// one succeeds, the attempt cap is reached, or ctx is cancelled. It never
// returns an error: giving up is a supported outcome.
func (i *Injector) Run(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-i.surface.Loaded():
	}
	if !i.sleep(ctx, i.opts.SettleDelay) {
		return
	}
	for attempt := 1; attempt <= i.opts.MaxAttempts; attempt++ {
		if i.tryPatch() {
			i.logger.Debug("viewer toolbar patched", "attempt", attempt)
			return
		}
		if attempt == i.opts.MaxAttempts {
			i.logger.Debug("viewer toolbar never became patchable, giving up", "attempts", attempt)
			return
		}
		if !i.sleep(ctx, i.opts.Backoff) {
			return
		}
	}
}

// tryPatch performs one patch attempt. Returns false when the toolbar region
// is not present yet.
func (i *Injector) tryPatch() bool {
	dom := i.surface.DOM()
	if dom == nil || !dom.ToolbarReady() {
		return false
	}
	dom.RevealExportControls()
	if i.opts.HideLabel != "" {
		dom.HideControlByLabel(i.opts.HideLabel)
	}
	if !dom.HasControl(FullscreenControlID) {
		if err := dom.InsertToolbarControl(FullscreenControlID, i.opts.ControlLabel, i.onToggle); err != nil {
			i.logger.Debug("toolbar control insert failed", "error", err)
		}
	}
	return true
}

func (i *Injector) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
