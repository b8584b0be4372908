// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
)

// pageLoadTimeout bounds Navigate and Reload.
const pageLoadTimeout = 30 * time.Second

// refAttr marks an element found by XPath inside a frame so that it can be
// addressed with a CSS query scoped to the frame.
const refAttr = "data-rpa-ref"

const tagByXPath = `(xpath, ref) => {
	const el = document.evaluate(xpath, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	if (!el) {
		return false;
	}
	el.setAttribute("` + refAttr + `", ref);
	return true;
}`

// ErrFrameNotFound is returned by EnterFrame when no iframe has the id.
var ErrFrameNotFound = errors.New("iframe not found")

// ChromeConfig holds the launch settings of [ChromeLauncher].
type ChromeConfig struct {
	Headless bool
	// ExecPath overrides Chrome discovery when set.
	ExecPath string
	// DownloadDir receives every download. It is made absolute and created
	// on Launch.
	DownloadDir string
	// DefaultWait bounds Type and Click.
	DefaultWait time.Duration
}

// ChromeLauncher starts Chrome through the DevTools protocol.
type ChromeLauncher struct {
	cfg ChromeConfig
}

// NewChromeLauncher constructs a [ChromeLauncher].
func NewChromeLauncher(cfg ChromeConfig) *ChromeLauncher {
	return &ChromeLauncher{cfg: cfg}
}

func (l *ChromeLauncher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
	)
	if !l.cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if l.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.cfg.ExecPath))
	}
	return opts
}

// Launch starts a new browser whose lifetime is bounded by ctx. Chromedp
// errors are logged with the logger attached to ctx.
func (l *ChromeLauncher) Launch(ctx context.Context) (Driver, error) {
	log := logger.FromContext(ctx)

	dir, err := filepath.Abs(l.cfg.DownloadDir)
	if err != nil {
		return nil, fmt.Errorf("resolve download dir: %w", err)
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, l.allocatorOptions()...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithErrorf(func(format string, args ...any) {
		log.Error().Msgf(format, args...)
	}))

	// the first Run starts the browser and must not carry a timeout
	err = chromedp.Run(tabCtx,
		cdpbrowser.SetDownloadBehavior(cdpbrowser.SetDownloadBehaviorBehaviorAllow).
			WithDownloadPath(dir).
			WithEventsEnabled(true),
	)
	if err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	log.Info().Str("download_dir", dir).Bool("headless", l.cfg.Headless).Msg("browser started")

	return &chromeDriver{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		wait:        l.cfg.DefaultWait,
	}, nil
}

type chromeDriver struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	wait        time.Duration

	frame  *cdp.Node
	refs   int
	closed bool
}

// run executes actions on the tab, stopping at timeout or when ctx is done.
func (d *chromeDriver) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// locate turns sel into a chromedp query for the current document.
func (d *chromeDriver) locate(ctx context.Context, sel Selector, timeout time.Duration) (string, []chromedp.QueryOption, error) {
	if d.frame == nil {
		if sel.Kind == KindXPath {
			return sel.Value, []chromedp.QueryOption{chromedp.BySearch}, nil
		}
		return sel.Value, []chromedp.QueryOption{chromedp.ByQuery}, nil
	}

	scoped := []chromedp.QueryOption{chromedp.ByQuery, chromedp.FromNode(d.frame)}
	if sel.Kind == KindCSS {
		return sel.Value, scoped, nil
	}

	// chromedp cannot scope XPath searches to a frame
	d.refs++
	ref := strconv.Itoa(d.refs)
	var found bool
	err := d.run(ctx, timeout, chromedp.PollFunction(tagByXPath, &found,
		chromedp.WithPollingInFrame(d.frame),
		chromedp.WithPollingArgs(sel.Value, ref),
	))
	if err != nil {
		return "", nil, fmt.Errorf("find %s in frame: %w", sel, err)
	}

	return fmt.Sprintf(`[%s="%s"]`, refAttr, ref), scoped, nil
}

func (d *chromeDriver) Navigate(ctx context.Context, url string) error {
	d.frame = nil
	if err := d.run(ctx, pageLoadTimeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (d *chromeDriver) WaitClickable(ctx context.Context, sel Selector, timeout time.Duration) error {
	query, opts, err := d.locate(ctx, sel, timeout)
	if err != nil {
		return err
	}

	err = d.run(ctx, timeout,
		chromedp.WaitVisible(query, opts...),
		chromedp.WaitEnabled(query, opts...),
	)
	if err != nil {
		return fmt.Errorf("wait for %s: %w", sel, err)
	}
	return nil
}

// Type never includes text in its errors: it may be a password.
func (d *chromeDriver) Type(ctx context.Context, sel Selector, text string) error {
	query, opts, err := d.locate(ctx, sel, d.wait)
	if err != nil {
		return err
	}

	if err = d.run(ctx, d.wait, chromedp.SendKeys(query, text, opts...)); err != nil {
		return fmt.Errorf("type into %s: %w", sel, err)
	}
	return nil
}

func (d *chromeDriver) Click(ctx context.Context, sel Selector) error {
	query, opts, err := d.locate(ctx, sel, d.wait)
	if err != nil {
		return err
	}

	if err = d.run(ctx, d.wait, chromedp.Click(query, opts...)); err != nil {
		return fmt.Errorf("click %s: %w", sel, err)
	}
	return nil
}

func (d *chromeDriver) EnterFrame(ctx context.Context, id string, timeout time.Duration) error {
	var nodes []*cdp.Node
	err := d.run(ctx, timeout, chromedp.Nodes(fmt.Sprintf(`iframe[id=%q]`, id), &nodes, chromedp.ByQuery))
	if err != nil {
		return fmt.Errorf("enter frame %s: %w", id, err)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("%w: %s", ErrFrameNotFound, id)
	}

	d.frame = nodes[0]
	return nil
}

func (d *chromeDriver) LeaveFrame() {
	d.frame = nil
}

func (d *chromeDriver) Reload(ctx context.Context) error {
	d.frame = nil
	if err := d.run(ctx, pageLoadTimeout, chromedp.Reload()); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

func (d *chromeDriver) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	err := chromedp.Cancel(d.ctx)
	d.cancelTab()
	d.cancelAlloc()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("close chrome: %w", err)
	}
	return nil
}
