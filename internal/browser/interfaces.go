// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package browser drives a Chrome instance for the registration robot.
//
// A [Launcher] starts one browser per login attempt; the returned [Driver]
// is bound to that browser until Close. Every blocking call takes a context
// and is also bounded by the driver's own timeouts. Errors returned by a
// driver are transient from the caller's point of view: the page may simply
// not be ready yet.
package browser

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/browser_mock.go -package=mock

// Launcher starts a browser session.
type Launcher interface {
	Launch(ctx context.Context) (Driver, error)
}

// Driver is one browser session. Selectors are resolved inside the current
// frame after EnterFrame and in the top document otherwise.
type Driver interface {
	// Navigate opens url and waits for the page load.
	Navigate(ctx context.Context, url string) error
	// WaitClickable waits up to timeout for sel to be visible and enabled.
	WaitClickable(ctx context.Context, sel Selector, timeout time.Duration) error
	// Type sends text as key strokes to sel.
	Type(ctx context.Context, sel Selector, text string) error
	// Click clicks sel.
	Click(ctx context.Context, sel Selector) error
	// EnterFrame waits up to timeout for the iframe with the given id and
	// scopes subsequent lookups to its document.
	EnterFrame(ctx context.Context, id string, timeout time.Duration) error
	// LeaveFrame returns to the top document. It never fails.
	LeaveFrame()
	// Reload reloads the current page.
	Reload(ctx context.Context) error
	// Close shuts the browser down.
	Close() error
}
