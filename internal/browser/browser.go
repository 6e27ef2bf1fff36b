// Package browser defines the tab controller used to load job search pages.
package browser

import (
	"context"
	"errors"

	"github.com/law-makers/jobscout/internal/content"
	"github.com/law-makers/jobscout/internal/dom"
)

// Common controller errors
var (
	ErrTabClosed       = errors.New("tab closed")
	ErrChromeNotFound  = errors.New("chrome browser not found")
	ErrControllerClose = errors.New("controller closed")
)

// Controller opens tabs
type Controller interface {
	// Open creates a tab and starts loading url in it
	Open(ctx context.Context, url string) (Tab, error)
	// Close releases every tab and the underlying browser
	Close() error
}

// Tab is one controlled browser tab
type Tab interface {
	// ID identifies the tab for logging and flag scoping
	ID() string
	// Navigate starts loading url. Use WaitLoad to block until it completes.
	Navigate(ctx context.Context, url string) error
	// WaitLoad blocks until the current navigation has completed. It returns
	// ErrTabClosed if the tab goes away first.
	WaitLoad(ctx context.Context) error
	// Closed is closed once the tab no longer exists
	Closed() <-chan struct{}
	// Send asks the tab to scrape its current page
	Send(ctx context.Context, req content.Request) (*content.Response, error)
	// Close closes the tab
	Close() error
}

// Handler answers a scrape request against a loaded page
type Handler interface {
	Handle(page *dom.Page, req content.Request) content.Response
}
