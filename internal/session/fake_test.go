package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/law-makers/jobscout/internal/browser"
	"github.com/law-makers/jobscout/internal/content"
	"github.com/law-makers/jobscout/pkg/models"
)

// fakeController serves canned responses keyed by URL
type fakeController struct {
	mu        sync.Mutex
	pages     map[string]*content.Response
	sendErr   map[string]error
	hold      map[string]bool
	openErr   error
	navigated []string
	tabs      []*fakeTab

	// onNavigate runs after a tab starts loading url
	onNavigate func(t *fakeTab, url string)
}

func newFakeController() *fakeController {
	return &fakeController{
		pages:   make(map[string]*content.Response),
		sendErr: make(map[string]error),
		hold:    make(map[string]bool),
	}
}

func (c *fakeController) page(url string, next string, jobs ...models.Job) {
	c.pages[url] = &content.Response{Success: true, Platform: models.PlatformIndeed, Jobs: jobs, NextPage: next}
}

func (c *fakeController) visits() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.navigated...)
}

func (c *fakeController) Open(ctx context.Context, url string) (browser.Tab, error) {
	if c.openErr != nil {
		return nil, c.openErr
	}
	c.mu.Lock()
	t := &fakeTab{ctrl: c, id: fmt.Sprintf("fake-%d", len(c.tabs)+1), closed: make(chan struct{})}
	c.tabs = append(c.tabs, t)
	c.mu.Unlock()
	return t, t.Navigate(ctx, url)
}

func (c *fakeController) Close() error { return nil }

type fakeTab struct {
	ctrl      *fakeController
	id        string
	closed    chan struct{}
	closeOnce sync.Once

	mu     sync.Mutex
	url    string
	loaded chan struct{}
}

func (t *fakeTab) ID() string              { return t.id }
func (t *fakeTab) Closed() <-chan struct{} { return t.closed }

func (t *fakeTab) Navigate(ctx context.Context, url string) error {
	loaded := make(chan struct{})
	t.mu.Lock()
	t.url = url
	t.loaded = loaded
	t.mu.Unlock()

	t.ctrl.mu.Lock()
	t.ctrl.navigated = append(t.ctrl.navigated, url)
	hold := t.ctrl.hold[url]
	hook := t.ctrl.onNavigate
	t.ctrl.mu.Unlock()

	if !hold {
		close(loaded)
	}
	if hook != nil {
		hook(t, url)
	}
	return nil
}

func (t *fakeTab) WaitLoad(ctx context.Context) error {
	t.mu.Lock()
	loaded := t.loaded
	t.mu.Unlock()
	select {
	case <-loaded:
		return nil
	case <-t.closed:
		return browser.ErrTabClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *fakeTab) Send(ctx context.Context, req content.Request) (*content.Response, error) {
	t.mu.Lock()
	url := t.url
	t.mu.Unlock()

	if err := t.ctrl.sendErr[url]; err != nil {
		return nil, err
	}
	resp, ok := t.ctrl.pages[url]
	if !ok {
		return &content.Response{Success: false, Error: "no fixture for " + url}, nil
	}
	return resp, nil
}

func (t *fakeTab) Close() error {
	t.closeOnce.Do(func() { close(t.closed) })
	return nil
}

func job(title, company, location string) models.Job {
	return models.NewJob(models.PlatformIndeed, models.JobFields{
		Title:    title,
		Company:  company,
		Location: location,
		JobURL:   "https://au.indeed.com/viewjob?jk=" + title,
	})
}
