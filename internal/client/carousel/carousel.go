// Package carousel tracks the frontmost page of a memory's attachment pager
// and lets only that page's video play.
package carousel

import (
	"math"
	"sync"

	"github.com/dmitrijs2005/memorylane/internal/client/models"
)

// Player is a per-video playback handle, alive while its page is mounted.
type Player interface {
	Play()
	Pause()
	Playing() bool
	Close() error
}

type PlayerFactory func(a models.Attachment) Player

type page struct {
	attachment models.Attachment
	player     Player
}

type Carousel struct {
	mu     sync.Mutex
	pages  []page
	active int
	closed bool
}

// New mounts one page per attachment; videos get a player from factory.
// Page 0 starts active.
func New(attachments []models.Attachment, factory PlayerFactory) *Carousel {
	c := &Carousel{pages: make([]page, len(attachments))}
	for i, a := range attachments {
		c.pages[i].attachment = a
		if a.Kind == models.KindVideo && factory != nil {
			c.pages[i].player = factory(a)
		}
	}
	c.mu.Lock()
	c.sync()
	c.mu.Unlock()
	return c
}

// OnScroll maps a horizontal scroll offset to the nearest page and activates it.
func (c *Carousel) OnScroll(offsetX, pageWidth float64) int {
	if pageWidth <= 0 || math.IsNaN(offsetX) {
		return c.Active()
	}
	return c.ScrollTo(int(math.Round(offsetX / pageWidth)))
}

// ScrollTo activates page i, clamped to the valid range, and returns it.
func (c *Carousel) ScrollTo(i int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || len(c.pages) == 0 {
		return c.active
	}
	c.active = max(0, min(i, len(c.pages)-1))
	c.sync()
	return c.active
}

// sync pauses every inactive player before playing the active one.
func (c *Carousel) sync() {
	if c.closed {
		return
	}
	for i, p := range c.pages {
		if p.player != nil && i != c.active && p.player.Playing() {
			p.player.Pause()
		}
	}
	if c.active < len(c.pages) {
		if p := c.pages[c.active].player; p != nil && !p.Playing() {
			p.Play()
		}
	}
}

func (c *Carousel) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Carousel) Len() int {
	return len(c.pages)
}

func (c *Carousel) Attachment(i int) models.Attachment {
	return c.pages[i].attachment
}

// Playing reports whether page i has a player that is currently playing.
func (c *Carousel) Playing(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.pages) || c.pages[i].player == nil {
		return false
	}
	return c.pages[i].player.Playing()
}

// Close unmounts every page and releases its player.
func (c *Carousel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var first error
	for i := range c.pages {
		if p := c.pages[i].player; p != nil {
			p.Pause()
			if err := p.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
