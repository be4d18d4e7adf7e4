package carousel

import (
	"sync"

	"github.com/dmitrijs2005/memorylane/internal/client/models"
)

// StatePlayer is a looping player that only records its state. The CLI has
// no video surface, so it renders this state instead.
type StatePlayer struct {
	mu      sync.Mutex
	playing bool
	closed  bool
	plays   int
}

func NewStatePlayer(models.Attachment) Player {
	return &StatePlayer{}
}

func (p *StatePlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.playing = true
	p.plays++
}

func (p *StatePlayer) Pause() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}

func (p *StatePlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Plays counts how many times playback was started.
func (p *StatePlayer) Plays() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plays
}

func (p *StatePlayer) Close() error {
	p.mu.Lock()
	p.closed = true
	p.playing = false
	p.mu.Unlock()
	return nil
}
