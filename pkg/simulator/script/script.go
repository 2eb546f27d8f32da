// Package script implements pkg/simulator's Driver over a fixed sequence
// of responses. It backs tests and offline runs where deterministic
// proposals matter more than generative ones.
package script

import (
	"context"
	"sync"

	"github.com/papercomputeco/loom/pkg/simulator"
)

// Simulator replays a scripted sequence of proposals. Once the script is
// exhausted every further Propose returns simulator.ErrNoProposal.
type Simulator struct {
	mu        sync.Mutex
	responses []string
	next      int
}

// New creates a scripted simulator that replays the given responses in
// order.
func New(responses ...string) *Simulator {
	return &Simulator{responses: responses}
}

// Name identifies the driver.
func (s *Simulator) Name() string {
	return "script"
}

// Propose returns the next scripted response. The prompt is ignored.
func (s *Simulator) Propose(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.responses) {
		return "", simulator.ErrNoProposal
	}

	response := s.responses[s.next]
	s.next++

	return response, nil
}

// Close releases driver resources.
func (s *Simulator) Close() error {
	return nil
}

// Ensure Simulator implements simulator.Driver
var _ simulator.Driver = (*Simulator)(nil)
