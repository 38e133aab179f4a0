package spawn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"sync"

	"github.com/google/uuid"
)

// =============================================================================
// Memory
// =============================================================================

// MemorySpawner keeps instances in memory. It backs the interactive editor
// and tests. Safe for concurrent use.
type MemorySpawner struct {
	mu        sync.Mutex
	instances map[Handle]Request
	order     []Handle
}

// NewMemorySpawner returns an empty in-memory scene.
func NewMemorySpawner() *MemorySpawner {
	return &MemorySpawner{instances: make(map[Handle]Request)}
}

// Instantiate stores req under a fresh handle.
func (m *MemorySpawner) Instantiate(_ context.Context, req Request) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := Handle(uuid.NewString())
	m.instances[h] = req
	m.order = append(m.order, h)
	return h, nil
}

// Destroy removes an instance. Destroying an unknown handle is an error.
func (m *MemorySpawner) Destroy(_ context.Context, h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.instances[h]; !ok {
		return fmt.Errorf("unknown handle %s", h)
	}
	delete(m.instances, h)
	return nil
}

// Instances returns the live instances in spawn order.
func (m *MemorySpawner) Instances() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, 0, len(m.instances))
	live := m.order[:0]
	for _, h := range m.order {
		if req, ok := m.instances[h]; ok {
			out = append(out, req)
			live = append(live, h)
		}
	}
	m.order = live
	return out
}

// Snapshot returns a copy of the live instances keyed by handle.
func (m *MemorySpawner) Snapshot() map[Handle]Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.instances)
}

// Len returns the number of live instances.
func (m *MemorySpawner) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.instances)
}

// =============================================================================
// JSON Lines
// =============================================================================

// Command is one line written by a StreamSpawner.
type Command struct {
	Op      string   `json:"op"` // "instantiate" or "destroy"
	Handle  Handle   `json:"handle"`
	Request *Request `json:"request,omitempty"`
}

// StreamSpawner writes instantiate and destroy commands as JSON lines, for a
// renderer process reading them from a pipe.
type StreamSpawner struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewStreamSpawner writes commands to w.
func NewStreamSpawner(w io.Writer) *StreamSpawner {
	return &StreamSpawner{enc: json.NewEncoder(w)}
}

// Instantiate emits an instantiate command with a fresh handle.
func (s *StreamSpawner) Instantiate(_ context.Context, req Request) (Handle, error) {
	h := Handle(uuid.NewString())
	if err := s.write(Command{Op: "instantiate", Handle: h, Request: &req}); err != nil {
		return "", err
	}
	return h, nil
}

// Destroy emits a destroy command.
func (s *StreamSpawner) Destroy(_ context.Context, h Handle) error {
	return s.write(Command{Op: "destroy", Handle: h})
}

func (s *StreamSpawner) write(c Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(c); err != nil {
		return fmt.Errorf("encode %s: %w", c.Op, err)
	}
	return nil
}

var (
	_ Spawner = (*MemorySpawner)(nil)
	_ Spawner = (*StreamSpawner)(nil)
)
