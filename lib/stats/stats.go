package stats

import (
	"sync"
	"time"
)

type Stats struct {
	Uptime    float64 `json:"uptime"`
	FPS       uint64  `json:"fps"`
	Frames    uint64  `json:"frames"`
	GLErrors  uint64  `json:"gl_errors"`
	WsClients int     `json:"ws_clients"`
	State     string  `json:"state"`
}

// Counter accumulates per-frame numbers from the render loop. It is read
// from the api goroutines, so everything goes through the mutex.
type Counter struct {
	mu sync.Mutex
	s  Stats

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
	now          func() time.Time
}

func New() *Counter {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Counter {
	c := &Counter{now: now}
	c.start = now()
	c.frameTimer = c.start
	return c
}

// Update records one presented frame and the number of GL errors it
// produced.
func (c *Counter) Update(glErrors int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.frameCounter++
	c.s.Frames++
	c.s.GLErrors += uint64(glErrors)
	if now.Sub(c.frameTimer) >= 1*time.Second {
		c.s.FPS = c.frameCounter
		c.frameCounter = 0
		c.frameTimer = now
	}
	c.s.Uptime = float64(now.Sub(c.start).Nanoseconds()) / 1e9
}

func (c *Counter) SetState(state string) {
	c.mu.Lock()
	c.s.State = state
	c.mu.Unlock()
}

func (c *Counter) AddWsClients(delta int) {
	c.mu.Lock()
	c.s.WsClients += delta
	c.mu.Unlock()
}

func (c *Counter) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}
