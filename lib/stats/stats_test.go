package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/fosdem/glstage/lib/test"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func TestUpdate(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c := newWithClock(clock.now)

	for range 59 {
		clock.t = clock.t.Add(16 * time.Millisecond)
		c.Update(0)
	}
	// not a full second yet
	test.ExpectEquality(t, c.Snapshot().FPS, uint64(0))

	clock.t = clock.t.Add(100 * time.Millisecond)
	c.Update(2)

	s := c.Snapshot()
	test.ExpectEquality(t, s.FPS, uint64(60))
	test.ExpectEquality(t, s.Frames, uint64(60))
	test.ExpectEquality(t, s.GLErrors, uint64(2))
	test.ExpectSuccess(t, s.Uptime > 1.0)
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Update(0)
				c.AddWsClients(1)
				_ = c.Snapshot()
				c.AddWsClients(-1)
			}
		}()
	}
	wg.Wait()
	s := c.Snapshot()
	test.ExpectEquality(t, s.Frames, uint64(400))
	test.ExpectEquality(t, s.WsClients, 0)
}

func TestState(t *testing.T) {
	c := New()
	c.SetState("running")
	test.ExpectEquality(t, c.Snapshot().State, "running")
}
