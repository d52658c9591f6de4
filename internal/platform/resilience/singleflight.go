package resilience

import "sync"

// SingleFlight collapses concurrent calls sharing a key into one execution;
// late arrivals block and receive the winner's result. The feed client keys
// on the full request URL, so a burst of overlapping reloads downloads each
// league file once instead of once per caller.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*call
}

type call struct {
	wg  sync.WaitGroup
	val any
	err error
}

// Do executes fn unless a call for key is already in flight, in which case it
// waits for that call instead. The bool reports whether the result was shared
// from another caller's execution. Once a call finishes its key is released,
// so a later Do with the same key runs fresh.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call)
	}

	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := &call{}
	c.wg.Add(1)
	g.calls[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()
	c.wg.Done()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()

	return c.val, c.err, false
}
