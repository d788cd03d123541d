package advisor

import (
	"context"
	"sync"
	"time"
)

// State is the state of an advisory call.
type State string

const (
	Pending State = "pending"
	Success State = "success"
	Failed  State = "error"
)

// Result is the last known outcome of the call of a control.
type Result struct {
	Control string    `json:"control"`
	State   State     `json:"state"`
	Text    string    `json:"text,omitempty"`
	Error   string    `json:"error,omitempty"` // user facing message
	Updated time.Time `json:"updated"`
}

// Calls tracks the advisory calls of independent controls, at most one
// result per control.
//
// Calls are not cancelled when superseded: each one overwrites the result of
// its control when it completes, the last one to finish wins.
type Calls struct {
	mu      sync.Mutex
	results map[string]Result
	now     func() time.Time
}

// NewCalls returns an empty Calls.
func NewCalls() *Calls {
	return &Calls{results: make(map[string]Result), now: time.Now}
}

// Start marks control as pending and runs fn in the background. The returned
// channel is closed once the result of fn has been stored.
//
// fn runs with a context detached from ctx cancellation so that the call
// outlives the request that started it.
func (c *Calls) Start(ctx context.Context, control string, fn func(context.Context) (string, error)) <-chan struct{} {
	c.set(Result{Control: control, State: Pending})
	done := make(chan struct{})
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		text, err := fn(ctx)
		r := Result{Control: control, State: Success, Text: text}
		if err != nil {
			r = Result{Control: control, State: Failed, Error: Message("", err)}
		}
		c.set(r)
	}()
	return done
}

// Get returns the result of control, false if it was never started.
func (c *Calls) Get(control string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[control]
	return r, ok
}

func (c *Calls) set(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r.Updated = c.now()
	c.results[r.Control] = r
}
