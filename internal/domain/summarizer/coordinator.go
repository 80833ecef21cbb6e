package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/yanqian/multilingual-summarizer/internal/domain/textstats"
)

// Client talks to the external summarization service.
type Client interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

// Observer is notified once per resolved submission.
type Observer interface {
	Observe(ctx context.Context, outcome Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, outcome Outcome)

// Observe implements Observer.
func (f ObserverFunc) Observe(ctx context.Context, outcome Outcome) {
	f(ctx, outcome)
}

// Observers is the set of observers attached to every coordinator.
type Observers []Observer

// Coordinator owns the lifecycle of summarization requests. At most one
// request is in flight at a time.
type Coordinator struct {
	cfg       Config
	client    Client
	logger    *slog.Logger
	observers []Observer
	now       func() time.Time

	mu          sync.Mutex
	state       State
	subscribers map[int]chan State
	nextSubID   int
}

// NewCoordinator builds an idle coordinator.
func NewCoordinator(cfg Config, client Client, logger *slog.Logger, observers ...Observer) *Coordinator {
	return &Coordinator{
		cfg:         cfg.withDefaults(),
		client:      client,
		logger:      logger.With("component", "summarizer.coordinator"),
		observers:   observers,
		now:         time.Now,
		state:       State{Status: StatusIdle},
		subscribers: make(map[int]chan State),
	}
}

// State returns the current request state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit validates the input and, when it is acceptable, calls the service and
// waits for the outcome. Local validation failures never reach the network.
// The returned error is non-nil only when a request is already in flight.
func (c *Coordinator) Submit(ctx context.Context, text string, language Language, sentenceCount int, stats textstats.Stats) (State, error) {
	start := c.now()

	c.mu.Lock()
	if c.state.Loading() {
		current := c.state
		c.mu.Unlock()
		return current, ErrSubmissionInFlight
	}

	if !language.Valid() {
		c.logger.Warn("unsupported language, using default", "language", language, "default", c.cfg.DefaultLanguage)
		language = c.cfg.DefaultLanguage
	}
	req := Request{
		Text:      strings.TrimSpace(text),
		Language:  language,
		Sentences: textstats.Clamp(sentenceCount, stats),
	}

	var local *State
	switch {
	case req.Text == "":
		st := failed(KindEmptyInput, msgEmptyInput)
		local = &st
	case stats.Sentences < c.cfg.MinSentences:
		st := failed(KindInsufficientContent, insufficientContentMessage(c.cfg.MinSentences))
		local = &st
	}
	if local != nil {
		c.setLocked(*local)
		c.mu.Unlock()
		c.logger.Info("submission rejected", "kind", local.Kind, "sentences", stats.Sentences)
		c.observe(ctx, req, *local, start)
		return *local, nil
	}

	c.setLocked(State{Status: StatusLoading})
	c.mu.Unlock()

	c.logger.Info("summarization requested", "language", req.Language, "sentences", req.Sentences, "characters", utf8.RuneCountInString(req.Text))

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	summary, err := c.client.Summarize(callCtx, req)
	cancel()

	st := State{Status: StatusSuccess, Summary: summary}
	if err != nil {
		st = classify(err)
		c.logger.Warn("summarization failed", "kind", st.Kind, "error", err)
	}

	c.mu.Lock()
	c.setLocked(st)
	c.mu.Unlock()

	c.observe(ctx, req, st, start)
	return st, nil
}

// Reset returns a resolved coordinator to idle. It has no effect while loading.
func (c *Coordinator) Reset() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Loading() {
		c.setLocked(State{Status: StatusIdle})
	}
	return c.state
}

// Subscribe delivers the current state followed by every transition. Slow
// readers only see the latest state. The returned func unsubscribes and closes
// the channel.
func (c *Coordinator) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = ch
	ch <- c.state
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			close(ch)
			c.mu.Unlock()
		})
	}
}

func (c *Coordinator) setLocked(st State) {
	c.state = st
	for _, ch := range c.subscribers {
		select {
		case ch <- st:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- st:
		default:
		}
	}
}

func (c *Coordinator) observe(ctx context.Context, req Request, st State, start time.Time) {
	if len(c.observers) == 0 {
		return
	}
	end := c.now()
	outcome := Outcome{
		Request:    req,
		Characters: utf8.RuneCountInString(req.Text),
		State:      st,
		Duration:   end.Sub(start),
		At:         end,
	}
	ctx = context.WithoutCancel(ctx)
	for _, obs := range c.observers {
		obs.Observe(ctx, outcome)
	}
}

func classify(err error) State {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return failed(KindServiceError, svcErr.Message)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return failed(KindTimeoutError, msgTimeoutError)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return failed(KindTimeoutError, msgTimeoutError)
	}
	return failed(KindNetworkError, msgNetworkError)
}
