package chatclient

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const defaultPollInterval = 2 * time.Second

type State int32

const (
	StateIdle State = iota
	StatePolling
	StateTerminated
)

var (
	ErrAlreadyOpen = errors.New("controller is already open")
	ErrTerminated  = errors.New("controller is terminated")
	ErrEmptyText   = errors.New("message text is empty")
)

// Controller drives one conversation view: an initial fetch, a 2s
// silent poll loop, optimistic sends and a terminal Close. The
// rendered list is the authoritative server history sorted ascending
// with pending optimistic entries appended at the end.
type Controller struct {
	client *Client
	selfID string
	peerID string

	interval time.Duration
	onUpdate func([]Message)

	state       atomic.Int32
	alive       atomic.Bool
	fetchActive atomic.Bool

	mu        sync.Mutex
	messages  []Message
	pending   []Message
	draft     string
	stopCh    chan struct{}
	stoppedWg sync.WaitGroup
}

type ControllerConfig struct {
	PollInterval time.Duration
	// OnUpdate is invoked with a snapshot after every list change.
	// Optional; called without the controller lock held.
	OnUpdate func([]Message)
}

func NewController(client *Client, selfID, peerID string, cfg ControllerConfig) *Controller {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	return &Controller{
		client:   client,
		selfID:   selfID,
		peerID:   peerID,
		interval: interval,
		onUpdate: cfg.OnUpdate,
	}
}

func (c *Controller) State() State {
	return State(c.state.Load())
}

// Open performs the initial history fetch and starts the poll loop.
// Errors from the initial fetch are surfaced; a second Open while
// polling is a no-op error.
func (c *Controller) Open(ctx context.Context) error {
	switch c.State() {
	case StatePolling:
		return ErrAlreadyOpen
	case StateTerminated:
		return ErrTerminated
	}

	fetched, err := c.client.Messages(ctx, c.selfID, c.peerID)
	if err != nil {
		return fmt.Errorf("initial fetch: %w", err)
	}

	// A Close that landed while the fetch was in flight already won:
	// the Idle->Polling transition must not resurrect the controller.
	c.mu.Lock()
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StatePolling)) {
		c.mu.Unlock()
		if c.State() == StateTerminated {
			return ErrTerminated
		}
		return ErrAlreadyOpen
	}
	c.alive.Store(true)
	c.stopCh = make(chan struct{})
	c.stoppedWg.Add(1)
	c.mu.Unlock()

	c.applyFetched(fetched)

	go c.pollLoop()

	return nil
}

func (c *Controller) pollLoop() {
	defer c.stoppedWg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			// Skip the tick if the previous fetch is still running.
			if !c.fetchActive.CompareAndSwap(false, true) {
				continue
			}
			c.pollOnce()
			c.fetchActive.Store(false)
		}
	}
}

// pollOnce is a silent refresh: fetch failures are swallowed, the
// previous render stays, the next tick tries again.
func (c *Controller) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	fetched, err := c.client.Messages(ctx, c.selfID, c.peerID)
	if err != nil {
		return
	}
	if !c.alive.Load() {
		return
	}

	c.applyFetched(fetched)
}

// Send appends an optimistic entry immediately and posts the message.
// On success the temp entry is removed; the next poll supplies the
// authoritative record. On failure the temp entry is removed, the
// draft is restored and the error returned. No retries.
func (c *Controller) Send(ctx context.Context, text string) error {
	if c.State() == StateTerminated {
		return ErrTerminated
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}

	temp := Message{
		ID:          tempID(),
		ClientMsgID: uuid.NewString(),
		SenderID:    c.selfID,
		ReceiverID:  c.peerID,
		Text:        text,
		Timestamp:   time.Now().UTC(),
	}

	c.mu.Lock()
	c.pending = append(c.pending, temp)
	c.draft = ""
	c.mu.Unlock()
	c.notify()

	_, err := c.client.SendMessage(ctx, temp)

	c.mu.Lock()
	c.removePendingLocked(temp.ID)
	if err != nil {
		c.draft = text
	}
	c.mu.Unlock()
	c.notify()

	if err != nil {
		return err
	}
	return nil
}

// Close stops polling immediately and flips the liveness flag so any
// in-flight fetch result is discarded. Terminal: the controller cannot
// be reopened.
func (c *Controller) Close() {
	if State(c.state.Swap(int32(StateTerminated))) == StateTerminated {
		return
	}

	// The liveness flag flips under the same lock applyFetched mutates
	// under, so a fetch result cannot slip in alongside the close.
	c.mu.Lock()
	c.alive.Store(false)
	if c.stopCh != nil {
		close(c.stopCh)
	}
	c.mu.Unlock()

	c.stoppedWg.Wait()
}

// Messages returns the rendered list: authoritative history ascending
// with pending optimistic entries appended at the end.
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	c.draft = text
	c.mu.Unlock()
}

// applyFetched replaces the authoritative list and drops pending
// entries the server now covers: matched by server id, then by
// clientMsgId, then by the (timestamp, text, senderId) triple.
func (c *Controller) applyFetched(fetched []Message) {
	sort.SliceStable(fetched, func(i, j int) bool {
		return fetched[i].Timestamp.Before(fetched[j].Timestamp)
	})

	c.mu.Lock()
	if !c.alive.Load() {
		c.mu.Unlock()
		return
	}
	c.messages = fetched

	if len(c.pending) > 0 {
		kept := c.pending[:0]
		for _, p := range c.pending {
			if !covers(fetched, p) {
				kept = append(kept, p)
			}
		}
		c.pending = kept
	}
	c.mu.Unlock()

	c.notify()
}

func covers(fetched []Message, pending Message) bool {
	for _, msg := range fetched {
		if msg.ID == pending.ID {
			return true
		}
		if pending.ClientMsgID != "" && msg.ClientMsgID == pending.ClientMsgID {
			return true
		}
		if msg.Timestamp.Equal(pending.Timestamp) && msg.Text == pending.Text && msg.SenderID == pending.SenderID {
			return true
		}
	}
	return false
}

func (c *Controller) removePendingLocked(id string) {
	kept := c.pending[:0]
	for _, p := range c.pending {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.pending = kept
}

func (c *Controller) snapshotLocked() []Message {
	out := make([]Message, 0, len(c.messages)+len(c.pending))
	out = append(out, c.messages...)
	out = append(out, c.pending...)
	return out
}

func (c *Controller) notify() {
	if c.onUpdate == nil || !c.alive.Load() {
		return
	}

	c.mu.Lock()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.onUpdate(snapshot)
}

func tempID() string {
	return "temp-" + strconv.FormatInt(time.Now().UnixNano(), 10)
}
