package gallery

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/ytget/cat-gallery/internal/event"
	"github.com/ytget/cat-gallery/internal/fetch"
	"github.com/ytget/cat-gallery/internal/model"
)

// ErrClosed is returned by LoadImage once the controller has been closed
var ErrClosed = errors.New("gallery controller closed")

// Controller owns the gallery sequence and the operations changing it
type Controller struct {
	store   *Store
	fetcher fetch.Fetcher
	broker  *event.Broker

	settingsMu sync.RWMutex
	alt        string
	maxHeight  int

	// lifetime of the controller; cancelled by Close
	ctx    context.Context
	cancel context.CancelFunc

	lifecycleMu sync.Mutex
	closed      bool
	inflight    sync.WaitGroup
	active      atomic.Int32

	startOnce sync.Once
}

// NewController creates a controller with an empty sequence. broker may be nil.
func NewController(fetcher fetch.Fetcher, broker *event.Broker) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		store:     NewStore(),
		fetcher:   fetcher,
		broker:    broker,
		alt:       DefaultAltText,
		maxHeight: DefaultMaxHeight,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SetAltText sets the accessibility label carried by every descriptor
func (c *Controller) SetAltText(alt string) {
	if alt == "" {
		alt = DefaultAltText
	}
	c.settingsMu.Lock()
	c.alt = alt
	c.settingsMu.Unlock()
}

// SetMaxHeight sets the maximum display height carried by every descriptor
func (c *Controller) SetMaxHeight(height int) {
	if height <= 0 {
		height = DefaultMaxHeight
	}
	c.settingsMu.Lock()
	c.maxHeight = height
	c.settingsMu.Unlock()
}

// MaxHeight returns the configured maximum display height
func (c *Controller) MaxHeight() int {
	c.settingsMu.RLock()
	defer c.settingsMu.RUnlock()
	return c.maxHeight
}

// Start runs the initial load. Only the first call has an effect.
func (c *Controller) Start() {
	c.startOnce.Do(func() {
		log.Printf("Gallery controller started, loading initial image")
		c.LoadImageAsync()
	})
}

// OnRender registers fn to receive the derived descriptors after every
// replacement of the sequence. The returned function unregisters it.
func (c *Controller) OnRender(fn func([]Descriptor)) func() {
	if fn == nil {
		return func() {}
	}
	return c.store.Subscribe(func(seq model.GallerySequence) {
		fn(c.derive(seq))
	})
}

// Descriptors derives the display list from the current sequence
func (c *Controller) Descriptors() []Descriptor {
	return c.derive(c.store.Snapshot())
}

// Sequence returns a copy of the current sequence
func (c *Controller) Sequence() model.GallerySequence {
	return c.store.Snapshot()
}

// Version counts replacements of the sequence. Read from inside an OnRender
// callback it is the version of the descriptors being delivered.
func (c *Controller) Version() uint64 {
	return c.store.Version()
}

// Pending returns the number of fetches currently in flight
func (c *Controller) Pending() int {
	return int(c.active.Load())
}

// LoadImageAsync runs LoadImage on its own goroutine, bound to the
// controller lifetime
func (c *Controller) LoadImageAsync() {
	go func() {
		_, _ = c.LoadImage(c.ctx)
	}()
}

// LoadImage fetches one reference and appends it to the latest sequence. On
// failure the sequence is left unchanged and the error is returned and
// published on event.FetchFailed.
func (c *Controller) LoadImage(ctx context.Context) (model.ImageReference, error) {
	c.lifecycleMu.Lock()
	if c.closed {
		c.lifecycleMu.Unlock()
		return "", ErrClosed
	}
	c.inflight.Add(1)
	c.lifecycleMu.Unlock()
	defer c.inflight.Done()

	c.active.Add(1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()

	task := model.NewFetchTask()
	task.Status = model.FetchStatusLoading
	c.publish(event.FetchStarted, task)

	ref, err := c.fetcher.Fetch(ctx)
	c.active.Add(-1)
	if err == nil && c.ctx.Err() != nil {
		// resolved after Close; the result is dropped
		err = ErrClosed
	}
	if err != nil {
		task.Fail(err)
		log.Printf("LoadImage failed for task %s: %v", task.ID, err)
		c.publish(event.FetchFailed, task)
		return "", err
	}

	c.store.Update(func(seq model.GallerySequence) model.GallerySequence {
		return seq.Append(ref)
	})

	task.Complete(ref)
	log.Printf("LoadImage appended %s (task %s, took %v)", ref, task.ID, task.Duration())
	c.publish(event.FetchCompleted, task)
	return ref, nil
}

// RemoveImage removes the entry at position. Out of range positions leave the
// sequence unchanged.
func (c *Controller) RemoveImage(position int) {
	var removed model.ImageReference
	var found bool
	c.store.Update(func(seq model.GallerySequence) model.GallerySequence {
		removed, found = seq.At(position)
		return seq.RemoveAt(position)
	})

	if found {
		log.Printf("RemoveImage removed position %d (%s)", position, removed)
	}
}

// Close cancels in-flight fetches and waits for them to return. Results that
// arrive afterwards are discarded.
func (c *Controller) Close() {
	c.lifecycleMu.Lock()
	if c.closed {
		c.lifecycleMu.Unlock()
		return
	}
	c.closed = true
	c.lifecycleMu.Unlock()

	c.cancel()
	c.inflight.Wait()
	log.Printf("Gallery controller closed with %d images", c.store.Len())
}

func (c *Controller) derive(seq model.GallerySequence) []Descriptor {
	c.settingsMu.RLock()
	alt, maxHeight := c.alt, c.maxHeight
	c.settingsMu.RUnlock()
	return deriveDescriptors(seq, alt, maxHeight, c.RemoveImage)
}

func (c *Controller) publish(topic event.Topic, task *model.FetchTask) {
	if c.broker != nil {
		c.broker.PublishTask(topic, task)
	}
}
