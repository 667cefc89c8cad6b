package gallery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/cat-gallery/internal/event"
	"github.com/ytget/cat-gallery/internal/fetch"
	"github.com/ytget/cat-gallery/internal/model"
)

// stubFetcher returns queued results in order
type stubFetcher struct {
	mu      sync.Mutex
	results []stubResult
	calls   int
}

type stubResult struct {
	ref model.ImageReference
	err error
}

func (f *stubFetcher) Fetch(ctx context.Context) (model.ImageReference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.results) == 0 {
		return "", errors.New("no result queued")
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.ref, r.err
}

func (f *stubFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// gatedFetcher blocks every call until release is closed
type gatedFetcher struct {
	started chan struct{}
	release chan struct{}
	mu      sync.Mutex
	next    int
	refs    []model.ImageReference
}

func (f *gatedFetcher) Fetch(ctx context.Context) (model.ImageReference, error) {
	f.mu.Lock()
	ref := f.refs[f.next]
	f.next++
	f.mu.Unlock()

	f.started <- struct{}{}
	select {
	case <-f.release:
		return ref, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func withSequence(c *Controller, refs ...model.ImageReference) {
	c.store.Update(func(model.GallerySequence) model.GallerySequence {
		return model.NewGallerySequence(refs...)
	})
}

func TestNewController(t *testing.T) {
	c := NewController(&stubFetcher{}, nil)
	defer c.Close()

	assert.Equal(t, 0, c.Sequence().Len())
	assert.Empty(t, c.Descriptors())
	assert.Equal(t, DefaultMaxHeight, c.MaxHeight())
	assert.Equal(t, 0, c.Pending())
}

func TestLoadImage_Appends(t *testing.T) {
	fetcher := &stubFetcher{results: []stubResult{{ref: "https://x/1.jpg"}, {ref: "https://x/2.jpg"}}}
	c := NewController(fetcher, nil)
	defer c.Close()

	ref, err := c.LoadImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ImageReference("https://x/1.jpg"), ref)

	_, err = c.LoadImage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.GallerySequence{"https://x/1.jpg", "https://x/2.jpg"}, c.Sequence())
}

func TestLoadImage_FailureLeavesSequence(t *testing.T) {
	fetcher := &stubFetcher{results: []stubResult{
		{ref: "a"},
		{err: fetch.ErrMalformedResponse},
	}}
	c := NewController(fetcher, nil)
	defer c.Close()

	_, err := c.LoadImage(context.Background())
	require.NoError(t, err)

	renders := 0
	c.OnRender(func([]Descriptor) { renders++ })

	_, err = c.LoadImage(context.Background())
	assert.ErrorIs(t, err, fetch.ErrMalformedResponse)
	assert.Equal(t, model.GallerySequence{"a"}, c.Sequence())
	assert.Equal(t, 0, renders, "failed fetch must not replace the sequence")
}

func TestLoadImage_PublishesLifecycle(t *testing.T) {
	broker := event.NewBroker(8)
	fetcher := &stubFetcher{results: []stubResult{
		{ref: "https://x/1.jpg"},
		{err: fetch.ErrUnexpectedStatus},
	}}
	c := NewController(fetcher, broker)
	defer c.Close()

	var mu sync.Mutex
	var started, completed, failed []*model.FetchTask
	record := func(dst *[]*model.FetchTask) func(*model.FetchTask) {
		return func(task *model.FetchTask) {
			mu.Lock()
			*dst = append(*dst, task)
			mu.Unlock()
		}
	}
	require.NoError(t, broker.SubscribeTask(event.FetchStarted, record(&started)))
	require.NoError(t, broker.SubscribeTask(event.FetchCompleted, record(&completed)))
	require.NoError(t, broker.SubscribeTask(event.FetchFailed, record(&failed)))

	_, _ = c.LoadImage(context.Background())
	_, _ = c.LoadImage(context.Background())

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(started) == 2 && len(completed) == 1 && len(failed) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, model.FetchStatusLoading, started[0].Status)
	assert.Equal(t, model.FetchStatusCompleted, completed[0].Status)
	assert.Equal(t, model.ImageReference("https://x/1.jpg"), completed[0].Reference)
	assert.Equal(t, model.FetchStatusError, failed[0].Status)
	assert.Contains(t, failed[0].LastError, fetch.ErrUnexpectedStatus.Error())
}

func TestRemoveImage(t *testing.T) {
	tests := []struct {
		name     string
		initial  model.GallerySequence
		position int
		expected model.GallerySequence
	}{
		{"middle", model.GallerySequence{"a", "b", "c"}, 1, model.GallerySequence{"a", "c"}},
		{"out of range", model.GallerySequence{"a"}, 5, model.GallerySequence{"a"}},
		{"negative", model.GallerySequence{"a"}, -1, model.GallerySequence{"a"}},
		{"last remaining", model.GallerySequence{"a"}, 0, model.GallerySequence{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(&stubFetcher{}, nil)
			defer c.Close()
			withSequence(c, tt.initial...)

			c.RemoveImage(tt.position)

			assert.Equal(t, tt.expected, c.Sequence())
		})
	}
}

func TestDescriptors(t *testing.T) {
	c := NewController(&stubFetcher{}, nil)
	defer c.Close()
	c.SetAltText("Kitty")
	c.SetMaxHeight(150)
	withSequence(c, "a", "b", "c")

	descs := c.Descriptors()
	require.Len(t, descs, 3)
	for i, d := range descs {
		assert.Equal(t, i, d.Position)
		assert.Equal(t, "Kitty", d.Alt)
		assert.Equal(t, 150, d.MaxHeight)
		assert.NotNil(t, d.OnClick)
	}
	assert.Equal(t, model.ImageReference("b"), descs[1].Source)

	descs[1].OnClick()
	assert.Equal(t, model.GallerySequence{"a", "c"}, c.Sequence())
}

func TestSettersFallBackToDefaults(t *testing.T) {
	c := NewController(&stubFetcher{}, nil)
	defer c.Close()

	c.SetAltText("")
	c.SetMaxHeight(0)
	withSequence(c, "a")

	d := c.Descriptors()[0]
	assert.Equal(t, DefaultAltText, d.Alt)
	assert.Equal(t, DefaultMaxHeight, d.MaxHeight)
}

func TestOnRender(t *testing.T) {
	c := NewController(&stubFetcher{results: []stubResult{{ref: "https://x/1.jpg"}}}, nil)
	defer c.Close()

	var rendered [][]Descriptor
	var versions []uint64
	unsubscribe := c.OnRender(func(descs []Descriptor) {
		rendered = append(rendered, descs)
		versions = append(versions, c.Version())
	})

	_, err := c.LoadImage(context.Background())
	require.NoError(t, err)
	c.RemoveImage(3)

	require.Len(t, rendered, 2)
	assert.Len(t, rendered[0], 1)
	assert.Equal(t, model.ImageReference("https://x/1.jpg"), rendered[0][0].Source)
	assert.Len(t, rendered[1], 1, "no-op removal still re-renders the same list")
	assert.Equal(t, []uint64{1, 2}, versions)

	unsubscribe()
	c.RemoveImage(0)
	assert.Len(t, rendered, 2)
}

// Mount, automatic load, one rendered image.
func TestStart_LoadsOnce(t *testing.T) {
	fetcher := &stubFetcher{results: []stubResult{{ref: "https://x/1.jpg"}, {ref: "https://x/2.jpg"}}}
	c := NewController(fetcher, nil)
	defer c.Close()

	renderedLen := make(chan int, 4)
	c.OnRender(func(descs []Descriptor) { renderedLen <- len(descs) })

	assert.Empty(t, c.Descriptors(), "nothing rendered before the first fetch resolves")

	c.Start()
	c.Start()

	select {
	case n := <-renderedLen:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("initial load did not render")
	}

	assert.Equal(t, model.GallerySequence{"https://x/1.jpg"}, c.Sequence())
	assert.Never(t, func() bool { return fetcher.Calls() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

// Two loads in flight at once both land in the sequence.
func TestLoadImage_ConcurrentCompletionsKeepBoth(t *testing.T) {
	fetcher := &gatedFetcher{
		started: make(chan struct{}, 2),
		release: make(chan struct{}),
		refs:    []model.ImageReference{"https://x/1.jpg", "https://x/2.jpg"},
	}
	c := NewController(fetcher, nil)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.LoadImage(context.Background())
			assert.NoError(t, err)
		}()
	}

	<-fetcher.started
	<-fetcher.started
	assert.Equal(t, 2, c.Pending())
	close(fetcher.release)
	wg.Wait()

	seq := c.Sequence()
	assert.Equal(t, 2, seq.Len())
	assert.True(t, seq.Contains("https://x/1.jpg"))
	assert.True(t, seq.Contains("https://x/2.jpg"))
	assert.Equal(t, 0, c.Pending())
}

func TestClose_CancelsInFlight(t *testing.T) {
	fetcher := &gatedFetcher{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		refs:    []model.ImageReference{"https://x/1.jpg"},
	}
	c := NewController(fetcher, nil)

	errCh := make(chan error, 1)
	go func() {
		_, err := c.LoadImage(context.Background())
		errCh <- err
	}()

	<-fetcher.started
	c.Close()

	err := <-errCh
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, c.Sequence().Len())

	_, err = c.LoadImage(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	// closing twice is harmless
	c.Close()
}

// stubbornFetcher ignores ctx and resolves only when release is closed
type stubbornFetcher struct {
	started chan struct{}
	release chan struct{}
}

func (f *stubbornFetcher) Fetch(ctx context.Context) (model.ImageReference, error) {
	f.started <- struct{}{}
	<-f.release
	return "https://x/late.jpg", nil
}

func TestClose_DiscardsLateResult(t *testing.T) {
	fetcher := &stubbornFetcher{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	broker := event.NewBroker(0)
	defer broker.Close()
	c := NewController(fetcher, broker)

	failed := make(chan *model.FetchTask, 1)
	require.NoError(t, broker.SubscribeTask(event.FetchFailed, func(task *model.FetchTask) {
		failed <- task
	}))

	renders := 0
	c.OnRender(func([]Descriptor) { renders++ })

	errCh := make(chan error, 1)
	go func() {
		_, err := c.LoadImage(context.Background())
		errCh <- err
	}()
	<-fetcher.started

	closed := make(chan struct{})
	go func() {
		c.Close()
		close(closed)
	}()

	// Close blocks on the in-flight fetch until it resolves
	require.Eventually(t, func() bool { return c.ctx.Err() != nil }, time.Second, 5*time.Millisecond)
	close(fetcher.release)

	err := <-errCh
	assert.ErrorIs(t, err, ErrClosed)
	<-closed

	assert.Equal(t, 0, c.Sequence().Len())
	assert.Equal(t, 0, renders)
	assert.Equal(t, uint64(0), c.Version())
	assert.Equal(t, 0, c.Pending())

	select {
	case task := <-failed:
		assert.Equal(t, model.FetchStatusError, task.Status)
		assert.Contains(t, task.LastError, ErrClosed.Error())
	case <-time.After(time.Second):
		t.Fatal("expected a fetch.failed event for the discarded result")
	}
}
