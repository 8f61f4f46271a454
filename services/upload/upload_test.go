package upload

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"medibook/models"
	"medibook/utils"

	"github.com/stretchr/testify/require"
)

// syncDispatcher processes on the calling goroutine.
type syncDispatcher struct {
	svc *Service
}

func (d syncDispatcher) Dispatch(ctx context.Context, id string) error {
	return d.svc.Process(ctx, id)
}

type failingDispatcher struct{}

func (failingDispatcher) Dispatch(context.Context, string) error { return errors.New("queue down") }

func newTestService(float float64) *Service {
	rnd := utils.FixedRandom{Float: float, Int: 7}
	svc := NewService(
		Simulator{Clock: utils.InstantClock{At: time.Unix(1700000000, 0)}, Rand: rnd, Tick: time.Millisecond},
		SimulatedTransport{Rand: rnd, SuccessRate: 0.7},
		0,
	)
	svc.Dispatcher = syncDispatcher{svc: svc}
	return svc
}

func TestOversizedFileRejectedWithoutState(t *testing.T) {
	svc := newTestService(0.1)
	_, err := svc.Start(context.Background(), "u1", FileMeta{Name: "scan.pdf", Size: 30 * 1024 * 1024})
	require.ErrorIs(t, err, ErrFileTooLarge)

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, `File "scan.pdf" exceeds the 25 MB limit`, rejected.Message)
	require.Empty(t, svc.List("u1"))
}

func TestEmptyFileRejected(t *testing.T) {
	require.ErrorIs(t, Validate(FileMeta{Name: "x"}, 0), ErrEmptyFile)
	require.NoError(t, Validate(FileMeta{Name: "x", Size: MaxFileSize}, 0))
}

func TestSmallFileAlwaysTerminates(t *testing.T) {
	for _, f := range []float64{0.0, 0.69, 0.7, 0.99} {
		svc := newTestService(f)
		u, err := svc.Start(context.Background(), "u1", FileMeta{Name: "note.txt", Size: 1024})
		require.NoError(t, err)

		got, err := svc.Get("u1", u.ID)
		require.NoError(t, err)
		require.Equal(t, 100, got.Progress)
		require.True(t, got.Terminal())
		if f < 0.7 {
			require.Equal(t, models.UploadSuccess, got.Status)
		} else {
			require.Equal(t, models.UploadError, got.Status)
			require.NotEmpty(t, got.Error)
		}
	}
}

func TestSimulatorStepsStayInRange(t *testing.T) {
	sim := Simulator{Clock: utils.InstantClock{}, Rand: utils.NewRandomSource(42), Tick: time.Millisecond}
	var seen []int
	require.NoError(t, sim.Run(context.Background(), func(p int) { seen = append(seen, p) }))

	require.Equal(t, 100, seen[len(seen)-1])
	prev := 0
	for i, p := range seen {
		step := p - prev
		require.Greater(t, step, 0)
		if i < len(seen)-1 {
			require.GreaterOrEqual(t, step, minStep)
			require.Less(t, step, maxStep)
		}
		prev = p
	}
}

func TestRetryOnlyFromError(t *testing.T) {
	svc := newTestService(0.95)
	ctx := context.Background()

	u, err := svc.Start(ctx, "u1", FileMeta{Name: "lab.pdf", Size: 2048})
	require.NoError(t, err)
	got, _ := svc.Get("u1", u.ID)
	require.Equal(t, models.UploadError, got.Status)

	svc.Transport = SimulatedTransport{Rand: utils.FixedRandom{Float: 0.1}, SuccessRate: 0.7}
	retried, err := svc.Retry(ctx, "u1", u.ID)
	require.NoError(t, err)
	require.Equal(t, 2, retried.Attempts)

	got, _ = svc.Get("u1", u.ID)
	require.Equal(t, models.UploadSuccess, got.Status)

	_, err = svc.Retry(ctx, "u1", u.ID)
	require.ErrorIs(t, err, ErrNotRetryable)
}

func TestUploadsAreScopedToOwner(t *testing.T) {
	svc := newTestService(0.1)
	u, err := svc.Start(context.Background(), "u1", FileMeta{Name: "a.pdf", Size: 10})
	require.NoError(t, err)

	_, err = svc.Get("u2", u.ID)
	require.ErrorIs(t, err, ErrUploadNotFound)
	require.Empty(t, svc.List("u2"))
	require.Len(t, svc.List("u1"), 1)
}

func TestInlineDispatchAwait(t *testing.T) {
	svc := newTestService(0.1)
	svc.Dispatcher = InlineDispatcher{Base: context.Background(), Process: svc.Process}

	u, err := svc.Start(context.Background(), "u1", FileMeta{Name: "a.pdf", Size: 10})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err := svc.Await(ctx, "u1", u.ID)
	require.NoError(t, err)
	require.Equal(t, models.UploadSuccess, got.Status)
}

func TestDispatchFailureEndsInError(t *testing.T) {
	svc := newTestService(0.1)
	svc.Dispatcher = failingDispatcher{}

	u, err := svc.Start(context.Background(), "u1", FileMeta{Name: "a.pdf", Size: 10})
	require.NoError(t, err)
	require.Equal(t, models.UploadError, u.Status)
}

func TestCancelledProcessingEndsInError(t *testing.T) {
	svc := newTestService(0.1)
	svc.Dispatcher = InlineDispatcher{Process: func(context.Context, string) error { return nil }}
	u, err := svc.Start(context.Background(), "u1", FileMeta{Name: "a.pdf", Size: 10})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Simulator.Clock = blockedClock{}
	require.ErrorIs(t, svc.Process(ctx, u.ID), context.Canceled)

	got, _ := svc.Get("u1", u.ID)
	require.Equal(t, models.UploadError, got.Status)
}

type blockedClock struct{}

func (blockedClock) Now() time.Time                       { return time.Time{} }
func (blockedClock) After(time.Duration) <-chan time.Time { return make(chan time.Time) }

// idleDispatcher accepts work that nothing ever processes.
type idleDispatcher struct{}

func (idleDispatcher) Dispatch(context.Context, string) error { return nil }

type recordingTransport struct {
	SimulatedTransport
	removed []string
}

func (t *recordingTransport) Remove(_ context.Context, u models.Upload) error {
	t.removed = append(t.removed, u.ID)
	return nil
}

func TestQueueDispatcherFallsBackWhileWorkerDown(t *testing.T) {
	svc := newTestService(0.1)
	down := func() bool { return false }

	svc.Dispatcher = QueueDispatcher{Ready: down, Fallback: syncDispatcher{svc: svc}}
	u, err := svc.Start(context.Background(), "u1", FileMeta{Name: "a.pdf", Size: 10})
	require.NoError(t, err)
	got, err := svc.Get("u1", u.ID)
	require.NoError(t, err)
	require.Equal(t, models.UploadSuccess, got.Status)

	svc.Dispatcher = QueueDispatcher{Ready: down}
	u, err = svc.Start(context.Background(), "u1", FileMeta{Name: "b.pdf", Size: 10})
	require.NoError(t, err)
	require.Equal(t, models.UploadError, u.Status)
}

func TestSweepFailsStalledUploads(t *testing.T) {
	svc := newTestService(0.1)
	svc.Dispatcher = idleDispatcher{}
	base := svc.Clock.Now()

	u, err := svc.Start(context.Background(), "u1", FileMeta{Name: "a.pdf", Size: 10})
	require.NoError(t, err)
	require.Equal(t, models.UploadUploading, u.Status)

	svc.Clock = utils.InstantClock{At: base.Add(time.Minute)}
	stalled, evicted := svc.Sweep()
	require.Zero(t, stalled)
	require.Zero(t, evicted)

	svc.Clock = utils.InstantClock{At: base.Add(svc.StallAfter + time.Second)}
	stalled, _ = svc.Sweep()
	require.Equal(t, 1, stalled)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := svc.Await(ctx, "u1", u.ID)
	require.NoError(t, err)
	require.Equal(t, models.UploadError, got.Status)
	require.Equal(t, interruptedMessage, got.Error)

	svc.Dispatcher = syncDispatcher{svc: svc}
	retried, err := svc.Retry(context.Background(), "u1", u.ID)
	require.NoError(t, err)
	require.Equal(t, 2, retried.Attempts)
}

func TestSweepEvictsFinishedUploads(t *testing.T) {
	svc := newTestService(0.9)
	base := svc.Clock.Now()

	staged, err := os.CreateTemp(t.TempDir(), "staged-*.pdf")
	require.NoError(t, err)
	staged.Close()

	u, err := svc.Start(context.Background(), "u1", FileMeta{Name: "a.pdf", Size: 10, Path: staged.Name()})
	require.NoError(t, err)
	got, _ := svc.Get("u1", u.ID)
	require.Equal(t, models.UploadError, got.Status)
	_, err = os.Stat(staged.Name())
	require.NoError(t, err, "failed uploads keep their staged file for a retry")

	svc.Clock = utils.InstantClock{At: base.Add(svc.Retention + time.Second)}
	_, evicted := svc.Sweep()
	require.Equal(t, 1, evicted)
	_, err = svc.Get("u1", u.ID)
	require.ErrorIs(t, err, ErrUploadNotFound)
	_, err = os.Stat(staged.Name())
	require.True(t, os.IsNotExist(err))
}

func TestRemove(t *testing.T) {
	svc := newTestService(0.1)
	transport := &recordingTransport{SimulatedTransport: SimulatedTransport{Rand: utils.FixedRandom{Float: 0.1}, SuccessRate: 0.7}}
	svc.Transport = transport

	svc.Dispatcher = idleDispatcher{}
	pending, err := svc.Start(context.Background(), "u1", FileMeta{Name: "a.pdf", Size: 10})
	require.NoError(t, err)
	require.ErrorIs(t, svc.Remove(context.Background(), "u1", pending.ID), ErrUploadInProgress)

	svc.Dispatcher = syncDispatcher{svc: svc}
	done, err := svc.Start(context.Background(), "u1", FileMeta{Name: "b.pdf", Size: 10})
	require.NoError(t, err)
	require.ErrorIs(t, svc.Remove(context.Background(), "u2", done.ID), ErrUploadNotFound)
	require.NoError(t, svc.Remove(context.Background(), "u1", done.ID))
	require.Equal(t, []string{done.ID}, transport.removed)
	require.Len(t, svc.List("u1"), 1)

	transport.SimulatedTransport.Rand = utils.FixedRandom{Float: 0.9}
	failed, err := svc.Start(context.Background(), "u1", FileMeta{Name: "c.pdf", Size: 10})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(context.Background(), "u1", failed.ID))
	require.Equal(t, []string{done.ID}, transport.removed)
}
