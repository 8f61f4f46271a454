package upload

import (
	"errors"
	"sort"
	"sync"
	"time"

	"medibook/models"
)

var (
	ErrUploadNotFound   = errors.New("upload not found")
	ErrUploadInProgress = errors.New("upload is still in progress")
)

type entry struct {
	upload models.Upload
	path   string
	done   chan struct{}
}

// Tracker holds upload state in memory. Each attempt has a done channel that
// is closed when the upload reaches a terminal status.
type Tracker struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func NewTracker() *Tracker {
	return &Tracker{entries: make(map[string]*entry)}
}

func (t *Tracker) add(u models.Upload, path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[u.ID] = &entry{upload: u, path: path, done: make(chan struct{})}
}

func (t *Tracker) get(id string) (models.Upload, string, <-chan struct{}, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[id]
	if !ok {
		return models.Upload{}, "", nil, ErrUploadNotFound
	}
	return e.upload, e.path, e.done, nil
}

func (t *Tracker) list(owner string) []models.Upload {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]models.Upload, 0, len(t.entries))
	for _, e := range t.entries {
		if e.upload.OwnerID == owner {
			out = append(out, e.upload)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// update applies fn to an upload that is still in flight. Terminal uploads
// are left untouched.
func (t *Tracker) update(id string, fn func(u *models.Upload)) (models.Upload, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok {
		return models.Upload{}, ErrUploadNotFound
	}
	if e.upload.Terminal() {
		return e.upload, nil
	}
	fn(&e.upload)
	if e.upload.Terminal() {
		close(e.done)
	}
	return e.upload, nil
}

// restart moves a failed upload back to uploading with a fresh done channel.
func (t *Tracker) restart(id string, fn func(u *models.Upload)) (models.Upload, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok {
		return models.Upload{}, ErrUploadNotFound
	}
	if e.upload.Status != models.UploadError {
		return e.upload, ErrNotRetryable
	}
	fn(&e.upload)
	e.done = make(chan struct{})
	return e.upload, nil
}

// remove drops a terminal upload and returns its last state and staged path.
func (t *Tracker) remove(id string) (models.Upload, string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok {
		return models.Upload{}, "", ErrUploadNotFound
	}
	if !e.upload.Terminal() {
		return e.upload, "", ErrUploadInProgress
	}
	delete(t.entries, id)
	return e.upload, e.path, nil
}

// sweep applies fail to uploads still in flight that were last touched
// before stalledBefore, and evicts terminal uploads last touched before
// evictBefore. It returns the ids it failed and the staged path of each
// evicted id.
func (t *Tracker) sweep(stalledBefore, evictBefore time.Time, fail func(u *models.Upload)) (stalled []string, evicted map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	evicted = make(map[string]string)
	for id, e := range t.entries {
		switch {
		case !e.upload.Terminal() && e.upload.UpdatedAt.Before(stalledBefore):
			fail(&e.upload)
			close(e.done)
			stalled = append(stalled, id)
		case e.upload.Terminal() && e.upload.UpdatedAt.Before(evictBefore):
			delete(t.entries, id)
			evicted[id] = e.path
		}
	}
	return stalled, evicted
}
