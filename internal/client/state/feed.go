// Package state holds the in-memory view state shown to the user and
// reconciles it with operation results. The feed is updated by id-keyed
// replace/remove after mutations instead of a full reload; a fresh
// ListNotes remains the correctness fallback whenever an operation's
// effect is unknown.
package state

import (
	"sort"
	"strings"
	"sync"

	"github.com/notesphere/cli/internal/client/models"
)

// Status is the per-screen loading state machine. Permitted transitions:
// Idle→Loading, Loaded→Loading, Failed→Loading, Loading→{Loaded,Failed}.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// SortField selects the projection ordering.
type SortField string

const (
	SortByTitle   SortField = "title"
	SortByCreated SortField = "created"
	SortByStars   SortField = "stars"
)

// Filter restricts the visible projection. Zero values match everything.
type Filter struct {
	Subject  string
	Semester int
}

// Feed is the reconciled note collection backing the list screen. All
// methods are safe for concurrent use; completion handlers racing against
// screen teardown are resolved by the load generation token.
type Feed struct {
	mu     sync.Mutex
	status Status
	errMsg string
	notes  []models.Note
	gen    uint64
	closed bool

	sortField SortField
	asc       bool
	filter    Filter
}

// NewFeed returns an idle feed sorted by creation date, newest first.
func NewFeed() *Feed {
	return &Feed{status: StatusIdle, sortField: SortByCreated, asc: false}
}

// BeginLoad moves the feed to Loading and returns a generation token for
// the completion call. A load while one is already in flight, or after
// Close, is refused; the caller must treat ok=false as a no-op.
func (f *Feed) BeginLoad() (gen uint64, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.status == StatusLoading {
		return 0, false
	}
	f.gen++
	f.status = StatusLoading
	f.errMsg = ""
	return f.gen, true
}

// CompleteLoad installs the fetched collection. Results carrying a stale
// generation (superseded load or torn-down screen) are discarded silently.
func (f *Feed) CompleteLoad(gen uint64, notes []models.Note) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || gen != f.gen || f.status != StatusLoading {
		return
	}
	f.notes = append([]models.Note(nil), notes...)
	f.status = StatusLoaded
	f.errMsg = ""
}

// FailLoad records a failed load with a human-readable message.
func (f *Feed) FailLoad(gen uint64, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || gen != f.gen || f.status != StatusLoading {
		return
	}
	if msg == "" {
		msg = "load failed"
	}
	f.status = StatusFailed
	f.errMsg = msg
}

// Close tears the feed down. Every later mutation or in-flight completion
// is discarded.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.notes = nil
}

// Status returns the current machine state and, when Failed, its message.
func (f *Feed) Status() (Status, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status, f.errMsg
}

// Replace swaps the note with the same id for the server's updated copy.
// The last response applied wins; each server payload is self-describing,
// so arrival order does not matter for correctness.
func (f *Feed) Replace(n models.Note) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	for i := range f.notes {
		if f.notes[i].ID == n.ID {
			f.notes[i] = n
			return
		}
	}
}

// Upsert replaces by id, or appends when the note is new (e.g. after an
// upload confirmed by the server).
func (f *Feed) Upsert(n models.Note) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	for i := range f.notes {
		if f.notes[i].ID == n.ID {
			f.notes[i] = n
			return
		}
	}
	f.notes = append(f.notes, n)
}

// Remove drops the note with the given id, reporting whether it was
// present. Called only after the server confirms a delete.
func (f *Feed) Remove(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false
	}
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the note with the given id.
func (f *Feed) Get(id string) (models.Note, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, n := range f.notes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Note{}, false
}

// Len reports the size of the backing collection, ignoring the filter.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notes)
}

// SetSort selects the projection ordering.
func (f *Feed) SetSort(field SortField, asc bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sortField = field
	f.asc = asc
}

// SetFilter selects the projection filter.
func (f *Feed) SetFilter(filter Filter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter = filter
}

// Visible returns the filtered, sorted projection of the collection. The
// result is a fresh slice; the backing collection is never reordered or
// mutated, and recomputing after any change is cheap.
func (f *Feed) Visible() []models.Note {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Note, 0, len(f.notes))
	for _, n := range f.notes {
		if f.filter.Subject != "" && !strings.EqualFold(n.Subject, f.filter.Subject) {
			continue
		}
		if f.filter.Semester != 0 && n.Semester != f.filter.Semester {
			continue
		}
		out = append(out, n)
	}

	less := lessFunc(f.sortField)
	asc := f.asc
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return less(&out[i], &out[j])
		}
		return less(&out[j], &out[i])
	})
	return out
}

// lessFunc builds a total order for the field, with the immutable id as
// tiebreak so ascending and descending are exact reversals of each other.
func lessFunc(field SortField) func(a, b *models.Note) bool {
	switch field {
	case SortByTitle:
		return func(a, b *models.Note) bool {
			at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if at != bt {
				return at < bt
			}
			return a.ID < b.ID
		}
	case SortByStars:
		return func(a, b *models.Note) bool {
			if a.Stars != b.Stars {
				return a.Stars < b.Stars
			}
			return a.ID < b.ID
		}
	default: // SortByCreated
		return func(a, b *models.Note) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		}
	}
}
