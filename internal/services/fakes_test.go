package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"eventgate/internal/models/db_models"
	"eventgate/internal/repositories"
)

var errFakeDown = errors.New("fake repository failure")

// fakeAttendantRepo is an in-memory AttendantRepository. MarkCheckedIn uses
// the same null-guarded compare-and-set semantics as the SQL implementation,
// so race tests exercise the real contract.
type fakeAttendantRepo struct {
	mu         sync.Mutex
	byID       map[uuid.UUID]*db_models.Attendant
	failCreate bool
	failUpdate bool
}

func newFakeAttendantRepo() *fakeAttendantRepo {
	return &fakeAttendantRepo{byID: make(map[uuid.UUID]*db_models.Attendant)}
}

func (f *fakeAttendantRepo) add(a *db_models.Attendant) *db_models.Attendant {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.byID[a.ID] = a
	return a
}

func copyAttendant(a *db_models.Attendant) *db_models.Attendant {
	if a == nil {
		return nil
	}
	dup := *a
	return &dup
}

func (f *fakeAttendantRepo) Create(ctx context.Context, attendant *db_models.Attendant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errFakeDown
	}
	if attendant.ID == uuid.Nil {
		attendant.ID = uuid.New()
	}
	f.byID[attendant.ID] = copyAttendant(attendant)
	return nil
}

func (f *fakeAttendantRepo) Update(ctx context.Context, attendant *db_models.Attendant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return errFakeDown
	}
	if _, ok := f.byID[attendant.ID]; !ok {
		return errFakeDown
	}
	f.byID[attendant.ID] = copyAttendant(attendant)
	return nil
}

func (f *fakeAttendantRepo) GetByID(ctx context.Context, eventID, id uuid.UUID) (*db_models.Attendant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok || a.EventID != eventID {
		return nil, nil
	}
	return copyAttendant(a), nil
}

func (f *fakeAttendantRepo) GetByCode(ctx context.Context, eventID uuid.UUID, code string) (*db_models.Attendant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.EventID == eventID && a.Code == code {
			return copyAttendant(a), nil
		}
	}
	return nil, nil
}

func (f *fakeAttendantRepo) FindByContact(ctx context.Context, eventID uuid.UUID, email, phone string) (*db_models.Attendant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.EventID != eventID {
			continue
		}
		if a.Email == email || (phone != "" && a.Phone == phone) {
			return copyAttendant(a), nil
		}
	}
	return nil, nil
}

func (f *fakeAttendantRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]db_models.Attendant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Attendant
	for _, a := range f.byID {
		if a.EventID == eventID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendantRepo) MarkCheckedIn(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok || a.CheckedInAt != nil {
		return false, nil
	}
	stamp := at
	a.CheckedInAt = &stamp
	return true, nil
}

func (f *fakeAttendantRepo) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.byID {
		if a.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttendantRepo) CountCheckedIn(ctx context.Context, eventID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.byID {
		if a.EventID == eventID && a.CheckedInAt != nil {
			n++
		}
	}
	return n, nil
}

// fakeGroupRepo mirrors the conditional-update reservation semantics.
type fakeGroupRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*db_models.EventGroup
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{byID: make(map[uuid.UUID]*db_models.EventGroup)}
}

func (f *fakeGroupRepo) add(g *db_models.EventGroup) *db_models.EventGroup {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	f.byID[g.ID] = g
	return g
}

func (f *fakeGroupRepo) current(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.byID[id]; ok {
		return g.CurrentCount
	}
	return -1
}

func (f *fakeGroupRepo) Create(ctx context.Context, group *db_models.EventGroup) error {
	f.add(group)
	return nil
}

func (f *fakeGroupRepo) Delete(ctx context.Context, eventID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.byID[id]; ok && g.EventID == eventID {
		delete(f.byID, id)
	}
	return nil
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*db_models.EventGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	dup := *g
	return &dup, nil
}

func (f *fakeGroupRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]db_models.EventGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.EventGroup
	for _, g := range f.byID {
		if g.EventID == eventID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGroupRepo) TryReserve(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	if g.LimitCount != 0 && g.CurrentCount >= g.LimitCount {
		return false, nil
	}
	g.CurrentCount++
	return true, nil
}

func (f *fakeGroupRepo) ReleaseSlot(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.byID[id]; ok && g.CurrentCount > 0 {
		g.CurrentCount--
	}
	return nil
}

type fakeEventRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*db_models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[uuid.UUID]*db_models.Event)}
}

func (f *fakeEventRepo) add(e *db_models.Event) *db_models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.byID[e.ID] = e
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, event *db_models.Event) error {
	f.add(event)
	return nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *db_models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[event.ID] = event
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	dup := *e
	return &dup, nil
}

func (f *fakeEventRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Event
	for _, e := range f.byID {
		if e.AccountID == accountID {
			out = append(out, *e)
		}
	}
	return out, nil
}

type fakeLogRepo struct {
	mu         sync.Mutex
	entries    []db_models.CheckinLog
	failAppend bool
}

func (f *fakeLogRepo) Append(ctx context.Context, entry *db_models.CheckinLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAppend {
		return errFakeDown
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLogRepo) ListRecent(ctx context.Context, eventID uuid.UUID, limit int) ([]repositories.RecentCheckinRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []repositories.RecentCheckinRow
	for i := len(f.entries) - 1; i >= 0 && len(rows) < limit; i-- {
		e := f.entries[i]
		if e.EventID != eventID {
			continue
		}
		rows = append(rows, repositories.RecentCheckinRow{
			AttendantID: e.AttendantID.String(),
			Source:      e.Source,
			CheckedInAt: e.CheckedInAt.Format(time.RFC3339),
		})
	}
	return rows, nil
}

func (f *fakeLogRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// fakeGallery returns a fixed candidate list, already distance-ordered the
// way the pgvector query would return it.
type fakeGallery struct {
	candidates []repositories.GalleryCandidate
	err        error
}

func (f *fakeGallery) Nearest(ctx context.Context, eventID uuid.UUID, probe pgvector.Vector, k int) ([]repositories.GalleryCandidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.candidates) > k {
		return f.candidates[:k], nil
	}
	return f.candidates, nil
}

func testEmbedding(seed float32) []float32 {
	v := make([]float32, db_models.EmbeddingDim)
	for i := range v {
		v[i] = seed
	}
	return v
}
