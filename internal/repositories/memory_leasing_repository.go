package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/leasingsys/leasing-service/internal/models"
	"github.com/leasingsys/leasing-service/internal/utils"
)

// memoryLeasingRepo keeps the collection in process memory behind the same
// contract as the Postgres repository. The slice preserves insertion order
// for List. lastID is a high-water mark, so ids are monotonic and never
// reused within a process lifetime even after the highest id is deleted.
//
// The mutex protects slice integrity only; it deliberately provides no
// cross-request conflict detection.
type memoryLeasingRepo struct {
	mu     sync.Mutex
	list   []*models.Leasing
	lastID int64
}

// NewMemoryLeasingRepository builds an in-memory store, optionally
// pre-seeded. Seed records with id 0 get one assigned.
func NewMemoryLeasingRepository(seed []*models.Leasing) LeasingRepository {
	r := &memoryLeasingRepo{}
	for _, l := range seed {
		cp := *l
		if cp.ID == 0 {
			cp.ID = r.lastID + 1
		}
		if cp.ID > r.lastID {
			r.lastID = cp.ID
		}
		now := time.Now().UTC()
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = now
		}
		if cp.UpdatedAt.IsZero() {
			cp.UpdatedAt = now
		}
		r.list = append(r.list, &cp)
	}
	return r
}

func (r *memoryLeasingRepo) List(ctx context.Context) ([]*models.Leasing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Leasing, 0, len(r.list))
	for _, l := range r.list {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

// GetByID returns a copy, never the stored record: callers stage patches on
// the returned value and must not be able to mutate the store through it.
func (r *memoryLeasingRepo) GetByID(ctx context.Context, id int64) (*models.Leasing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l := r.findLocked(id); l != nil {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *memoryLeasingRepo) FindByName(ctx context.Context, name string) (*models.Leasing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.list {
		if strings.EqualFold(l.Name, name) {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryLeasingRepo) Create(ctx context.Context, l *models.Leasing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	now := time.Now().UTC()
	l.ID = r.lastID
	l.CreatedAt = now
	l.UpdatedAt = now

	cp := *l
	r.list = append(r.list, &cp)
	return nil
}

func (r *memoryLeasingRepo) Update(ctx context.Context, id int64, ch models.LeasingChangeSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.findLocked(id)
	if l == nil {
		return utils.ErrNoRowsUpdated
	}

	if ch.Name != nil {
		l.Name = *ch.Name
	}
	if ch.Details != nil {
		l.Details = *ch.Details
	}
	if ch.ImageURL != nil {
		l.ImageURL = *ch.ImageURL
	}
	if ch.Amenity != nil {
		l.Amenity = *ch.Amenity
	}
	if ch.Occupancy != nil {
		l.Occupancy = *ch.Occupancy
	}
	if ch.SquareFootage != nil {
		l.SquareFootage = *ch.SquareFootage
	}
	if ch.Rate != nil {
		l.Rate = *ch.Rate
	}
	l.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryLeasingRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, l := range r.list {
		if l.ID == id {
			r.list = append(r.list[:i], r.list[i+1:]...)
			return nil
		}
	}
	return utils.ErrNoRowsDeleted
}

func (r *memoryLeasingRepo) Ping(ctx context.Context) error {
	return nil
}

func (r *memoryLeasingRepo) findLocked(id int64) *models.Leasing {
	for _, l := range r.list {
		if l.ID == id {
			return l
		}
	}
	return nil
}
