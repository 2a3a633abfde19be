package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leasingsys/leasing-service/internal/models"
	"github.com/leasingsys/leasing-service/internal/utils"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func newRecord(name string) *models.Leasing {
	return &models.Leasing{Name: name, Occupancy: 4, SquareFootage: 100, Rate: 200}
}

// -----------------------------------------------------------------------------
// Identity assignment
// -----------------------------------------------------------------------------

func TestMemoryRepoAssignsMonotonicIDsStartingAtOne(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeasingRepository(nil)

	a := newRecord("Leasing1")
	require.NoError(t, repo.Create(ctx, a))
	require.Equal(t, int64(1), a.ID, "first assigned id must be 1, never the 0 sentinel")

	b := newRecord("Leasing2")
	require.NoError(t, repo.Create(ctx, b))
	require.Equal(t, int64(2), b.ID)
	require.False(t, a.CreatedAt.IsZero())
}

func TestMemoryRepoNeverReusesIDsAfterDeletion(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeasingRepository(nil)

	a := newRecord("Leasing1")
	require.NoError(t, repo.Create(ctx, a))
	b := newRecord("Leasing2")
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.Delete(ctx, b.ID))

	c := newRecord("Leasing3")
	require.NoError(t, repo.Create(ctx, c))
	require.Equal(t, int64(3), c.ID, "deleting the highest id must not free it for reuse")
}

// -----------------------------------------------------------------------------
// Reads
// -----------------------------------------------------------------------------

func TestMemoryRepoListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeasingRepository([]*models.Leasing{
		newRecord("First"), newRecord("Second"), newRecord("Third"),
	})

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "First", list[0].Name)
	require.Equal(t, "Second", list[1].Name)
	require.Equal(t, "Third", list[2].Name)
}

func TestMemoryRepoGetByIDReturnsNilNilWhenAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeasingRepository(nil)

	l, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err, "absence is a valid result, not an error")
	require.Nil(t, l)
}

func TestMemoryRepoGetByIDReturnsIsolatedCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeasingRepository([]*models.Leasing{newRecord("Royal Villa")})

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Mutating the returned value must not leak into the store.
	got.Name = "Hacked"
	again, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Royal Villa", again.Name)
}

func TestMemoryRepoFindByNameIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeasingRepository([]*models.Leasing{newRecord("Royal Villa")})

	hit, err := repo.FindByName(ctx, "rOyAl vIlLa")
	require.NoError(t, err)
	require.NotNil(t, hit)

	miss, err := repo.FindByName(ctx, "No Such Villa")
	require.NoError(t, err)
	require.Nil(t, miss)
}

// -----------------------------------------------------------------------------
// Update / delete
// -----------------------------------------------------------------------------

func TestMemoryRepoUpdateWritesOnlyNamedFields(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeasingRepository([]*models.Leasing{newRecord("Royal Villa")})

	before, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	err = repo.Update(ctx, 1, models.LeasingChangeSet{Rate: f64Ptr(250)})
	require.NoError(t, err)

	after, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 250.0, after.Rate)
	require.Equal(t, before.Name, after.Name)
	require.Equal(t, before.Occupancy, after.Occupancy)
	require.Equal(t, before.CreatedAt, after.CreatedAt)
	require.True(t, !after.UpdatedAt.Before(before.UpdatedAt),
		"updatedAt must be monotonically non-decreasing")
}

func TestMemoryRepoUpdateAbsentIDFails(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeasingRepository(nil)

	err := repo.Update(ctx, 42, models.LeasingChangeSet{Name: strPtr("x")})
	require.ErrorIs(t, err, utils.ErrNoRowsUpdated)
}

func TestMemoryRepoDeleteAbsentIDFailsAndLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeasingRepository([]*models.Leasing{newRecord("Royal Villa")})

	err := repo.Delete(ctx, 9999)
	require.ErrorIs(t, err, utils.ErrNoRowsDeleted)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
