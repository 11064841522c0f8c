package instrument

import (
	"context"
	"testing"

	"github.com/labhive/labhive/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryStoreAndList(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	labId := test_utils.SeedLab(t, db, "Bio Lab")

	microscope, err := repo.Store(ctx, labId, Instrument{Name: "Microscope"})
	require.NoError(t, err)
	assert.NotZero(t, microscope.ID)

	_, err = repo.Store(ctx, labId, Instrument{Name: "Centrifuge"})
	require.NoError(t, err)

	instruments, err := repo.List(ctx, labId)
	require.NoError(t, err)
	require.Len(t, instruments, 2)
	assert.Equal(t, "Centrifuge", instruments[0].Name)
	assert.Equal(t, "Microscope", instruments[1].Name)
}

func TestRepositoryListScopedToLab(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	labA := test_utils.SeedLab(t, db, "Lab A")
	labB := test_utils.SeedLab(t, db, "Lab B")

	_, err := repo.Store(ctx, labA, Instrument{Name: "Microscope"})
	require.NoError(t, err)

	instruments, err := repo.List(ctx, labB)
	require.NoError(t, err)
	assert.Empty(t, instruments)
}
