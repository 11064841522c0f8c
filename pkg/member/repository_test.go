package member

import (
	"context"
	"testing"

	"github.com/labhive/labhive/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryGetByUID(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)

	labId := test_utils.SeedLab(t, db, "Bio Lab")
	memberId := test_utils.SeedMember(t, db, labId, "alice", "Alice")

	m, err := repo.GetByUID(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, memberId, m.ID)
	assert.Equal(t, "alice", m.UID)
	assert.Equal(t, "Alice", m.DisplayName)
	assert.Equal(t, labId, m.LabID)
}

func TestRepositoryGetByUIDNotFound(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.GetByUID(context.Background(), "nobody")

	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestRepositoryListByLab(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)

	labA := test_utils.SeedLab(t, db, "Lab A")
	labB := test_utils.SeedLab(t, db, "Lab B")
	test_utils.SeedMember(t, db, labA, "carol", "Carol")
	test_utils.SeedMember(t, db, labA, "alice", "Alice")
	test_utils.SeedMember(t, db, labB, "bob", "Bob")

	members, err := repo.ListByLab(context.Background(), labA)

	require.NoError(t, err)
	require.Len(t, members, 2)
	// Ordered by display name.
	assert.Equal(t, "Alice", members[0].DisplayName)
	assert.Equal(t, "Carol", members[1].DisplayName)
}

func TestRepositoryListByLabEmpty(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)

	labId := test_utils.SeedLab(t, db, "Empty Lab")

	members, err := repo.ListByLab(context.Background(), labId)

	require.NoError(t, err)
	assert.Empty(t, members)
}
