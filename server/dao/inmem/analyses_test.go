package inmem

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/elops/internal/elerrors"
	"github.com/dekarrin/elops/server/dao"
)

func Test_Analyses_CreateAssignsIDAndTime(t *testing.T) {
	assert := assert.New(t)

	repo := NewDatastore().Analyses()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.Analysis{
		Grammar:  "S -> a\n",
		IsLL1:    true,
		Conflict: -1,
		HTML:     "<!DOCTYPE html>",
	})
	assert.NoError(err)
	assert.NotEqual(uuid.UUID{}, created.ID)
	assert.False(created.Created.IsZero())
	assert.Equal("S -> a\n", created.Grammar)
}

func Test_Analyses_GetByID(t *testing.T) {
	assert := assert.New(t)

	repo := NewDatastore().Analyses()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.Analysis{Grammar: "S -> a\n", IsLL1: true, Conflict: -1})
	assert.NoError(err)

	fetched, err := repo.GetByID(ctx, created.ID)
	assert.NoError(err)
	assert.Equal(created, fetched)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(err, elerrors.ErrNotFound)
}

func Test_Analyses_GetAllIsOldestFirst(t *testing.T) {
	assert := assert.New(t)

	repo := NewDatastore().Analyses()
	ctx := context.Background()

	first, err := repo.Create(ctx, dao.Analysis{Grammar: "A -> a\n", IsLL1: true, Conflict: -1})
	assert.NoError(err)
	second, err := repo.Create(ctx, dao.Analysis{Grammar: "B -> b\n", IsLL1: true, Conflict: -1})
	assert.NoError(err)

	all, err := repo.GetAll(ctx)
	assert.NoError(err)
	if assert.Len(all, 2) {
		assert.Equal([]uuid.UUID{first.ID, second.ID}, []uuid.UUID{all[0].ID, all[1].ID})
	}
}

func Test_Analyses_Delete(t *testing.T) {
	assert := assert.New(t)

	repo := NewDatastore().Analyses()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.Analysis{Grammar: "S -> a\n", IsLL1: true, Conflict: -1})
	assert.NoError(err)

	deleted, err := repo.Delete(ctx, created.ID)
	assert.NoError(err)
	assert.Equal(created, deleted)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(err, elerrors.ErrNotFound)

	_, err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(err, elerrors.ErrNotFound)
}
