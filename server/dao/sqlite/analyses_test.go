package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/elops/internal/elerrors"
	"github.com/dekarrin/elops/server/dao"
)

func Test_Analyses_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	store, err := NewDatastore(t.TempDir())
	assert.NoError(err)
	defer store.Close()

	repo := store.Analyses()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.Analysis{
		Grammar:  "S -> a B\nB -> b\nB -> b c\n",
		IsLL1:    false,
		Conflict: 2,
		HTML:     "<!DOCTYPE html>\n<html></html>\n",
	})
	assert.NoError(err)
	assert.NotEqual(uuid.UUID{}, created.ID)

	fetched, err := repo.GetByID(ctx, created.ID)
	assert.NoError(err)
	assert.Equal(created.Grammar, fetched.Grammar)
	assert.Equal(created.IsLL1, fetched.IsLL1)
	assert.Equal(created.Conflict, fetched.Conflict)
	assert.Equal(created.HTML, fetched.HTML)
}

func Test_Analyses_GetByID_NotFound(t *testing.T) {
	assert := assert.New(t)

	store, err := NewDatastore(t.TempDir())
	assert.NoError(err)
	defer store.Close()

	_, err = store.Analyses().GetByID(context.Background(), uuid.New())
	assert.ErrorIs(err, elerrors.ErrNotFound)
}

func Test_Analyses_Delete(t *testing.T) {
	assert := assert.New(t)

	store, err := NewDatastore(t.TempDir())
	assert.NoError(err)
	defer store.Close()

	repo := store.Analyses()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.Analysis{Grammar: "S -> a\n", IsLL1: true, Conflict: -1})
	assert.NoError(err)

	_, err = repo.Delete(ctx, created.ID)
	assert.NoError(err)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(err, elerrors.ErrNotFound)
}

func Test_encodeDecodeRecord(t *testing.T) {
	assert := assert.New(t)

	orig := dao.Analysis{
		Grammar:  "E -> T E'\n",
		IsLL1:    true,
		Conflict: -1,
		HTML:     "<h2>Production Table</h2>",
	}

	var decoded dao.Analysis
	err := decodeRecord(encodeRecord(orig), &decoded)
	assert.NoError(err)
	assert.Equal(orig.Grammar, decoded.Grammar)
	assert.Equal(orig.IsLL1, decoded.IsLL1)
	assert.Equal(orig.Conflict, decoded.Conflict)
	assert.Equal(orig.HTML, decoded.HTML)
}

func Test_decodeRecord_BadData(t *testing.T) {
	assert := assert.New(t)

	var decoded dao.Analysis
	assert.Error(decodeRecord("not base64!!!", &decoded))
}
