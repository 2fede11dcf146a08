// Package inmem provides an in-memory implementation of the server's data
// store, suitable for testing and for one-off local runs. All records are
// lost when the process exits.
package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dekarrin/elops/internal/elerrors"
	"github.com/dekarrin/elops/server/dao"
)

type store struct {
	analyses *AnalysesDB
}

// NewDatastore creates an empty in-memory store.
func NewDatastore() dao.Store {
	return &store{
		analyses: &AnalysesDB{records: map[uuid.UUID]dao.Analysis{}},
	}
}

func (s *store) Analyses() dao.AnalysisRepository {
	return s.analyses
}

func (s *store) Close() error {
	return nil
}

// AnalysesDB is an in-memory analysis repository guarded by a mutex; it is
// safe for concurrent handlers.
type AnalysesDB struct {
	mtx     sync.RWMutex
	records map[uuid.UUID]dao.Analysis
}

func (repo *AnalysesDB) Create(ctx context.Context, a dao.Analysis) (dao.Analysis, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Analysis{}, fmt.Errorf("could not generate ID: %w", err)
	}

	a.ID = newUUID
	a.Created = time.Now()

	repo.mtx.Lock()
	defer repo.mtx.Unlock()
	repo.records[a.ID] = a

	return a, nil
}

func (repo *AnalysesDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	repo.mtx.RLock()
	defer repo.mtx.RUnlock()

	a, ok := repo.records[id]
	if !ok {
		return dao.Analysis{}, elerrors.New(fmt.Sprintf("no analysis with ID %s", id), elerrors.ErrNotFound)
	}

	return a, nil
}

func (repo *AnalysesDB) GetAll(ctx context.Context) ([]dao.Analysis, error) {
	repo.mtx.RLock()
	defer repo.mtx.RUnlock()

	all := make([]dao.Analysis, 0, len(repo.records))
	for id := range repo.records {
		all = append(all, repo.records[id])
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Created.Equal(all[j].Created) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].Created.Before(all[j].Created)
	})

	return all, nil
}

func (repo *AnalysesDB) Delete(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	a, ok := repo.records[id]
	if !ok {
		return dao.Analysis{}, elerrors.New(fmt.Sprintf("no analysis with ID %s", id), elerrors.ErrNotFound)
	}
	delete(repo.records, id)

	return a, nil
}
