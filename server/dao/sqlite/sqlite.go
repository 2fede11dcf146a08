// Package sqlite provides a sqlite-backed implementation of the server's
// data store, so analysis history survives restarts.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"modernc.org/sqlite"

	"github.com/dekarrin/elops/internal/elerrors"
	"github.com/dekarrin/elops/server/dao"
)

type store struct {
	dbFilename string

	db *sql.DB

	analyses *AnalysesDB
}

// NewDatastore opens (creating if needed) the analysis database in
// storageDir.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: "analyses.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.analyses = &AnalysesDB{db: st.db}
	if err := st.analyses.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) Analyses() dao.AnalysisRepository {
	return s.analyses
}

func (s *store) Close() error {
	err := s.db.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		return elerrors.New(sqlite.ErrorCodeString[sqliteErr.Code()], elerrors.ErrDB)
	} else if errors.Is(err, sql.ErrNoRows) {
		return elerrors.New("", elerrors.ErrNotFound)
	}
	return elerrors.New("", err, elerrors.ErrDB)
}
