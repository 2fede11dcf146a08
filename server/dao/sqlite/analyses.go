package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"

	"github.com/dekarrin/elops/server/dao"
)

// AnalysesDB is the sqlite-backed analysis repository. The grammar text,
// verdict, and HTML artifact ride in a single rezi-encoded base64 blob
// column; id and creation time are their own columns.
type AnalysesDB struct {
	db *sql.DB
}

func (repo *AnalysesDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS analyses (
		id TEXT NOT NULL PRIMARY KEY,
		record TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// encodeRecord packs the non-column fields of an Analysis into the blob.
func encodeRecord(a dao.Analysis) string {
	data := rezi.EncString(a.Grammar)
	data = append(data, rezi.EncBool(a.IsLL1)...)
	data = append(data, rezi.EncInt(a.Conflict)...)
	data = append(data, rezi.EncString(a.HTML)...)
	return base64.StdEncoding.EncodeToString(data)
}

func decodeRecord(encoded string, a *dao.Analysis) error {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("stored record is not valid base64: %w", err)
	}

	var n int
	a.Grammar, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("decode grammar text: %w", err)
	}
	data = data[n:]

	a.IsLL1, n, err = rezi.DecBool(data)
	if err != nil {
		return fmt.Errorf("decode verdict: %w", err)
	}
	data = data[n:]

	a.Conflict, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("decode conflict id: %w", err)
	}
	data = data[n:]

	a.HTML, _, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("decode html: %w", err)
	}

	return nil
}

func (repo *AnalysesDB) Create(ctx context.Context, a dao.Analysis) (dao.Analysis, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Analysis{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO analyses (id, record, created) VALUES (?, ?, ?)`)
	if err != nil {
		return dao.Analysis{}, wrapDBError(err)
	}
	now := time.Now()

	_, err = stmt.ExecContext(ctx, newUUID.String(), encodeRecord(a), now.Unix())
	if err != nil {
		return dao.Analysis{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *AnalysesDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	a := dao.Analysis{
		ID: id,
	}
	var record string
	var created int64

	row := repo.db.QueryRowContext(ctx, `SELECT record, created FROM analyses WHERE id = ?;`, id.String())
	err := row.Scan(&record, &created)
	if err != nil {
		return a, wrapDBError(err)
	}

	if err := decodeRecord(record, &a); err != nil {
		return a, err
	}
	a.Created = time.Unix(created, 0)

	return a, nil
}

func (repo *AnalysesDB) GetAll(ctx context.Context) ([]dao.Analysis, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, record, created FROM analyses ORDER BY created, id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Analysis

	for rows.Next() {
		var a dao.Analysis
		var id string
		var record string
		var created int64
		err = rows.Scan(
			&id,
			&record,
			&created,
		)

		if err != nil {
			return nil, wrapDBError(err)
		}

		a.ID, err = uuid.Parse(id)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid", id)
		}
		if err := decodeRecord(record, &a); err != nil {
			return all, err
		}
		a.Created = time.Unix(created, 0)

		all = append(all, a)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *AnalysesDB) Delete(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?;`, id.String())
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, wrapDBError(sql.ErrNoRows)
	}

	return curVal, nil
}
