package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/dataspec/internal/catalogue"
	"github.com/roach88/dataspec/internal/meql"
	"github.com/roach88/dataspec/internal/queryir"
)

// SavedQuery is a specification query as stored, with its derived forms.
type SavedQuery struct {
	catalogue.SpecificationQuery
	Hash string `json:"hash"`
	MEQL string `json:"meql"`
	Seq  int64  `json:"seq"`
}

// SaveQuery stores the query for its data specification and type.
//
// An empty ID is resolved to the id already stored for the same
// specification and type, or to a new UUID. The condition is stored as
// canonical JSON next to its hash and MEQL rendering. changed is false when
// the stored hash already matches, in which case nothing is written.
func (s *Store) SaveQuery(ctx context.Context, q catalogue.SpecificationQuery) (SavedQuery, bool, error) {
	if q.DataSpecificationID == "" {
		return SavedQuery{}, false, fmt.Errorf("save query: empty data specification id")
	}
	if !q.Type.Valid() {
		return SavedQuery{}, false, fmt.Errorf("save query: invalid query type %q", q.Type)
	}
	if q.Condition == nil {
		q.Condition = &queryir.Condition{Connective: queryir.And}
	}

	canonical, err := queryir.MarshalCanonical(q.Condition)
	if err != nil {
		return SavedQuery{}, false, fmt.Errorf("save query: %w", err)
	}
	hash, err := queryir.Hash(q.Condition)
	if err != nil {
		return SavedQuery{}, false, fmt.Errorf("save query: %w", err)
	}

	existing, err := s.findQuery(ctx, q.DataSpecificationID, q.Type)
	switch {
	case errors.Is(err, ErrNotFound):
		if q.ID == "" {
			q.ID = uuid.NewString()
			break
		}
		if other, err := s.GetQuery(ctx, q.ID); err == nil {
			return SavedQuery{}, false, fmt.Errorf("save query: id %s belongs to the %s query of %s", q.ID, other.Type, other.DataSpecificationID)
		} else if !errors.Is(err, ErrNotFound) {
			return SavedQuery{}, false, fmt.Errorf("save query: %w", err)
		}
	case err != nil:
		return SavedQuery{}, false, fmt.Errorf("save query: %w", err)
	default:
		if q.ID != "" && q.ID != existing.ID {
			return SavedQuery{}, false, fmt.Errorf("save query: %s already has a %s query %s", q.DataSpecificationID, q.Type, existing.ID)
		}
		if existing.Hash == hash {
			return existing, false, nil
		}
		q.ID = existing.ID
	}

	saved := SavedQuery{
		SpecificationQuery: q,
		Hash:               hash,
		MEQL:               meql.Compile(q.Condition),
	}

	if existing.ID != "" {
		_, err = s.db.ExecContext(ctx, `
			UPDATE specification_queries
			SET condition = ?, content_hash = ?, meql = ?
			WHERE id = ?
		`, string(canonical), saved.Hash, saved.MEQL, saved.ID)
		if err != nil {
			return SavedQuery{}, false, fmt.Errorf("save query: %w", err)
		}
		saved.Seq = existing.Seq
		return saved, true, nil
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO specification_queries
		(id, data_specification_id, query_type, condition, content_hash, meql, seq)
		VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM specification_queries))
		RETURNING seq
	`,
		saved.ID,
		saved.DataSpecificationID,
		string(saved.Type),
		string(canonical),
		saved.Hash,
		saved.MEQL,
	).Scan(&saved.Seq)
	if err != nil {
		return SavedQuery{}, false, fmt.Errorf("save query: %w", err)
	}

	return saved, true, nil
}

// GetQuery returns a saved query by id.
// Returns ErrNotFound if the query doesn't exist.
func (s *Store) GetQuery(ctx context.Context, id string) (SavedQuery, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, data_specification_id, query_type, condition, content_hash, meql, seq
		FROM specification_queries
		WHERE id = ?
	`, id)

	q, err := scanQuery(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedQuery{}, fmt.Errorf("query %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return SavedQuery{}, fmt.Errorf("get query: %w", err)
	}
	return q, nil
}

// ListQueries returns the saved queries of one data specification, or of
// all specifications when dataSpecificationID is empty.
func (s *Store) ListQueries(ctx context.Context, dataSpecificationID string) ([]SavedQuery, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, data_specification_id, query_type, condition, content_hash, meql, seq
		FROM specification_queries
		WHERE ? = '' OR data_specification_id = ?
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`, dataSpecificationID, dataSpecificationID)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer rows.Close()

	queries := []SavedQuery{}
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, fmt.Errorf("list queries: %w", err)
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	return queries, nil
}

// DeleteQuery removes a saved query.
// Returns ErrNotFound if the query doesn't exist.
func (s *Store) DeleteQuery(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM specification_queries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete query: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete query: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("query %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) findQuery(ctx context.Context, dataSpecificationID string, t catalogue.QueryType) (SavedQuery, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, data_specification_id, query_type, condition, content_hash, meql, seq
		FROM specification_queries
		WHERE data_specification_id = ? AND query_type = ?
	`, dataSpecificationID, string(t))

	q, err := scanQuery(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedQuery{}, ErrNotFound
	}
	return q, err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuery(row rowScanner) (SavedQuery, error) {
	var (
		q         SavedQuery
		queryType string
		condition string
	)
	if err := row.Scan(&q.ID, &q.DataSpecificationID, &queryType, &condition, &q.Hash, &q.MEQL, &q.Seq); err != nil {
		return SavedQuery{}, err
	}
	q.Type = catalogue.QueryType(queryType)

	rule, err := queryir.Decode([]byte(condition))
	if err != nil {
		return SavedQuery{}, fmt.Errorf("decode condition of %s: %w", q.ID, err)
	}
	cond, ok := rule.(*queryir.Condition)
	if !ok {
		return SavedQuery{}, fmt.Errorf("decode condition of %s: not a condition", q.ID)
	}
	q.Condition = cond
	return q, nil
}
