package calculation

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists calculation records. The Postgres implementation backs
// the server; handler tests use the in-memory one.
type Store interface {
	Insert(ctx context.Context, record Record) error
	List(ctx context.Context, limit int) ([]Record, error)
	Get(ctx context.Context, id string) (*Record, error)
}

type PostgresStore struct {
	DB *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Insert(ctx context.Context, record Record) error {
	profileJSON, err := json.Marshal(record.Profile)
	if err != nil {
		return err
	}
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO calculations (id, created_at, profile, result)
    VALUES ($1, $2, $3, $4)
  `, record.ID, record.CreatedAt, profileJSON, resultJSON)
	return err
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id, created_at, profile, result
    FROM calculations
    ORDER BY created_at DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, created_at, profile, result
    FROM calculations
    WHERE id = $1
  `, id)
	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var record Record
	var profileJSON, resultJSON []byte
	if err := row.Scan(&record.ID, &record.CreatedAt, &profileJSON, &resultJSON); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(profileJSON, &record.Profile); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(resultJSON, &record.Result); err != nil {
		return Record{}, err
	}
	return record, nil
}
