package instrument

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	List(ctx context.Context, labId int) ([]Instrument, error)
	Store(ctx context.Context, labId int, in Instrument) (Instrument, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) List(ctx context.Context, labId int) ([]Instrument, error) {
	query := `SELECT id, name FROM instrument WHERE lab_id = ? ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, labId)
	if err != nil {
		err := fmt.Errorf("could not query instruments: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	instruments := make([]Instrument, 0, 10)
	for rows.Next() {
		var in Instrument
		if err := rows.Scan(&in.ID, &in.Name); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		instruments = append(instruments, in)
	}
	return instruments, rows.Err()
}

func (r *RepositoryImpl) Store(ctx context.Context, labId int, in Instrument) (Instrument, error) {
	query := `INSERT INTO instrument (lab_id, name) VALUES (?, ?)`

	res, err := r.db.ExecContext(ctx, query, labId, in.Name)
	if err != nil {
		err := fmt.Errorf("could not store instrument: %w", err)
		log.Error(err)
		return Instrument{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Instrument{}, fmt.Errorf("could not read instrument id: %w", err)
	}
	in.ID = int(id)
	return in, nil
}
