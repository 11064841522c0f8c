package eventstatus

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	List(ctx context.Context, labId int) ([]EventStatus, error)
	Store(ctx context.Context, labId int, st EventStatus) (EventStatus, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) List(ctx context.Context, labId int) ([]EventStatus, error) {
	query := `SELECT id, name, color, description FROM event_status WHERE lab_id = ? ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, labId)
	if err != nil {
		err := fmt.Errorf("could not query event statuses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	statuses := make([]EventStatus, 0, 10)
	for rows.Next() {
		var st EventStatus
		if err := rows.Scan(&st.ID, &st.Name, &st.Color, &st.Description); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		statuses = append(statuses, st)
	}
	return statuses, rows.Err()
}

func (r *RepositoryImpl) Store(ctx context.Context, labId int, st EventStatus) (EventStatus, error) {
	query := `INSERT INTO event_status (lab_id, name, color, description) VALUES (?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, labId, st.Name, st.Color, st.Description)
	if err != nil {
		err := fmt.Errorf("could not store event status: %w", err)
		log.Error(err)
		return EventStatus{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return EventStatus{}, fmt.Errorf("could not read event status id: %w", err)
	}
	st.ID = int(id)
	return st, nil
}
