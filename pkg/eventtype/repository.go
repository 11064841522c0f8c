package eventtype

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	List(ctx context.Context, labId int) ([]EventType, error)
	Store(ctx context.Context, labId int, et EventType) (EventType, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) List(ctx context.Context, labId int) ([]EventType, error) {
	query := `SELECT id, name, color FROM event_type WHERE lab_id = ? ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, labId)
	if err != nil {
		err := fmt.Errorf("could not query event types: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	types := make([]EventType, 0, 10)
	for rows.Next() {
		var et EventType
		if err := rows.Scan(&et.ID, &et.Name, &et.Color); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		types = append(types, et)
	}
	return types, rows.Err()
}

func (r *RepositoryImpl) Store(ctx context.Context, labId int, et EventType) (EventType, error) {
	query := `INSERT INTO event_type (lab_id, name, color) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, labId, et.Name, et.Color)
	if err != nil {
		err := fmt.Errorf("could not store event type: %w", err)
		log.Error(err)
		return EventType{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return EventType{}, fmt.Errorf("could not read event type id: %w", err)
	}
	et.ID = int(id)
	return et, nil
}
