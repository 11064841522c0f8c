package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	GetByUID(ctx context.Context, uid string) (Member, error)
	ListByLab(ctx context.Context, labId int) ([]Member, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetByUID(ctx context.Context, uid string) (Member, error) {
	query := `SELECT id, uid, display_name, lab_id FROM member WHERE uid = ?`

	var m Member
	err := r.db.QueryRowContext(ctx, query, uid).Scan(&m.ID, &m.UID, &m.DisplayName, &m.LabID)
	if errors.Is(err, sql.ErrNoRows) {
		return Member{}, ErrMemberNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not query member: %w", err)
		log.Error(err)
		return Member{}, err
	}
	return m, nil
}

func (r *RepositoryImpl) ListByLab(ctx context.Context, labId int) ([]Member, error) {
	query := `SELECT id, uid, display_name, lab_id FROM member WHERE lab_id = ? ORDER BY display_name`

	rows, err := r.db.QueryContext(ctx, query, labId)
	if err != nil {
		err := fmt.Errorf("could not query lab members: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	members := make([]Member, 0, 10)
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.UID, &m.DisplayName, &m.LabID); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
