package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labhive/labhive/internal/utils"
	log "github.com/sirupsen/logrus"
)

// ErrEventNotFound is returned by updates targeting an id the lab does not hold.
var ErrEventNotFound = errors.New("event not found")

type Repository interface {
	StoreEvent(ctx context.Context, labId, createdBy int, draft EventDraft) (Event, error)
	// StoreEvents persists a recurrence batch in a single transaction:
	// either every draft becomes an event or none does.
	StoreEvents(ctx context.Context, labId, createdBy int, drafts []EventDraft) ([]Event, error)
	GetEvents(ctx context.Context, labId int, from, to time.Time) ([]Event, error)
	UpdateEvent(ctx context.Context, event Event) (Event, error)
	// DeleteEvent reports whether a record was actually removed.
	DeleteEvent(ctx context.Context, labId int, uid uuid.UUID) (bool, error)
}

type RepositoryImpl struct {
	db    *sql.DB
	tx    *sql.Tx
	clock utils.Clock
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db, clock: utils.SystemClock{}}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *RepositoryImpl) getQueryer() interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) withTransaction(ctx context.Context, fn func(repo *RepositoryImpl) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &RepositoryImpl{db: r.db, tx: tx, clock: r.clock}
	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *RepositoryImpl) StoreEvent(ctx context.Context, labId, createdBy int, draft EventDraft) (Event, error) {
	var event Event
	err := r.withTransaction(ctx, func(repo *RepositoryImpl) error {
		var err error
		event, err = repo.storeEvent(ctx, labId, createdBy, draft)
		return err
	})
	return event, err
}

func (r *RepositoryImpl) StoreEvents(ctx context.Context, labId, createdBy int, drafts []EventDraft) ([]Event, error) {
	events := make([]Event, 0, len(drafts))
	err := r.withTransaction(ctx, func(repo *RepositoryImpl) error {
		for _, draft := range drafts {
			event, err := repo.storeEvent(ctx, labId, createdBy, draft)
			if err != nil {
				return err
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *RepositoryImpl) storeEvent(ctx context.Context, labId, createdBy int, draft EventDraft) (Event, error) {
	query := `INSERT INTO calendar_event (
                            uid,
                            lab_id,
                            title,
                            description,
                            start_time,
                            end_time,
                            type_id,
                            status_id,
                            instrument_id,
                            color,
                            created_by,
                            updated_at
						) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	uid := uuid.New()
	now := r.clock.Now()
	_, err := r.getQueryer().ExecContext(ctx, query,
		uid.String(), labId, draft.Title, draft.Description,
		draft.Start.UnixMilli(), draft.End.UnixMilli(),
		draft.TypeID, nullableId(draft.StatusID), nullableId(draft.InstrumentID),
		nullableString(draft.Color), createdBy, now.UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not store event: %w", err)
		log.Error(err)
		return Event{}, err
	}

	if err := r.storeAssignments(ctx, uid, draft.Assignees); err != nil {
		return Event{}, err
	}

	return Event{
		UID:          uid,
		LabID:        labId,
		Title:        draft.Title,
		Description:  draft.Description,
		Start:        draft.Start,
		End:          draft.End,
		TypeID:       draft.TypeID,
		StatusID:     draft.StatusID,
		InstrumentID: draft.InstrumentID,
		Color:        draft.Color,
		CreatedBy:    createdBy,
		UpdatedAt:    now,
		Assignees:    append([]int(nil), draft.Assignees...),
	}, nil
}

func (r *RepositoryImpl) storeAssignments(ctx context.Context, uid uuid.UUID, assignees []int) error {
	query := `INSERT INTO event_assignment (event_uid, member_id) VALUES (?, ?)`
	for _, memberId := range assignees {
		if _, err := r.getQueryer().ExecContext(ctx, query, uid.String(), memberId); err != nil {
			err := fmt.Errorf("could not store event assignment: %w", err)
			log.Error(err)
			return err
		}
	}
	return nil
}

func (r *RepositoryImpl) GetEvents(ctx context.Context, labId int, from, to time.Time) ([]Event, error) {
	// Return all events intersecting the half-open window [from, to).
	query := `SELECT uid, lab_id, title, description, start_time, end_time,
                     type_id, status_id, instrument_id, color, created_by, updated_at
              FROM calendar_event
              WHERE lab_id = ?
                AND start_time < ?
                AND end_time > ?
			  ORDER BY start_time`

	rows, err := r.getQueryer().QueryContext(ctx, query, labId, to.UnixMilli(), from.UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not query calendar events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadAssignees(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func scanEvent(rows *sql.Rows) (Event, error) {
	var (
		uidString    string
		startMillis  int64
		endMillis    int64
		statusId     sql.NullInt64
		instrumentId sql.NullInt64
		color        sql.NullString
		updatedAt    int64
		event        Event
	)
	err := rows.Scan(&uidString, &event.LabID, &event.Title, &event.Description,
		&startMillis, &endMillis, &event.TypeID, &statusId, &instrumentId,
		&color, &event.CreatedBy, &updatedAt)
	if err != nil {
		return Event{}, fmt.Errorf("could not scan row: %w", err)
	}

	uid, err := uuid.Parse(uidString)
	if err != nil {
		return Event{}, fmt.Errorf("could not parse event uid %q: %w", uidString, err)
	}

	event.UID = uid
	event.Start = time.UnixMilli(startMillis)
	event.End = time.UnixMilli(endMillis)
	event.StatusID = int(statusId.Int64)
	event.InstrumentID = int(instrumentId.Int64)
	event.Color = color.String
	event.UpdatedAt = time.UnixMilli(updatedAt)
	return event, nil
}

func (r *RepositoryImpl) loadAssignees(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(events)), ",")
	query := `SELECT event_uid, member_id FROM event_assignment WHERE event_uid IN (` + placeholders + `) ORDER BY member_id`

	args := make([]interface{}, 0, len(events))
	for _, e := range events {
		args = append(args, e.UID.String())
	}

	rows, err := r.getQueryer().QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query event assignments: %w", err)
		log.Error(err)
		return err
	}
	defer rows.Close()

	byEvent := make(map[string][]int, len(events))
	for rows.Next() {
		var eventUid string
		var memberId int
		if err := rows.Scan(&eventUid, &memberId); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return err
		}
		byEvent[eventUid] = append(byEvent[eventUid], memberId)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range events {
		events[i].Assignees = byEvent[events[i].UID.String()]
	}
	return nil
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, event Event) (Event, error) {
	err := r.withTransaction(ctx, func(repo *RepositoryImpl) error {
		query := `UPDATE calendar_event
                  SET title = ?, description = ?, start_time = ?, end_time = ?,
                      type_id = ?, status_id = ?, instrument_id = ?, color = ?, updated_at = ?
                  WHERE uid = ? AND lab_id = ?`

		now := repo.clock.Now()
		res, err := repo.getQueryer().ExecContext(ctx, query,
			event.Title, event.Description, event.Start.UnixMilli(), event.End.UnixMilli(),
			event.TypeID, nullableId(event.StatusID), nullableId(event.InstrumentID),
			nullableString(event.Color), now.UnixMilli(),
			event.UID.String(), event.LabID)
		if err != nil {
			err := fmt.Errorf("could not update event: %w", err)
			log.Error(err)
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not read affected rows: %w", err)
		}
		if affected == 0 {
			return ErrEventNotFound
		}
		event.UpdatedAt = now

		// Replace the assignee set wholesale.
		if _, err := repo.getQueryer().ExecContext(ctx,
			`DELETE FROM event_assignment WHERE event_uid = ?`, event.UID.String()); err != nil {
			err := fmt.Errorf("could not clear event assignments: %w", err)
			log.Error(err)
			return err
		}
		return repo.storeAssignments(ctx, event.UID, event.Assignees)
	})
	if err != nil {
		return Event{}, err
	}
	return event, nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, labId int, uid uuid.UUID) (bool, error) {
	query := `DELETE FROM calendar_event WHERE uid = ? AND lab_id = ?`

	res, err := r.getQueryer().ExecContext(ctx, query, uid.String(), labId)
	if err != nil {
		err := fmt.Errorf("could not delete event: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	return affected > 0, nil
}

func nullableId(id int) interface{} {
	if id == 0 {
		return nil
	}
	return id
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
