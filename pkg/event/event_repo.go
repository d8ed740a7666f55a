package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	timeOfDayLayout = "15:04:05"
	dateLayout      = "2006-01-02"
)

// Repository is the durable interval store for events and recurrence rules.
type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	SaveEvent(ctx context.Context, e Event) (Event, error)
	SaveAllEvents(ctx context.Context, events []Event) ([]Event, error)
	FindEventByID(ctx context.Context, id uuid.UUID) (*Event, error)
	FindEventsStartingBetween(ctx context.Context, from, to time.Time) ([]Event, error)
	FindOverlappingEvents(ctx context.Context, start, end time.Time, excludeID *uuid.UUID) ([]Event, error)
	FindAllEvents(ctx context.Context) ([]Event, error)
	CountEvents(ctx context.Context) (int, error)
	SaveRecurrenceRule(ctx context.Context, rule RecurrenceRule) (RecurrenceRule, error)
	FindRecurrenceRuleByID(ctx context.Context, id uuid.UUID) (*RecurrenceRule, error)
}

type RepositoryImpl struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db, tx: nil}
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

// WithTransaction runs fn against a repository bound to a single database
// transaction, so a conflict check and the save that follows it are
// consistent against concurrent writers.
func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	if r.tx != nil {
		// Already inside a transaction, just reuse it.
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

	txRepo := &RepositoryImpl{db: r.db, tx: tx}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// SaveEvent inserts e when it has no identity yet, assigning one, and
// overwrites the stored record otherwise. The rule reference never changes
// after the first save.
func (r *RepositoryImpl) SaveEvent(ctx context.Context, e Event) (Event, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
		query := `INSERT INTO event (id, title, start_date, end_date, recurrence_rule_id)
				  VALUES ($1, $2, $3, $4, $5)`

		var ruleID interface{}
		if e.RuleID != nil {
			ruleID = e.RuleID.String()
		}
		_, err := r.getQueryer().ExecContext(ctx, query,
			e.ID.String(), e.Title, e.StartDate.UnixMilli(), e.EndDate.UnixMilli(), ruleID)
		if err != nil {
			err := fmt.Errorf("could not insert event: %w", err)
			log.Error(err)
			return Event{}, err
		}
		return e, nil
	}

	query := `UPDATE event SET title = $2, start_date = $3, end_date = $4 WHERE id = $1`
	_, err := r.getQueryer().ExecContext(ctx, query,
		e.ID.String(), e.Title, e.StartDate.UnixMilli(), e.EndDate.UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not update event: %w", err)
		log.Error(err)
		return Event{}, err
	}
	return e, nil
}

// SaveAllEvents bulk-inserts events, preserving input order in the result.
func (r *RepositoryImpl) SaveAllEvents(ctx context.Context, events []Event) ([]Event, error) {
	saved := make([]Event, 0, len(events))
	err := r.WithTransaction(ctx, func(repo Repository) error {
		for _, e := range events {
			s, err := repo.SaveEvent(ctx, e)
			if err != nil {
				return err
			}
			saved = append(saved, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *RepositoryImpl) FindEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	query := `SELECT id, title, start_date, end_date, recurrence_rule_id FROM event WHERE id = $1`

	row := r.getQueryer().QueryRowContext(ctx, query, id.String())
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("failed to find event %s: %w", id, err)
		log.Error(err)
		return nil, err
	}
	return &e, nil
}

// FindEventsStartingBetween returns events whose start timestamp falls in the
// closed range [from, to], ordered by start date then id.
func (r *RepositoryImpl) FindEventsStartingBetween(ctx context.Context, from, to time.Time) ([]Event, error) {
	query := `SELECT id, title, start_date, end_date, recurrence_rule_id
			  FROM event
			  WHERE start_date >= $1 AND start_date <= $2
			  ORDER BY start_date, id`

	return r.queryEvents(ctx, query, from.UnixMilli(), to.UnixMilli())
}

// FindOverlappingEvents returns every stored event whose interval overlaps
// [start, end) under half-open semantics: e.end > start AND e.start < end.
// Boundary-touching events do not overlap. The event identified by excludeID,
// if any, is left out of the result.
func (r *RepositoryImpl) FindOverlappingEvents(ctx context.Context, start, end time.Time, excludeID *uuid.UUID) ([]Event, error) {
	if excludeID != nil {
		query := `SELECT id, title, start_date, end_date, recurrence_rule_id
				  FROM event
				  WHERE end_date > $1 AND start_date < $2 AND id != $3
				  ORDER BY start_date, id`
		return r.queryEvents(ctx, query, start.UnixMilli(), end.UnixMilli(), excludeID.String())
	}

	query := `SELECT id, title, start_date, end_date, recurrence_rule_id
			  FROM event
			  WHERE end_date > $1 AND start_date < $2
			  ORDER BY start_date, id`
	return r.queryEvents(ctx, query, start.UnixMilli(), end.UnixMilli())
}

func (r *RepositoryImpl) FindAllEvents(ctx context.Context) ([]Event, error) {
	query := `SELECT id, title, start_date, end_date, recurrence_rule_id
			  FROM event
			  ORDER BY start_date, id`
	return r.queryEvents(ctx, query)
}

func (r *RepositoryImpl) CountEvents(ctx context.Context) (int, error) {
	var count int
	err := r.getQueryer().QueryRowContext(ctx, `SELECT COUNT(*) FROM event`).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count events: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

// SaveRecurrenceRule inserts rule, assigning an identity. Rules are immutable
// after creation, so there is no update path.
func (r *RepositoryImpl) SaveRecurrenceRule(ctx context.Context, rule RecurrenceRule) (RecurrenceRule, error) {
	rule.ID = uuid.New()
	query := `INSERT INTO recurrence_rule (id, day_of_week, start_time, end_time, repeat_until_date)
			  VALUES ($1, $2, $3, $4, $5)`

	var repeatUntil interface{}
	if rule.RepeatUntil != nil {
		repeatUntil = rule.RepeatUntil.Format(dateLayout)
	}
	_, err := r.getQueryer().ExecContext(ctx, query,
		rule.ID.String(),
		FormatDayOfWeek(rule.DayOfWeek),
		rule.StartTime.Format(timeOfDayLayout),
		rule.EndTime.Format(timeOfDayLayout),
		repeatUntil,
	)
	if err != nil {
		err := fmt.Errorf("could not insert recurrence rule: %w", err)
		log.Error(err)
		return RecurrenceRule{}, err
	}
	return rule, nil
}

func (r *RepositoryImpl) FindRecurrenceRuleByID(ctx context.Context, id uuid.UUID) (*RecurrenceRule, error) {
	query := `SELECT id, day_of_week, start_time, end_time, repeat_until_date
			  FROM recurrence_rule WHERE id = $1`

	var (
		rawID       string
		rawDay      string
		rawStart    string
		rawEnd      string
		repeatUntil sql.NullString
	)
	err := r.getQueryer().QueryRowContext(ctx, query, id.String()).
		Scan(&rawID, &rawDay, &rawStart, &rawEnd, &repeatUntil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("failed to find recurrence rule %s: %w", id, err)
		log.Error(err)
		return nil, err
	}

	rule := RecurrenceRule{}
	if rule.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("could not parse rule id: %w", err)
	}
	if rule.DayOfWeek, err = ParseDayOfWeek(rawDay); err != nil {
		return nil, fmt.Errorf("could not parse stored rule: %w", err)
	}
	if rule.StartTime, err = time.Parse(timeOfDayLayout, rawStart); err != nil {
		return nil, fmt.Errorf("could not parse rule start time: %w", err)
	}
	if rule.EndTime, err = time.Parse(timeOfDayLayout, rawEnd); err != nil {
		return nil, fmt.Errorf("could not parse rule end time: %w", err)
	}
	if repeatUntil.Valid {
		until, err := time.ParseInLocation(dateLayout, repeatUntil.String, time.Local)
		if err != nil {
			return nil, fmt.Errorf("could not parse rule repeat-until date: %w", err)
		}
		rule.RepeatUntil = &until
	}

	return &rule, nil
}

func (r *RepositoryImpl) queryEvents(ctx context.Context, query string, args ...interface{}) ([]Event, error) {
	rows, err := r.getQueryer().QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			err := fmt.Errorf("could not scan event row: %w", err)
			log.Error(err)
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event rows iteration failed: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (Event, error) {
	var (
		rawID      string
		title      string
		startMilli int64
		endMilli   int64
		rawRuleID  sql.NullString
	)
	if err := row.Scan(&rawID, &title, &startMilli, &endMilli, &rawRuleID); err != nil {
		return Event{}, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return Event{}, fmt.Errorf("could not parse event id: %w", err)
	}
	e := Event{
		ID:        id,
		Title:     title,
		StartDate: time.UnixMilli(startMilli),
		EndDate:   time.UnixMilli(endMilli),
	}
	if rawRuleID.Valid {
		ruleID, err := uuid.Parse(rawRuleID.String)
		if err != nil {
			return Event{}, fmt.Errorf("could not parse rule id: %w", err)
		}
		e.RuleID = &ruleID
	}
	return e, nil
}
