package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/bujo/internal/constants"
	"github.com/julianstephens/bujo/internal/models"
)

// SQLStore implements the data methods of Provider on top of any database/sql
// driver. The sqlite and postgres backends wrap it and own the connection lifecycle.
type SQLStore struct {
	db *sqlx.DB
	sb sq.StatementBuilderType

	// Now and NewID assign server-side columns; tests may replace them.
	Now   func() time.Time
	NewID func() string
}

// NewSQLStore builds a store over db using the given bind-parameter style
// (sq.Question for SQLite, sq.Dollar for PostgreSQL).
func NewSQLStore(db *sqlx.DB, placeholder sq.PlaceholderFormat) *SQLStore {
	return &SQLStore{
		db:    db,
		sb:    sq.StatementBuilder.PlaceholderFormat(placeholder),
		Now:   time.Now,
		NewID: func() string { return uuid.New().String() },
	}
}

// DB exposes the underlying connection.
func (s *SQLStore) DB() *sqlx.DB {
	return s.db
}

type profileRow struct {
	ID        string         `db:"id"`
	FullName  sql.NullString `db:"full_name"`
	AvatarURL sql.NullString `db:"avatar_url"`
}

type collectionRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Title     string `db:"title"`
	Type      string `db:"type"`
	IsPinned  bool   `db:"is_pinned"`
	CreatedAt string `db:"created_at"`
}

type entryRow struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	CollectionID  sql.NullString `db:"collection_id"`
	ParentID      sql.NullString `db:"parent_id"`
	Type          string         `db:"type"`
	Status        string         `db:"status"`
	Content       string         `db:"content"`
	RawText       sql.NullString `db:"raw_text"`
	ScheduledDate string         `db:"scheduled_date"`
	CreatedAt     string         `db:"created_at"`
}

type habitRow struct {
	ID        string          `db:"id"`
	UserID    string          `db:"user_id"`
	Name      string          `db:"name"`
	GoalValue sql.NullFloat64 `db:"goal_value"`
	Unit      sql.NullString  `db:"unit"`
	Frequency string          `db:"frequency"`
	CreatedAt string          `db:"created_at"`
}

type habitLogRow struct {
	ID          string          `db:"id"`
	HabitID     string          `db:"habit_id"`
	CompletedAt string          `db:"completed_at"`
	Value       sql.NullFloat64 `db:"value"`
	CreatedAt   string          `db:"created_at"`
}

type backlinkRow struct {
	ID             string         `db:"id"`
	SourceEntryID  string         `db:"source_entry_id"`
	TargetEntryID  string         `db:"target_entry_id"`
	ContextSnippet sql.NullString `db:"context_snippet"`
	CreatedAt      string         `db:"created_at"`
}

var (
	collectionColumns = []string{"id", "user_id", "title", "type", "is_pinned", "created_at"}
	entryColumns      = []string{"id", "user_id", "collection_id", "parent_id", "type", "status", "content", "raw_text", "scheduled_date", "created_at"}
	habitColumns      = []string{"id", "user_id", "name", "goal_value", "unit", "frequency", "created_at"}
	habitLogColumns   = []string{"id", "habit_id", "completed_at", "value", "created_at"}
	backlinkColumns   = []string{"id", "source_entry_id", "target_entry_id", "context_snippet", "created_at"}
)

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx
type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (s *SQLStore) selectAll(ctx context.Context, q queryer, dest interface{}, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return q.SelectContext(ctx, dest, query, args...)
}

func (s *SQLStore) selectOne(ctx context.Context, q queryer, dest interface{}, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if err := q.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *SQLStore) exec(ctx context.Context, q queryer, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build statement: %w", err)
	}
	return q.ExecContext(ctx, query, args...)
}

// Profiles

func (s *SQLStore) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	var row profileRow
	err := s.selectOne(ctx, s.db, &row, s.sb.
		Select("id", "full_name", "avatar_url").
		From(constants.TableProfiles).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return models.Profile{}, err
	}
	return models.Profile{
		ID:        row.ID,
		FullName:  nullStringPtr(row.FullName),
		AvatarURL: nullStringPtr(row.AvatarURL),
	}, nil
}

func (s *SQLStore) InsertProfile(ctx context.Context, p models.Profile) (models.Profile, error) {
	_, err := s.exec(ctx, s.db, s.sb.
		Insert(constants.TableProfiles).
		Columns("id", "full_name", "avatar_url").
		Values(p.ID, ptrNullString(p.FullName), ptrNullString(p.AvatarURL)))
	if err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// Collections

func (s *SQLStore) ListCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	var rows []collectionRow
	err := s.selectAll(ctx, s.db, &rows, s.sb.
		Select(collectionColumns...).
		From(constants.TableCollections).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC", "id ASC"))
	if err != nil {
		return nil, err
	}

	collections := make([]models.Collection, 0, len(rows))
	for _, row := range rows {
		createdAt, err := ParseTimestamp(row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", row.ID, err)
		}
		collections = append(collections, models.Collection{
			ID:        row.ID,
			UserID:    row.UserID,
			Title:     row.Title,
			Type:      models.CollectionType(row.Type),
			IsPinned:  row.IsPinned,
			CreatedAt: createdAt,
		})
	}
	return collections, nil
}

func (s *SQLStore) InsertCollection(ctx context.Context, c models.Collection) (models.Collection, error) {
	c.ID = s.NewID()
	c.CreatedAt = s.stamp()

	_, err := s.exec(ctx, s.db, s.sb.
		Insert(constants.TableCollections).
		Columns(collectionColumns...).
		Values(c.ID, c.UserID, c.Title, string(c.Type), c.IsPinned, FormatTimestamp(c.CreatedAt)))
	if err != nil {
		return models.Collection{}, err
	}
	return c, nil
}

// Entries

func (s *SQLStore) ListEntries(ctx context.Context, f EntryFilter) ([]models.Entry, error) {
	b := s.sb.
		Select(entryColumns...).
		From(constants.TableEntries).
		Where(sq.Eq{"user_id": f.UserID, "scheduled_date": f.Date})
	if f.CollectionID != nil {
		b = b.Where(sq.Eq{"collection_id": *f.CollectionID})
	}
	b = b.OrderBy("created_at ASC", "id ASC")

	var rows []entryRow
	if err := s.selectAll(ctx, s.db, &rows, b); err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := row.model()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *SQLStore) GetEntry(ctx context.Context, userID, id string) (models.Entry, error) {
	var row entryRow
	err := s.selectOne(ctx, s.db, &row, s.sb.
		Select(entryColumns...).
		From(constants.TableEntries).
		Where(sq.Eq{"id": id, "user_id": userID}))
	if err != nil {
		return models.Entry{}, err
	}
	return row.model()
}

func (s *SQLStore) InsertEntry(ctx context.Context, e models.Entry) (models.Entry, error) {
	e.ID = s.NewID()
	e.CreatedAt = s.stamp()
	if len(e.Content) == 0 {
		e.Content = json.RawMessage("null")
	}

	_, err := s.exec(ctx, s.db, s.sb.
		Insert(constants.TableEntries).
		Columns(entryColumns...).
		Values(
			e.ID, e.UserID, ptrNullString(e.CollectionID), ptrNullString(e.ParentID),
			string(e.Type), string(e.Status), string(e.Content), ptrNullString(e.RawText),
			e.ScheduledDate, FormatTimestamp(e.CreatedAt),
		))
	if err != nil {
		return models.Entry{}, err
	}
	return e, nil
}

func (r entryRow) model() (models.Entry, error) {
	createdAt, err := ParseTimestamp(r.CreatedAt)
	if err != nil {
		return models.Entry{}, fmt.Errorf("entry %s: %w", r.ID, err)
	}
	return models.Entry{
		ID:            r.ID,
		UserID:        r.UserID,
		CollectionID:  nullStringPtr(r.CollectionID),
		ParentID:      nullStringPtr(r.ParentID),
		Type:          models.EntryType(r.Type),
		Status:        models.EntryStatus(r.Status),
		Content:       json.RawMessage(r.Content),
		RawText:       nullStringPtr(r.RawText),
		ScheduledDate: r.ScheduledDate,
		CreatedAt:     createdAt,
	}, nil
}

// Habits

func (s *SQLStore) ListHabits(ctx context.Context, userID string) ([]models.HabitTracker, error) {
	var rows []habitRow
	err := s.selectAll(ctx, s.db, &rows, s.sb.
		Select(habitColumns...).
		From(constants.TableHabitTrackers).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC", "id ASC"))
	if err != nil {
		return nil, err
	}

	habits := make([]models.HabitTracker, 0, len(rows))
	for _, row := range rows {
		createdAt, err := ParseTimestamp(row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("habit %s: %w", row.ID, err)
		}
		habits = append(habits, models.HabitTracker{
			ID:        row.ID,
			UserID:    row.UserID,
			Name:      row.Name,
			GoalValue: nullFloatPtr(row.GoalValue),
			Unit:      nullStringPtr(row.Unit),
			Frequency: json.RawMessage(row.Frequency),
			CreatedAt: createdAt,
		})
	}
	return habits, nil
}

func (s *SQLStore) InsertHabit(ctx context.Context, h models.HabitTracker) (models.HabitTracker, error) {
	h.ID = s.NewID()
	h.CreatedAt = s.stamp()
	if len(h.Frequency) == 0 {
		h.Frequency = json.RawMessage("null")
	}

	_, err := s.exec(ctx, s.db, s.sb.
		Insert(constants.TableHabitTrackers).
		Columns(habitColumns...).
		Values(h.ID, h.UserID, h.Name, ptrNullFloat(h.GoalValue), ptrNullString(h.Unit), string(h.Frequency), FormatTimestamp(h.CreatedAt)))
	if err != nil {
		return models.HabitTracker{}, err
	}
	return h, nil
}

// habitLogsFor selects habit logs joined to their owning tracker
func (s *SQLStore) habitLogsFor(userID string) sq.SelectBuilder {
	cols := make([]string, len(habitLogColumns))
	for i, c := range habitLogColumns {
		cols[i] = "l." + c
	}
	return s.sb.
		Select(cols...).
		From(constants.TableHabitLogs + " l").
		Join(constants.TableHabitTrackers + " h ON h.id = l.habit_id").
		Where(sq.Eq{"h.user_id": userID})
}

func (s *SQLStore) ListHabitLogsByDate(ctx context.Context, userID, date string) ([]models.HabitLog, error) {
	var rows []habitLogRow
	err := s.selectAll(ctx, s.db, &rows, s.habitLogsFor(userID).
		Where(sq.Eq{"l.completed_at": date}).
		OrderBy("l.created_at ASC", "l.id ASC"))
	if err != nil {
		return nil, err
	}

	logs := make([]models.HabitLog, 0, len(rows))
	for _, row := range rows {
		l, err := row.model()
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

// ToggleHabitLog runs insert-if-absent / delete-if-present in one transaction.
// The UNIQUE(habit_id, completed_at) constraint makes the conditional insert the
// arbiter: a concurrent toggle either inserts first or waits and deletes.
func (s *SQLStore) ToggleHabitLog(ctx context.Context, userID, habitID, date string, value float64) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var owned int
	err = s.selectOne(ctx, tx, &owned, s.sb.
		Select("1").
		From(constants.TableHabitTrackers).
		Where(sq.Eq{"id": habitID, "user_id": userID}))
	if err != nil {
		return false, err
	}

	res, err := s.exec(ctx, tx, s.sb.
		Insert(constants.TableHabitLogs).
		Columns(habitLogColumns...).
		Values(s.NewID(), habitID, date, value, FormatTimestamp(s.stamp())).
		Suffix("ON CONFLICT (habit_id, completed_at) DO NOTHING"))
	if err != nil {
		return false, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	done := inserted > 0
	if !done {
		if _, err := s.exec(ctx, tx, s.sb.
			Delete(constants.TableHabitLogs).
			Where(sq.Eq{"habit_id": habitID, "completed_at": date})); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return done, nil
}

func (r habitLogRow) model() (models.HabitLog, error) {
	createdAt, err := ParseTimestamp(r.CreatedAt)
	if err != nil {
		return models.HabitLog{}, fmt.Errorf("habit log %s: %w", r.ID, err)
	}
	return models.HabitLog{
		ID:          r.ID,
		HabitID:     r.HabitID,
		CompletedAt: r.CompletedAt,
		Value:       nullFloatPtr(r.Value),
		CreatedAt:   createdAt,
	}, nil
}

// Backlinks

// ListBacklinks returns links touching entryID, provided that entry belongs to userID
func (s *SQLStore) ListBacklinks(ctx context.Context, userID, entryID string) ([]models.Backlink, error) {
	cols := make([]string, len(backlinkColumns))
	for i, c := range backlinkColumns {
		cols[i] = "b." + c
	}

	var rows []backlinkRow
	err := s.selectAll(ctx, s.db, &rows, s.sb.
		Select(cols...).
		From(constants.TableBacklinks + " b").
		Join(constants.TableEntries + " e ON e.id IN (b.source_entry_id, b.target_entry_id)").
		Where(sq.Eq{"e.id": entryID, "e.user_id": userID}).
		OrderBy("b.created_at ASC", "b.id ASC"))
	if err != nil {
		return nil, err
	}

	links := make([]models.Backlink, 0, len(rows))
	for _, row := range rows {
		createdAt, err := ParseTimestamp(row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("backlink %s: %w", row.ID, err)
		}
		links = append(links, models.Backlink{
			ID:             row.ID,
			SourceEntryID:  row.SourceEntryID,
			TargetEntryID:  row.TargetEntryID,
			ContextSnippet: nullStringPtr(row.ContextSnippet),
			CreatedAt:      createdAt,
		})
	}
	return links, nil
}

func (s *SQLStore) InsertBacklink(ctx context.Context, b models.Backlink) (models.Backlink, error) {
	b.ID = s.NewID()
	b.CreatedAt = s.stamp()

	_, err := s.exec(ctx, s.db, s.sb.
		Insert(constants.TableBacklinks).
		Columns(backlinkColumns...).
		Values(b.ID, b.SourceEntryID, b.TargetEntryID, ptrNullString(b.ContextSnippet), FormatTimestamp(b.CreatedAt)))
	if err != nil {
		return models.Backlink{}, err
	}
	return b, nil
}

func (s *SQLStore) stamp() time.Time {
	return s.Now().UTC()
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func ptrNullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullFloatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

func ptrNullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
