package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/promptvault/promptvault/internal/insights"
	"github.com/promptvault/promptvault/internal/trait"
)

const schema = `
CREATE TABLE IF NOT EXISTS prompts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL,
	outcome TEXT,
	rating INTEGER CHECK(rating >= 1 AND rating <= 5),
	model TEXT,
	task_type TEXT,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS prompt_tags (
	prompt_id INTEGER REFERENCES prompts(id) ON DELETE CASCADE,
	tag_id INTEGER REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (prompt_id, tag_id)
);

CREATE TABLE IF NOT EXISTS traits (
	prompt_id INTEGER REFERENCES prompts(id) ON DELETE CASCADE,
	trait_name TEXT NOT NULL,
	detected BOOLEAN NOT NULL,
	source TEXT NOT NULL DEFAULT 'rule-based',
	PRIMARY KEY (prompt_id, trait_name)
);

CREATE INDEX IF NOT EXISTS idx_prompts_rating ON prompts(rating);
CREATE INDEX IF NOT EXISTS idx_prompts_created ON prompts(created_at);
CREATE INDEX IF NOT EXISTS idx_tags_name ON tags(name);

CREATE VIRTUAL TABLE IF NOT EXISTS prompts_fts USING fts5(
	content,
	outcome,
	content='prompts',
	content_rowid='id'
);

CREATE TRIGGER IF NOT EXISTS prompts_ai AFTER INSERT ON prompts BEGIN
	INSERT INTO prompts_fts(rowid, content, outcome)
	VALUES (new.id, new.content, new.outcome);
END;

CREATE TRIGGER IF NOT EXISTS prompts_ad AFTER DELETE ON prompts BEGIN
	INSERT INTO prompts_fts(prompts_fts, rowid, content, outcome)
	VALUES('delete', old.id, old.content, old.outcome);
END;

CREATE TRIGGER IF NOT EXISTS prompts_au AFTER UPDATE ON prompts BEGIN
	INSERT INTO prompts_fts(prompts_fts, rowid, content, outcome)
	VALUES('delete', old.id, old.content, old.outcome);
	INSERT INTO prompts_fts(rowid, content, outcome)
	VALUES (new.id, new.content, new.outcome);
END;
`

// SQLiteStore implements Store on an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if necessary) the vault database at path.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating vault directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening vault: %w", err)
	}
	// The vault is single-user; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// OpenInMemory opens a throwaway in-memory vault, used by tests.
func OpenInMemory() (*SQLiteStore, error) {
	return Open(":memory:")
}

// Close releases the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// AddPrompt inserts a prompt and its tags.
func (s *SQLiteStore) AddPrompt(ctx context.Context, p *Prompt) (int64, error) {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO prompts (content, outcome, rating, model, task_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Content, nullString(p.Outcome), nullRating(p.Rating),
		nullString(p.Model), nullString(p.TaskType), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting prompt: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, tag := range p.Tags {
		if err := addTag(ctx, tx, id, tag); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

func addTag(ctx context.Context, tx *sql.Tx, promptID int64, tag string) error {
	if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO tags (name) VALUES (?)", tag); err != nil {
		return fmt.Errorf("inserting tag %q: %w", tag, err)
	}
	var tagID int64
	if err := tx.QueryRowContext(ctx, "SELECT id FROM tags WHERE name = ?", tag).Scan(&tagID); err != nil {
		return fmt.Errorf("resolving tag %q: %w", tag, err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO prompt_tags (prompt_id, tag_id) VALUES (?, ?)", promptID, tagID); err != nil {
		return fmt.Errorf("linking tag %q: %w", tag, err)
	}
	return nil
}

// GetPrompt loads a prompt with tags and verdicts.
func (s *SQLiteStore) GetPrompt(ctx context.Context, id int64) (*Prompt, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, content, outcome, rating, model, task_type, created_at, updated_at
		FROM prompts WHERE id = ?`, id)

	p, err := scanPrompt(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if p.Tags, err = s.promptTags(ctx, id); err != nil {
		return nil, err
	}
	if p.Verdicts, p.Provenance, err = s.Verdicts(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPrompts returns prompts newest first.
func (s *SQLiteStore) ListPrompts(ctx context.Context, filter ListFilter) ([]*Prompt, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	query := `SELECT DISTINCT p.id, p.content, p.outcome, p.rating, p.model, p.task_type, p.created_at, p.updated_at
		FROM prompts p`
	var args []any
	var where []string

	if filter.Tag != "" {
		query += ` JOIN prompt_tags pt ON p.id = pt.prompt_id JOIN tags t ON pt.tag_id = t.id`
		where = append(where, "t.name = ?")
		args = append(args, filter.Tag)
	}
	if filter.Rating != 0 {
		where = append(where, "p.rating = ?")
		args = append(args, filter.Rating)
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	return s.queryPrompts(ctx, query, args...)
}

// SearchPrompts runs an FTS5 match over content and outcome.
func (s *SQLiteStore) SearchPrompts(ctx context.Context, query string, limit int) ([]*Prompt, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryPrompts(ctx, `
		SELECT p.id, p.content, p.outcome, p.rating, p.model, p.task_type, p.created_at, p.updated_at
		FROM prompts p
		JOIN prompts_fts fts ON p.id = fts.rowid
		WHERE prompts_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, query, limit)
}

// RatePrompt overwrites the rating, and the outcome note when provided.
func (s *SQLiteStore) RatePrompt(ctx context.Context, id int64, rating int, outcome string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating %d out of range [1,5]", rating)
	}

	var res sql.Result
	var err error
	if outcome != "" {
		res, err = s.db.ExecContext(ctx,
			"UPDATE prompts SET rating = ?, outcome = ?, updated_at = ? WHERE id = ?",
			rating, outcome, time.Now().UTC(), id)
	} else {
		res, err = s.db.ExecContext(ctx,
			"UPDATE prompts SET rating = ?, updated_at = ? WHERE id = ?",
			rating, time.Now().UTC(), id)
	}
	if err != nil {
		return fmt.Errorf("rating prompt %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveVerdicts replaces the verdict set for a prompt in one transaction.
func (s *SQLiteStore) SaveVerdicts(ctx context.Context, id int64, v trait.Verdicts, provenance trait.Provenance) error {
	var exists int64
	if err := s.db.QueryRowContext(ctx, "SELECT id FROM prompts WHERE id = ?", id).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM traits WHERE prompt_id = ?", id); err != nil {
		return fmt.Errorf("clearing verdicts for prompt %d: %w", id, err)
	}
	for _, t := range trait.All() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO traits (prompt_id, trait_name, detected, source) VALUES (?, ?, ?, ?)",
			id, t.Key(), v[t], provenance.String()); err != nil {
			return fmt.Errorf("saving verdict %s for prompt %d: %w", t.Key(), id, err)
		}
	}

	return tx.Commit()
}

// Verdicts loads the stored verdict set, or nil when absent. A stored
// set is only returned when it covers the full taxonomy.
func (s *SQLiteStore) Verdicts(ctx context.Context, id int64) (*trait.Verdicts, trait.Provenance, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT trait_name, detected, source FROM traits WHERE prompt_id = ?", id)
	if err != nil {
		return nil, trait.ProvenanceRule, err
	}
	defer rows.Close()

	var v trait.Verdicts
	provenance := trait.ProvenanceRule
	count := 0
	for rows.Next() {
		var name, source string
		var detected bool
		if err := rows.Scan(&name, &detected, &source); err != nil {
			return nil, trait.ProvenanceRule, err
		}
		t, ok := trait.FromKey(name)
		if !ok {
			continue
		}
		v[t] = detected
		provenance = trait.ProvenanceFromString(source)
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, trait.ProvenanceRule, err
	}
	if count != trait.Count {
		return nil, trait.ProvenanceRule, nil
	}
	return &v, provenance, nil
}

// UnanalyzedPrompts returns prompts with no stored verdicts.
func (s *SQLiteStore) UnanalyzedPrompts(ctx context.Context) ([]*Prompt, error) {
	return s.queryPrompts(ctx, `
		SELECT p.id, p.content, p.outcome, p.rating, p.model, p.task_type, p.created_at, p.updated_at
		FROM prompts p
		WHERE p.id NOT IN (SELECT DISTINCT prompt_id FROM traits)
		ORDER BY p.id`)
}

// AllPrompts returns every prompt, oldest first.
func (s *SQLiteStore) AllPrompts(ctx context.Context) ([]*Prompt, error) {
	return s.queryPrompts(ctx, `
		SELECT p.id, p.content, p.outcome, p.rating, p.model, p.task_type, p.created_at, p.updated_at
		FROM prompts p
		ORDER BY p.id`)
}

// Observations returns rated, fully analyzed prompts for the engine.
func (s *SQLiteStore) Observations(ctx context.Context) ([]insights.Observation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.rating
		FROM prompts p
		WHERE p.rating IS NOT NULL
		AND (SELECT COUNT(*) FROM traits t WHERE t.prompt_id = p.id) = ?
		ORDER BY p.id`, trait.Count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var observations []insights.Observation
	for rows.Next() {
		var obs insights.Observation
		if err := rows.Scan(&obs.PromptID, &obs.Rating); err != nil {
			return nil, err
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range observations {
		v, _, err := s.Verdicts(ctx, observations[i].PromptID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		observations[i].Verdicts = *v
	}
	return observations, nil
}

// Tags returns all distinct tags sorted by name.
func (s *SQLiteStore) Tags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM tags ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

// Stats returns vault-level counts.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(rating),
		       COALESCE(AVG(rating), 0)
		FROM prompts`).Scan(&stats.TotalPrompts, &stats.RatedPrompts, &stats.AvgRating)
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func (s *SQLiteStore) promptTags(ctx context.Context, id int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name FROM tags t
		JOIN prompt_tags pt ON t.id = pt.tag_id
		WHERE pt.prompt_id = ?
		ORDER BY t.name`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

func (s *SQLiteStore) queryPrompts(ctx context.Context, query string, args ...any) ([]*Prompt, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prompts []*Prompt
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range prompts {
		if p.Tags, err = s.promptTags(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return prompts, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrompt(row rowScanner) (*Prompt, error) {
	var p Prompt
	var outcome, model, taskType sql.NullString
	var rating sql.NullInt64

	err := row.Scan(&p.ID, &p.Content, &outcome, &rating, &model, &taskType, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Outcome = outcome.String
	p.Model = model.String
	p.TaskType = taskType.String
	p.Rating = int(rating.Int64)
	return &p, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullRating(r int) any {
	if r == 0 {
		return nil
	}
	return r
}
