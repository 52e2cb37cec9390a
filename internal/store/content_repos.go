package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/lexio/internal/content"
)

// TranslationRepo returns the translation adapter.
func (s *Store) TranslationRepo() content.TranslationRepo { return &translationRepo{db: s.db} }

// NoteRepo returns the note adapter.
func (s *Store) NoteRepo() content.NoteRepo { return &noteRepo{db: s.db} }

// GoalRepo returns the goal adapter.
func (s *Store) GoalRepo() content.GoalRepo { return &goalRepo{db: s.db} }

// ResourceRepo returns the resource adapter.
func (s *Store) ResourceRepo() content.ResourceRepo {
	return &resourceRepo{db: s.db, now: time.Now}
}

// ImmersionRepo returns the immersion-content adapter.
func (s *Store) ImmersionRepo() content.ImmersionRepo { return &immersionRepo{db: s.db} }

// LanguageRepo returns the language adapter.
func (s *Store) LanguageRepo() content.LanguageRepo { return &languageRepo{db: s.db} }

// TaskRepo returns the stored-task adapter.
func (s *Store) TaskRepo() content.TaskRepo { return &storedTaskRepo{db: s.db} }

func decodeList(uid, field, src string, dst *[]string) error {
	if err := json.Unmarshal([]byte(src), dst); err != nil {
		return fmt.Errorf("%s: decode %s: %w", uid, field, err)
	}
	return nil
}

func encodeList(s []string) (string, error) {
	b, err := json.Marshal(emptyIfNil(s))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type translationRepo struct {
	db *sqlx.DB
}

func (r *translationRepo) GetByUIDs(ctx context.Context, uids []string) ([]*content.Translation, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT uid, language, content FROM translations WHERE uid IN (?)`, uids)
	if err != nil {
		return nil, err
	}
	var out []*content.Translation
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *translationRepo) AllInLanguage(ctx context.Context, language string) ([]*content.Translation, error) {
	var out []*content.Translation
	err := r.db.SelectContext(ctx, &out,
		`SELECT uid, language, content FROM translations WHERE language = ?`, language)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *translationRepo) Save(ctx context.Context, t *content.Translation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO translations (uid, language, content) VALUES (?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET language = excluded.language, content = excluded.content`,
		t.UID, t.Language, t.Content)
	return err
}

type noteRepo struct {
	db *sqlx.DB
}

type noteRow struct {
	UID      string `db:"uid"`
	NoteType string `db:"note_type"`
	Content  string `db:"content"`
}

func (r *noteRepo) GetByUIDs(ctx context.Context, uids []string) ([]*content.Note, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT uid, note_type, content FROM notes WHERE uid IN (?)`, uids)
	if err != nil {
		return nil, err
	}
	var rows []noteRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]*content.Note, len(rows))
	for i, row := range rows {
		out[i] = &content.Note{UID: row.UID, NoteType: content.NoteType(row.NoteType), Content: row.Content}
	}
	return out, nil
}

func (r *noteRepo) Save(ctx context.Context, n *content.Note) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (uid, note_type, content) VALUES (?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET note_type = excluded.note_type, content = excluded.content`,
		n.UID, string(n.NoteType), n.Content)
	return err
}

type goalRepo struct {
	db *sqlx.DB
}

type goalRow struct {
	UID        string `db:"uid"`
	Language   string `db:"language"`
	Title      string `db:"title"`
	Vocab      string `db:"vocab"`
	SubGoals   string `db:"sub_goals"`
	Milestones string `db:"milestones"`
	IsComplete bool   `db:"is_complete"`
}

func (r *goalRow) toGoal() (*content.Goal, error) {
	g := &content.Goal{
		UID:        r.UID,
		Language:   r.Language,
		Title:      r.Title,
		IsComplete: r.IsComplete,
	}
	if err := decodeList(r.UID, "vocab", r.Vocab, &g.Vocab); err != nil {
		return nil, err
	}
	if err := decodeList(r.UID, "sub_goals", r.SubGoals, &g.SubGoals); err != nil {
		return nil, err
	}
	if err := decodeList(r.UID, "milestones", r.Milestones, &g.Milestones); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *goalRepo) GetByUID(ctx context.Context, uid string) (*content.Goal, error) {
	var row goalRow
	err := r.db.GetContext(ctx, &row,
		`SELECT uid, language, title, vocab, sub_goals, milestones, is_complete
		FROM goals WHERE uid = ?`, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toGoal()
}

func (r *goalRepo) Incomplete(ctx context.Context) ([]*content.Goal, error) {
	var rows []goalRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT uid, language, title, vocab, sub_goals, milestones, is_complete
		FROM goals WHERE is_complete = 0`)
	if err != nil {
		return nil, err
	}
	out := make([]*content.Goal, 0, len(rows))
	for i := range rows {
		g, err := rows[i].toGoal()
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *goalRepo) Save(ctx context.Context, g *content.Goal) error {
	vocabJSON, err := encodeList(g.Vocab)
	if err != nil {
		return err
	}
	subGoalsJSON, err := encodeList(g.SubGoals)
	if err != nil {
		return err
	}
	milestonesJSON, err := encodeList(g.Milestones)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO goals (uid, language, title, vocab, sub_goals, milestones, is_complete)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			language = excluded.language,
			title = excluded.title,
			vocab = excluded.vocab,
			sub_goals = excluded.sub_goals,
			milestones = excluded.milestones,
			is_complete = excluded.is_complete`,
		g.UID, g.Language, g.Title, vocabJSON, subGoalsJSON, milestonesJSON, g.IsComplete)
	return err
}

type resourceRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

type resourceRow struct {
	UID                 string        `db:"uid"`
	Language            string        `db:"language"`
	Title               string        `db:"title"`
	Vocab               string        `db:"vocab"`
	FinishedExtracting  bool          `db:"finished_extracting"`
	LastShownAt         sql.NullInt64 `db:"last_shown_at"`
	NextShownEarliestAt int64         `db:"next_shown_earliest_at"`
}

func (r *resourceRow) toResource() (*content.Resource, error) {
	res := &content.Resource{
		UID:                 r.UID,
		Language:            r.Language,
		Title:               r.Title,
		FinishedExtracting:  r.FinishedExtracting,
		NextShownEarliestAt: time.Unix(r.NextShownEarliestAt, 0),
	}
	if r.LastShownAt.Valid {
		t := time.Unix(r.LastShownAt.Int64, 0)
		res.LastShownAt = &t
	}
	if err := decodeList(r.UID, "vocab", r.Vocab, &res.Vocab); err != nil {
		return nil, err
	}
	return res, nil
}

const resourceColumns = `uid, language, title, vocab, finished_extracting,
	last_shown_at, next_shown_earliest_at`

func (r *resourceRepo) GetByUID(ctx context.Context, uid string) (*content.Resource, error) {
	var row resourceRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+resourceColumns+` FROM resources WHERE uid = ?`, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toResource()
}

func (r *resourceRepo) RandomDue(ctx context.Context, languages []string) (*content.Resource, error) {
	if len(languages) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT `+resourceColumns+` FROM resources
		WHERE language IN (?) AND next_shown_earliest_at <= ?
		ORDER BY RANDOM() LIMIT 1`, languages, r.now().Unix())
	if err != nil {
		return nil, err
	}
	var row resourceRow
	err = r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toResource()
}

func (r *resourceRepo) Save(ctx context.Context, res *content.Resource) error {
	vocabJSON, err := encodeList(res.Vocab)
	if err != nil {
		return err
	}
	var lastShown sql.NullInt64
	if res.LastShownAt != nil {
		lastShown = sql.NullInt64{Int64: res.LastShownAt.Unix(), Valid: true}
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO resources (uid, language, title, vocab, finished_extracting,
			last_shown_at, next_shown_earliest_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			language = excluded.language,
			title = excluded.title,
			vocab = excluded.vocab,
			finished_extracting = excluded.finished_extracting,
			last_shown_at = excluded.last_shown_at,
			next_shown_earliest_at = excluded.next_shown_earliest_at`,
		res.UID, res.Language, res.Title, vocabJSON, res.FinishedExtracting,
		lastShown, res.NextShownEarliestAt.Unix())
	return err
}

type immersionRepo struct {
	db *sqlx.DB
}

type immersionRow struct {
	UID         string `db:"uid"`
	Language    string `db:"language"`
	Title       string `db:"title"`
	NeededVocab string `db:"needed_vocab"`
	Tasks       string `db:"tasks"`
}

func (r *immersionRow) toContent() (*content.ImmersionContent, error) {
	c := &content.ImmersionContent{
		UID:      r.UID,
		Language: r.Language,
		Title:    r.Title,
	}
	if err := decodeList(r.UID, "needed_vocab", r.NeededVocab, &c.NeededVocab); err != nil {
		return nil, err
	}
	if err := decodeList(r.UID, "tasks", r.Tasks, &c.Tasks); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *immersionRepo) All(ctx context.Context) ([]*content.ImmersionContent, error) {
	var rows []immersionRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT uid, language, title, needed_vocab, tasks FROM immersion_content`)
	if err != nil {
		return nil, err
	}
	out := make([]*content.ImmersionContent, 0, len(rows))
	for i := range rows {
		c, err := rows[i].toContent()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *immersionRepo) GetByUID(ctx context.Context, uid string) (*content.ImmersionContent, error) {
	var row immersionRow
	err := r.db.GetContext(ctx, &row,
		`SELECT uid, language, title, needed_vocab, tasks FROM immersion_content WHERE uid = ?`, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toContent()
}

func (r *immersionRepo) Save(ctx context.Context, c *content.ImmersionContent) error {
	neededJSON, err := encodeList(c.NeededVocab)
	if err != nil {
		return err
	}
	tasksJSON, err := encodeList(c.Tasks)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO immersion_content (uid, language, title, needed_vocab, tasks)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			language = excluded.language,
			title = excluded.title,
			needed_vocab = excluded.needed_vocab,
			tasks = excluded.tasks`,
		c.UID, c.Language, c.Title, neededJSON, tasksJSON)
	return err
}

type languageRepo struct {
	db *sqlx.DB
}

type languageRow struct {
	Code     string `db:"code"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

func (r *languageRepo) ActiveTargetLanguages(ctx context.Context) ([]*content.Language, error) {
	var rows []languageRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT code, name, is_active FROM languages WHERE is_active = 1 ORDER BY code`)
	if err != nil {
		return nil, err
	}
	out := make([]*content.Language, len(rows))
	for i, row := range rows {
		out[i] = &content.Language{Code: row.Code, Name: row.Name, IsActive: row.IsActive}
	}
	return out, nil
}

func (r *languageRepo) Save(ctx context.Context, l *content.Language) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO languages (code, name, is_active) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET name = excluded.name, is_active = excluded.is_active`,
		l.Code, l.Name, l.IsActive)
	return err
}

type storedTaskRepo struct {
	db *sqlx.DB
}

type storedTaskRow struct {
	UID                 string        `db:"uid"`
	TaskType            string        `db:"task_type"`
	Language            string        `db:"language"`
	Prompt              string        `db:"prompt"`
	IsActive            bool          `db:"is_active"`
	AssociatedVocab     string        `db:"associated_vocab"`
	AssociatedGoals     string        `db:"associated_goals"`
	AssociatedResources string        `db:"associated_resources"`
	LastShownAt         sql.NullInt64 `db:"last_shown_at"`
}

func (r *storedTaskRow) toStoredTask() (*content.StoredTask, error) {
	t := &content.StoredTask{
		UID:      r.UID,
		TaskType: r.TaskType,
		Language: r.Language,
		Prompt:   r.Prompt,
		IsActive: r.IsActive,
	}
	if r.LastShownAt.Valid {
		shown := time.Unix(r.LastShownAt.Int64, 0)
		t.LastShownAt = &shown
	}
	if err := decodeList(r.UID, "associated_vocab", r.AssociatedVocab, &t.AssociatedVocab); err != nil {
		return nil, err
	}
	if err := decodeList(r.UID, "associated_goals", r.AssociatedGoals, &t.AssociatedGoals); err != nil {
		return nil, err
	}
	if err := decodeList(r.UID, "associated_resources", r.AssociatedResources, &t.AssociatedResources); err != nil {
		return nil, err
	}
	return t, nil
}

const storedTaskColumns = `uid, task_type, language, prompt, is_active,
	associated_vocab, associated_goals, associated_resources, last_shown_at`

func (r *storedTaskRepo) byAssociation(ctx context.Context, column, uid string) ([]*content.StoredTask, error) {
	// JSON list columns; a LIKE on the quoted uid is exact enough since
	// uids never contain quotes.
	var rows []storedTaskRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+storedTaskColumns+` FROM stored_tasks
		WHERE is_active = 1 AND `+column+` LIKE ?`,
		`%"`+uid+`"%`)
	if err != nil {
		return nil, err
	}
	out := make([]*content.StoredTask, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toStoredTask()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *storedTaskRepo) ByVocabID(ctx context.Context, vocabUID string) ([]*content.StoredTask, error) {
	return r.byAssociation(ctx, "associated_vocab", vocabUID)
}

func (r *storedTaskRepo) ByResourceID(ctx context.Context, resourceUID string) ([]*content.StoredTask, error) {
	return r.byAssociation(ctx, "associated_resources", resourceUID)
}

func (r *storedTaskRepo) ByGoalID(ctx context.Context, goalUID string) ([]*content.StoredTask, error) {
	return r.byAssociation(ctx, "associated_goals", goalUID)
}

func (r *storedTaskRepo) Save(ctx context.Context, t *content.StoredTask) error {
	vocabJSON, err := encodeList(t.AssociatedVocab)
	if err != nil {
		return err
	}
	goalsJSON, err := encodeList(t.AssociatedGoals)
	if err != nil {
		return err
	}
	resourcesJSON, err := encodeList(t.AssociatedResources)
	if err != nil {
		return err
	}
	var lastShown sql.NullInt64
	if t.LastShownAt != nil {
		lastShown = sql.NullInt64{Int64: t.LastShownAt.Unix(), Valid: true}
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO stored_tasks (uid, task_type, language, prompt, is_active,
			associated_vocab, associated_goals, associated_resources, last_shown_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			task_type = excluded.task_type,
			language = excluded.language,
			prompt = excluded.prompt,
			is_active = excluded.is_active,
			associated_vocab = excluded.associated_vocab,
			associated_goals = excluded.associated_goals,
			associated_resources = excluded.associated_resources,
			last_shown_at = excluded.last_shown_at`,
		t.UID, t.TaskType, t.Language, t.Prompt, t.IsActive,
		vocabJSON, goalsJSON, resourcesJSON, lastShown)
	return err
}
