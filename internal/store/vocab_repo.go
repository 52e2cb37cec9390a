package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/lexio/internal/vocab"
)

// VocabRepo returns the vocab adapter.
func (s *Store) VocabRepo() vocab.Repo {
	return &vocabRepo{db: s.db, now: time.Now}
}

type vocabRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

type vocabRow struct {
	UID           string `db:"uid"`
	Language      string `db:"language"`
	Content       string `db:"content"`
	Length        string `db:"length"`
	Priority      int    `db:"priority"`
	DoNotPractice bool   `db:"do_not_practice"`
	Translations  string `db:"translations"`
	Notes         string `db:"notes"`
	Origins       string `db:"origins"`
	Level         int    `db:"level"`
	Due           int64  `db:"due"`
	Progress      string `db:"progress"`
}

const vocabColumns = `uid, language, content, length, priority, do_not_practice,
	translations, notes, origins, level, due, progress`

func (r *vocabRow) toVocab() (*vocab.Vocab, error) {
	v := &vocab.Vocab{
		UID:           r.UID,
		Language:      r.Language,
		Content:       r.Content,
		Length:        vocab.Length(r.Length),
		Priority:      r.Priority,
		DoNotPractice: r.DoNotPractice,
	}
	for dst, src := range map[*[]string]string{
		&v.Translations: r.Translations,
		&v.Notes:        r.Notes,
		&v.Origins:      r.Origins,
	} {
		if err := json.Unmarshal([]byte(src), dst); err != nil {
			return nil, fmt.Errorf("vocab %s: decode list: %w", r.UID, err)
		}
	}
	if err := json.Unmarshal([]byte(r.Progress), &v.Progress); err != nil {
		return nil, fmt.Errorf("vocab %s: decode progress: %w", r.UID, err)
	}
	return v, nil
}

func fromVocab(v *vocab.Vocab) (*vocabRow, error) {
	translations, err := json.Marshal(emptyIfNil(v.Translations))
	if err != nil {
		return nil, err
	}
	notes, err := json.Marshal(emptyIfNil(v.Notes))
	if err != nil {
		return nil, err
	}
	origins, err := json.Marshal(emptyIfNil(v.Origins))
	if err != nil {
		return nil, err
	}
	progress, err := json.Marshal(v.Progress)
	if err != nil {
		return nil, err
	}
	return &vocabRow{
		UID:           v.UID,
		Language:      v.Language,
		Content:       v.Content,
		Length:        string(v.Length),
		Priority:      v.Priority,
		DoNotPractice: v.DoNotPractice,
		Translations:  string(translations),
		Notes:         string(notes),
		Origins:       string(origins),
		Level:         v.Progress.Level,
		Due:           v.Progress.Due.Unix(),
		Progress:      string(progress),
	}, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *vocabRepo) getOne(ctx context.Context, query string, args ...any) (*vocab.Vocab, error) {
	var row vocabRow
	err := r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toVocab()
}

func (r *vocabRepo) getMany(ctx context.Context, query string, args ...any) ([]*vocab.Vocab, error) {
	var rows []vocabRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]*vocab.Vocab, 0, len(rows))
	for i := range rows {
		v, err := rows[i].toVocab()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *vocabRepo) GetByUID(ctx context.Context, uid string) (*vocab.Vocab, error) {
	return r.getOne(ctx, `SELECT `+vocabColumns+` FROM vocab WHERE uid = ?`, uid)
}

func (r *vocabRepo) GetByUIDs(ctx context.Context, uids []string) ([]*vocab.Vocab, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT `+vocabColumns+` FROM vocab WHERE uid IN (?)`, uids)
	if err != nil {
		return nil, err
	}
	return r.getMany(ctx, query, args...)
}

func (r *vocabRepo) GetByContent(ctx context.Context, language, content string) (*vocab.Vocab, error) {
	return r.getOne(ctx,
		`SELECT `+vocabColumns+` FROM vocab WHERE language = ? AND content = ?`,
		language, content)
}

func (r *vocabRepo) DueInLanguages(ctx context.Context, languages, block []string) ([]*vocab.Vocab, error) {
	if len(languages) == 0 {
		return nil, nil
	}
	q := `SELECT ` + vocabColumns + ` FROM vocab
		WHERE language IN (?) AND level >= 0 AND due <= ? AND do_not_practice = 0`
	args := []any{languages, r.now().Unix()}
	if len(block) > 0 {
		q += ` AND uid NOT IN (?)`
		args = append(args, block)
	}
	query, inArgs, err := sqlx.In(q, args...)
	if err != nil {
		return nil, err
	}
	return r.getMany(ctx, query, inArgs...)
}

func (r *vocabRepo) RandomUnseenInLanguages(ctx context.Context, languages []string, n int, block []string) ([]*vocab.Vocab, error) {
	if len(languages) == 0 || n <= 0 {
		return nil, nil
	}
	q := `SELECT ` + vocabColumns + ` FROM vocab
		WHERE language IN (?) AND level = -1 AND do_not_practice = 0`
	args := []any{languages}
	if len(block) > 0 {
		q += ` AND uid NOT IN (?)`
		args = append(args, block)
	}
	q += ` ORDER BY RANDOM() LIMIT ?`
	args = append(args, n)
	query, inArgs, err := sqlx.In(q, args...)
	if err != nil {
		return nil, err
	}
	return r.getMany(ctx, query, inArgs...)
}

func (r *vocabRepo) UnseenByUIDs(ctx context.Context, uids []string) ([]*vocab.Vocab, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT `+vocabColumns+` FROM vocab
		WHERE uid IN (?) AND level = -1 AND do_not_practice = 0`, uids)
	if err != nil {
		return nil, err
	}
	return r.getMany(ctx, query, args...)
}

func (r *vocabRepo) DueByUIDs(ctx context.Context, uids []string) ([]*vocab.Vocab, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT `+vocabColumns+` FROM vocab
		WHERE uid IN (?) AND level >= 0 AND due <= ? AND do_not_practice = 0`,
		uids, r.now().Unix())
	if err != nil {
		return nil, err
	}
	return r.getMany(ctx, query, args...)
}

func (r *vocabRepo) List(ctx context.Context, language string, limit, offset int) ([]*vocab.Vocab, error) {
	return r.getMany(ctx,
		`SELECT `+vocabColumns+` FROM vocab WHERE language = ? ORDER BY content LIMIT ? OFFSET ?`,
		language, limit, offset)
}

func (r *vocabRepo) LowestDueDate(ctx context.Context, languages []string) (time.Time, error) {
	if len(languages) == 0 {
		return time.Time{}, nil
	}
	query, args, err := sqlx.In(
		`SELECT MIN(due) FROM vocab WHERE language IN (?) AND level >= 0`, languages)
	if err != nil {
		return time.Time{}, err
	}
	var lowest sql.NullInt64
	if err := r.db.GetContext(ctx, &lowest, query, args...); err != nil {
		return time.Time{}, err
	}
	if !lowest.Valid {
		return time.Time{}, nil
	}
	return time.Unix(lowest.Int64, 0), nil
}

func (r *vocabRepo) Save(ctx context.Context, v *vocab.Vocab) error {
	row, err := fromVocab(v)
	if err != nil {
		return fmt.Errorf("vocab %s: encode: %w", v.UID, err)
	}
	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO vocab (uid, language, content, length, priority, do_not_practice,
			translations, notes, origins, level, due, progress)
		VALUES (:uid, :language, :content, :length, :priority, :do_not_practice,
			:translations, :notes, :origins, :level, :due, :progress)
		ON CONFLICT(uid) DO UPDATE SET
			language = excluded.language,
			content = excluded.content,
			length = excluded.length,
			priority = excluded.priority,
			do_not_practice = excluded.do_not_practice,
			translations = excluded.translations,
			notes = excluded.notes,
			origins = excluded.origins,
			level = excluded.level,
			due = excluded.due,
			progress = excluded.progress`, row)
	return err
}

func (r *vocabRepo) Delete(ctx context.Context, uid string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vocab WHERE uid = ?`, uid)
	return err
}
