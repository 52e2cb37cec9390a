package content

import "context"

// TranslationRepo resolves translation ids to records.
type TranslationRepo interface {
	GetByUIDs(ctx context.Context, uids []string) ([]*Translation, error)
	AllInLanguage(ctx context.Context, language string) ([]*Translation, error)
	Save(ctx context.Context, t *Translation) error
}

// NoteRepo resolves note ids to records.
type NoteRepo interface {
	GetByUIDs(ctx context.Context, uids []string) ([]*Note, error)
	Save(ctx context.Context, n *Note) error
}

// GoalRepo provides goal lookup and incomplete-goal queries.
type GoalRepo interface {
	GetByUID(ctx context.Context, uid string) (*Goal, error)
	Incomplete(ctx context.Context) ([]*Goal, error)
	Save(ctx context.Context, g *Goal) error
}

// ResourceRepo provides resource lookup and due-resource queries.
type ResourceRepo interface {
	GetByUID(ctx context.Context, uid string) (*Resource, error)
	// RandomDue returns a resource in one of the languages whose
	// next-shown time has passed, or nil when none qualifies.
	RandomDue(ctx context.Context, languages []string) (*Resource, error)
	Save(ctx context.Context, r *Resource) error
}

// ImmersionRepo lists immersion content for the mastery-band strategies.
type ImmersionRepo interface {
	All(ctx context.Context) ([]*ImmersionContent, error)
	GetByUID(ctx context.Context, uid string) (*ImmersionContent, error)
	Save(ctx context.Context, c *ImmersionContent) error
}

// LanguageRepo lists the learner's active target languages.
type LanguageRepo interface {
	ActiveTargetLanguages(ctx context.Context) ([]*Language, error)
	Save(ctx context.Context, l *Language) error
}

// TaskRepo provides stored-task lookup by associated entity. The lookup
// methods return active tasks only; deferred or dismissed tasks stay stored
// but are never served.
type TaskRepo interface {
	ByVocabID(ctx context.Context, vocabUID string) ([]*StoredTask, error)
	ByResourceID(ctx context.Context, resourceUID string) ([]*StoredTask, error)
	ByGoalID(ctx context.Context, goalUID string) ([]*StoredTask, error)
	Save(ctx context.Context, t *StoredTask) error
}
