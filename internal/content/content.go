// Package content holds the collaborator entities the practice engine reads
// alongside vocabulary: translations, notes, goals, resources, immersion
// content, languages, and stored task records. The engine consumes them
// through the narrow repo contracts in repos.go; persistence lives in
// internal/store.
package content

import "time"

// Translation is a rendering of a unit's meaning in another language.
type Translation struct {
	UID      string `json:"uid"`
	Language string `json:"language"`
	Content  string `json:"content"`
}

// NoteType tags what kind of information a note carries.
type NoteType string

const (
	NotePronunciation NoteType = "pronunciation"
	NoteUsage         NoteType = "usage"
	NoteFreeform      NoteType = "freeform"
)

// Note is arbitrary linked information attached to a unit.
type Note struct {
	UID      string   `json:"uid"`
	NoteType NoteType `json:"noteType"`
	Content  string   `json:"content"`
}

// Goal is a learner-defined objective that links vocabulary, sub-goals and
// milestones together.
type Goal struct {
	UID        string   `json:"uid"`
	Language   string   `json:"language"`
	Title      string   `json:"title"`
	Vocab      []string `json:"vocab"`    // linked vocab uids
	SubGoals   []string `json:"subGoals"` // linked goal uids
	Milestones []string `json:"milestones"`
	IsComplete bool     `json:"isComplete"`
}

// Resource is an external learning material (article, video, book chapter)
// the learner extracts vocabulary from over several sittings.
type Resource struct {
	UID               string     `json:"uid"`
	Language          string     `json:"language"`
	Title             string     `json:"title"`
	Vocab             []string   `json:"vocab"` // extracted vocab uids
	FinishedExtracting bool      `json:"finishedExtracting"`
	LastShownAt       *time.Time `json:"lastShownAt,omitempty"`
	NextShownEarliestAt time.Time `json:"nextShownEarliestAt"`
}

// ImmersionContent is native-level material gated behind a set of vocabulary
// the learner should mostly know before consuming it.
type ImmersionContent struct {
	UID         string   `json:"uid"`
	Language    string   `json:"language"`
	Title       string   `json:"title"`
	NeededVocab []string `json:"neededVocab"`
	Tasks       []string `json:"tasks"` // attached stored-task uids
}

// Language is a target language the learner is actively studying.
type Language struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// StoredTask is a persisted maintenance/practice task record attached to a
// vocab unit, resource, or goal. Generated exercise descriptors live in
// internal/task; stored tasks are the long-lived ones the learner can defer.
type StoredTask struct {
	UID             string     `json:"uid"`
	TaskType        string     `json:"taskType"`
	Language        string     `json:"language"`
	Prompt          string     `json:"prompt"`
	IsActive        bool       `json:"isActive"`
	AssociatedVocab []string   `json:"associatedVocab"`
	AssociatedGoals []string   `json:"associatedGoals"`
	AssociatedResources []string `json:"associatedResources"`
	LastShownAt     *time.Time `json:"lastShownAt,omitempty"`
}
