// Package task defines the descriptors the engine hands to the UI: one
// generated, self-contained unit of work per descriptor. Descriptors are
// immutable once generated; all mutable practice state lives in progress
// records and trackers.
package task

// Type identifies the kind of work a descriptor describes.
type Type string

const (
	TypeVocabTryToRemember     Type = "vocab-try-to-remember"
	TypeGuessSentenceMeaning   Type = "guess-what-sentence-means"
	TypeVocabRevealTargetToNative Type = "vocab-reveal-target-to-native"
	TypeVocabRevealNativeToTarget Type = "vocab-reveal-native-to-target"
	TypeChoiceTwoTargetToNative  Type = "vocab-choose-from-two-target-to-native"
	TypeChoiceTwoNativeToTarget  Type = "vocab-choose-from-two-native-to-target"
	TypeChoiceFourTargetToNative Type = "vocab-choose-from-four-target-to-native"
	TypeChoiceFourNativeToTarget Type = "vocab-choose-from-four-native-to-target"
	TypeClozeChoice              Type = "cloze-choice"
	TypeClozeReveal              Type = "cloze-reveal"
	TypeFreeTranslate            Type = "free-translate"
	TypeAddTranslation           Type = "add-translation"
	TypeAddPronunciation         Type = "add-pronunciation"
	TypeExtractFromResource      Type = "extract-knowledge-from-resource"
	TypeConsumeImmersionContent  Type = "consume-immersion-content"
	TypeAddSubGoals              Type = "add-sub-goals"
	TypeAddVocabToGoal           Type = "add-vocab-to-goal"
	TypeAddMilestones            Type = "add-milestones"
)

// Size buckets a task by how long it takes. The size tracker balances the
// served mix against fixed target ratios.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeBig    Size = "big"
)

// Task is a generated task/exercise descriptor. Kind-specific payload fields
// are populated per Type: choice tasks carry Options and Solution, reveal and
// cloze tasks carry Solution, maintenance tasks carry only the prompt.
type Task struct {
	UID      string `json:"uid"`
	Type     Type   `json:"type"`
	Language string `json:"language"`
	Prompt   string `json:"prompt"`

	// Question is the text shown before answering: the unit content, the
	// cloze sentence with a blank, or the translation to produce.
	Question string `json:"question,omitempty"`

	// Options holds the answer choices for choice tasks. The correct answer
	// is always one of them and never duplicated among them.
	Options []string `json:"options,omitempty"`

	// Solution is the expected answer or revealed text.
	Solution string `json:"solution,omitempty"`

	AssociatedVocab     []string `json:"associatedVocab,omitempty"`
	AssociatedGoals     []string `json:"associatedGoals,omitempty"`
	AssociatedResources []string `json:"associatedResources,omitempty"`
	AssociatedImmersion []string `json:"associatedImmersion,omitempty"`
}
