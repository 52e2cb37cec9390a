package taskgen

import "strings"

// Cloze is a sentence with one word blanked out.
type Cloze struct {
	Blanked string // sentence with the hidden word replaced by a blank
	Hidden  string // the word the learner must produce
}

const blankMarker = "____"

func splitWords(text string) []string {
	return strings.Fields(text)
}

// buildCloze hides the word at index level modulo the word count, so a unit
// cycles through different blanks as its level grows instead of always
// hiding the same word.
func buildCloze(text string, level int) Cloze {
	words := splitWords(text)
	if len(words) < 2 {
		return Cloze{Blanked: blankMarker, Hidden: text}
	}

	if level < 0 {
		level = 0
	}
	idx := level % len(words)

	hidden := words[idx]
	blanked := make([]string, len(words))
	copy(blanked, words)
	blanked[idx] = blankMarker

	return Cloze{
		Blanked: strings.Join(blanked, " "),
		Hidden:  hidden,
	}
}
