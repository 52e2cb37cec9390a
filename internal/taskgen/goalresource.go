package taskgen

import (
	"fmt"
	"math/rand"

	"github.com/abhisek/lexio/internal/content"
	"github.com/abhisek/lexio/internal/task"
)

// CanGenerateAddSubGoals reports whether an add-sub-goals task makes sense
// for the goal.
func CanGenerateAddSubGoals(g *content.Goal) bool {
	return g != nil && !g.IsComplete && len(g.SubGoals) == 0
}

// GenerateAddSubGoals builds a task asking the learner to break the goal
// into sub-goals.
func GenerateAddSubGoals(g *content.Goal) *task.Task {
	return &task.Task{
		UID:             newUID(task.TypeAddSubGoals, g.UID),
		Type:            task.TypeAddSubGoals,
		Language:        g.Language,
		Prompt:          fmt.Sprintf("Break the goal %q into smaller sub-goals", g.Title),
		AssociatedGoals: []string{g.UID},
	}
}

// CanGenerateAddVocabToGoal reports whether the goal can still collect vocab.
func CanGenerateAddVocabToGoal(g *content.Goal) bool {
	return g != nil && !g.IsComplete
}

// GenerateAddVocabToGoal builds a task asking the learner to attach useful
// vocabulary to the goal.
func GenerateAddVocabToGoal(g *content.Goal) *task.Task {
	return &task.Task{
		UID:             newUID(task.TypeAddVocabToGoal, g.UID),
		Type:            task.TypeAddVocabToGoal,
		Language:        g.Language,
		Prompt:          fmt.Sprintf("Which words or sentences would help with %q? Add them", g.Title),
		AssociatedGoals: []string{g.UID},
	}
}

// CanGenerateAddMilestones reports whether the goal still lacks milestones.
func CanGenerateAddMilestones(g *content.Goal) bool {
	return g != nil && !g.IsComplete && len(g.Milestones) == 0
}

// GenerateAddMilestones builds a task asking the learner to define
// checkpoints for the goal.
func GenerateAddMilestones(g *content.Goal) *task.Task {
	return &task.Task{
		UID:             newUID(task.TypeAddMilestones, g.UID),
		Type:            task.TypeAddMilestones,
		Language:        g.Language,
		Prompt:          fmt.Sprintf("Define milestones for %q so progress is visible", g.Title),
		AssociatedGoals: []string{g.UID},
	}
}

// GoalTask picks an eligible goal-maintenance generator at random and runs
// it. Returns nil when nothing applies.
func GoalTask(g *content.Goal, rng *rand.Rand) *task.Task {
	type gen struct {
		can func(*content.Goal) bool
		run func(*content.Goal) *task.Task
	}
	gens := []gen{
		{CanGenerateAddSubGoals, GenerateAddSubGoals},
		{CanGenerateAddVocabToGoal, GenerateAddVocabToGoal},
		{CanGenerateAddMilestones, GenerateAddMilestones},
	}

	var eligible []gen
	for _, g2 := range gens {
		if g2.can(g) {
			eligible = append(eligible, g2)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	return eligible[rng.Intn(len(eligible))].run(g)
}

// CanGenerateExtractKnowledge reports whether the resource still has
// knowledge left to mine.
func CanGenerateExtractKnowledge(r *content.Resource) bool {
	return r != nil && !r.FinishedExtracting
}

// GenerateExtractKnowledge builds a task asking the learner to pull new
// units out of the resource.
func GenerateExtractKnowledge(r *content.Resource) *task.Task {
	return &task.Task{
		UID:                 newUID(task.TypeExtractFromResource, r.UID),
		Type:                task.TypeExtractFromResource,
		Language:            r.Language,
		Prompt:              fmt.Sprintf("Go through %q and extract new words and sentences", r.Title),
		AssociatedResources: []string{r.UID},
	}
}

// GenerateConsumeImmersion builds a task asking the learner to consume the
// immersion content.
func GenerateConsumeImmersion(c *content.ImmersionContent) *task.Task {
	return &task.Task{
		UID:                 newUID(task.TypeConsumeImmersionContent, c.UID),
		Type:                task.TypeConsumeImmersionContent,
		Language:            c.Language,
		Prompt:              fmt.Sprintf("Watch, read or listen to %q", c.Title),
		AssociatedImmersion: []string{c.UID},
	}
}
