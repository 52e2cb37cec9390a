package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexio/internal/vocab"
)

var scoreCmd = &cobra.Command{
	Use:   "score <vocab-uid> <again|hard|doable|easy>",
	Short: "Record a practice rating for a unit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating := vocab.Rating(args[1])
		switch rating {
		case vocab.RatingAgain, vocab.RatingHard, vocab.RatingDoable, vocab.RatingEasy:
		default:
			return fmt.Errorf("unknown rating %q", args[1])
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		requeue, _ := cmd.Flags().GetBool("requeue")
		opts := vocab.ScoreOptions{ImmediateRequeue: requeue}
		if err := a.Vocab.Score(ctx, args[0], rating, opts); err != nil {
			return fmt.Errorf("score %s: %w", args[0], err)
		}

		v, err := a.Store.VocabRepo().GetByUID(ctx, args[0])
		if err != nil || v == nil {
			return err
		}
		fmt.Printf("%s: level %d, streak %d, due %s\n",
			v.Content, v.Progress.Level, v.Progress.Streak, v.Progress.Due.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	scoreCmd.Flags().Bool("requeue", false, "On a failing rating, make the unit due again immediately")
}
