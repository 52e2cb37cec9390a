package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexio/internal/vocab"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics per language",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		codes, err := a.ActiveLanguageCodes(ctx)
		if err != nil {
			return err
		}
		if len(codes) == 0 {
			fmt.Println("No active target languages.")
			return nil
		}

		now := time.Now()
		for _, code := range codes {
			var unseen, seen, due, masterySum int
			for offset := 0; ; offset += 500 {
				units, err := a.Store.VocabRepo().List(ctx, code, 500, offset)
				if err != nil {
					return err
				}
				if len(units) == 0 {
					break
				}
				for _, v := range units {
					switch {
					case vocab.IsUnseen(v):
						unseen++
					default:
						seen++
						if vocab.IsDue(v, now) {
							due++
						}
						masterySum += vocab.Mastery(v, now)
					}
				}
			}

			fmt.Printf("%s: %d units (%d seen, %d unseen), %d due", code, seen+unseen, seen, unseen, due)
			if seen > 0 {
				fmt.Printf(", avg mastery %d%%", masterySum/seen)
			}
			fmt.Println()

			lowest, err := a.Store.VocabRepo().LowestDueDate(ctx, []string{code})
			if err != nil {
				return err
			}
			if due == 0 && !lowest.IsZero() {
				fmt.Printf("  next review %s\n", lowest.Format("2006-01-02 15:04"))
			}
		}
		return nil
	},
}
