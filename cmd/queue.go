package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexio/internal/preload"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Run the practice queue and pop tasks",
	Long:  "Initializes the preload pipeline, then consumes and completes tasks one after another, scoring each as doable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		count, _ := cmd.Flags().GetInt("count")

		m, err := a.BuildQueue(ctx)
		if err != nil {
			return fmt.Errorf("build queue: %w", err)
		}

		m.Initialize(ctx)
		for i := 0; i < count; i++ {
			switch m.Status() {
			case preload.StatusTask:
				t := m.Current()
				fmt.Printf("%2d. [%s] %s\n", i+1, t.Type, t.Prompt)
				m.CompleteCurrentTask(ctx)
			case preload.StatusEmpty:
				fmt.Println(m.Message())
				return nil
			case preload.StatusError:
				return fmt.Errorf("practice queue: %s", m.Message())
			default:
				return nil
			}
		}
		return nil
	},
}

func init() {
	queueCmd.Flags().Int("count", 10, "How many tasks to pop")
}
