package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Generate one lesson and print its tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		l, err := a.Lessons.GenerateLesson(ctx)
		if err != nil {
			return fmt.Errorf("generate lesson: %w", err)
		}
		if l.IsEmpty() {
			fmt.Println("Nothing to practice right now.")
			return nil
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(l.Tasks())
		}

		for i, t := range l.Tasks() {
			fmt.Printf("%2d. [%s] %s\n", i+1, t.Type, t.Prompt)
			if t.Question != "" {
				fmt.Printf("      Q: %s\n", t.Question)
			}
			for _, opt := range t.Options {
				fmt.Printf("      - %s\n", opt)
			}
		}
		return nil
	},
}

func init() {
	lessonCmd.Flags().Bool("json", false, "Print tasks as JSON")
}
