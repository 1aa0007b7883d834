package main

import (
	"encoding/json"
	"fmt"
	"io"

	"snapdev-task/internal/board"

	"github.com/spf13/cobra"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Read tasks from the database",
	}

	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks grouped by column",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			snap := a.board.Snapshot()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap.Columns)
			}
			printColumns(cmd.OutOrStdout(), snap.Columns)
			return nil
		},
	}
	list.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")
	cmd.AddCommand(list)
	return cmd
}

func printColumns(w io.Writer, cols []board.ColumnView) {
	for i, col := range cols {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", col.Name, len(col.Tasks))
		for _, t := range col.Tasks {
			fmt.Fprintf(w, "  [%s] %s  %s\n", t.Priority, t.Title, t.ID)
		}
	}
}
