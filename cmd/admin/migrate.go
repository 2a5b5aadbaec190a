package main

import (
	"fmt"
	"text/tabwriter"

	"face2geek/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd(connect connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Inspect or apply the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Create missing tables, columns and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, err := connect(false)
			if err != nil {
				return err
			}
			if err := database.ApplySchema(cmd.Context(), db); err != nil {
				return fmt.Errorf("schema apply failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "List managed tables and whether they exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, err := connect(false)
			if err != nil {
				return err
			}
			st, err := database.GetSchemaStatus(cmd.Context(), db)
			if err != nil {
				return fmt.Errorf("schema status failed: %w", err)
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TABLE\tSTATE")
			for _, t := range st.Tables {
				state := "ok"
				if !t.Exists {
					state = "pending"
				}
				fmt.Fprintf(tw, "%s\t%s\n", t.Table, state)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "dialect=%s tables=%d pending=%d\n", st.Dialect, len(st.Tables), len(st.Pending()))
			return nil
		},
	}

	cmd.AddCommand(up, status)
	return cmd
}
