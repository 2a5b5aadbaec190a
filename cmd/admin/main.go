// Package main provides admin management utilities for face2geek.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"face2geek/internal/config"
	"face2geek/internal/database"
	"face2geek/internal/featureflags"
	"face2geek/internal/repository"
	"face2geek/internal/seed"
	"face2geek/internal/service"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// connector opens the database the commands operate on. With autoSchema the
// schema is applied the same way the server applies it at startup.
type connector func(autoSchema bool) (*gorm.DB, *config.Config, error)

func connectFromConfig(autoSchema bool) (*gorm.DB, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	opts := database.ConnectOptions{ApplySchema: autoSchema && !cfg.IsProduction()}
	db, err := database.ConnectWithOptions(cfg, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return db, cfg, nil
}

func main() {
	if err := newRootCmd(connectFromConfig).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(connect connector) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "admin",
		Short:         "Maintenance commands for the face2geek engagement store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newSeedBadgesCmd(connect),
		newEvaluateBadgesCmd(connect),
		newLeaderboardCmd(connect),
		newMigrateCmd(connect),
		newAPICompatCmd(),
	)
	return rootCmd
}

func newSeedBadgesCmd(connect connector) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-badges",
		Short: "Insert the missing entries of the default badge catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, err := connect(true)
			if err != nil {
				return err
			}
			added, err := seed.Badges(cmd.Context(), db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "badge catalog ensured, %d added\n", added)
			return nil
		},
	}
}

func newEvaluateBadgesCmd(connect connector) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate-badges [user_id]",
		Short: "Re-run badge evaluation for a user",
		Long:  `Awards every catalog badge whose threshold the user now meets. Already owned badges are skipped.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil || userID == 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			db, cfg, err := connect(true)
			if err != nil {
				return err
			}
			badges := service.NewBadgeService(repository.NewBadgeRepository(db), featureflags.NewManager(cfg.FeatureFlags))
			awarded, err := badges.Evaluate(cmd.Context(), uint(userID))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(awarded) == 0 {
				fmt.Fprintln(out, "no new badges")
				return nil
			}
			for _, b := range awarded {
				fmt.Fprintf(out, "awarded %s\n", b.Name)
			}
			return nil
		},
	}
}

func newLeaderboardCmd(connect connector) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the current leaderboard computed from the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, err := connect(true)
			if err != nil {
				return err
			}
			return printLeaderboard(cmd.Context(), cmd.OutOrStdout(), repository.NewLeaderboardRepository(db), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of entries")
	return cmd
}

func printLeaderboard(ctx context.Context, w io.Writer, repo repository.LeaderboardRepository, limit int) error {
	entries, err := repo.Top(ctx, limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tUSER\tSNIPPETS\tLIKES\tAVG\tVIEWS\tSCORE")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.2f\t%d\t%d\n",
			i+1, e.Username, e.SnippetCount, e.TotalLikes, e.AvgRating, e.TotalViews, e.Score)
	}
	return tw.Flush()
}
