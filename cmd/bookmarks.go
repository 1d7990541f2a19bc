/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seckatie/feedmarks/internal/core/db"
	"github.com/seckatie/feedmarks/internal/core/service"
)

var bookmarksCmd = &cobra.Command{
	Use:     "bookmarks",
	Aliases: []string{"bookmark", "bm"},
	Short:   "Manage bookmarks from the command line",
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all bookmarks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *db.DB) error {
			bookmarks, err := service.NewBookmarkService(database).List(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), len(bookmarks), func(i int) (int64, string, string) {
				return bookmarks[i].ID, bookmarks[i].Name, bookmarks[i].URL
			})
		})
	},
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a bookmark",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *db.DB) error {
			b, err := service.NewBookmarkService(database).Create(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added bookmark %d: %s\n", b.ID, b.URL)
			return nil
		})
	},
}

var bookmarksRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a bookmark by id",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withDB(func(database *db.DB) error {
			if err := service.NewBookmarkService(database).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Bookmark deleted")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(bookmarksCmd)
	bookmarksCmd.AddCommand(bookmarksListCmd, bookmarksAddCmd, bookmarksRmCmd)
}

// withDB opens and migrates the configured database for the duration of fn.
func withDB(fn func(database *db.DB) error) error {
	database, err := initDB(appConfig.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()
	return fn(database)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// printRecords writes an aligned ID/NAME/URL table.
func printRecords(w io.Writer, n int, row func(i int) (int64, string, string)) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tURL")
	for i := 0; i < n; i++ {
		id, name, url := row(i)
		fmt.Fprintf(tw, "%d\t%s\t%s\n", id, name, url)
	}
	return tw.Flush()
}
