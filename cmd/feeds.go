/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/seckatie/feedmarks/internal/core/db"
	"github.com/seckatie/feedmarks/internal/core/service"
	"github.com/seckatie/feedmarks/internal/opml"
)

var feedsCmd = &cobra.Command{
	Use:     "feeds",
	Aliases: []string{"feed"},
	Short:   "Manage RSS feed subscriptions from the command line",
}

var feedsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all feeds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *db.DB) error {
			feeds, err := service.NewFeedService(database).List(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), len(feeds), func(i int) (int64, string, string) {
				return feeds[i].ID, feeds[i].Name, feeds[i].URL
			})
		})
	},
}

var feedsAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Subscribe to a feed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *db.DB) error {
			f, err := service.NewFeedService(database).Create(cmd.Context(), args[0], args[1])
			if err != nil {
				if errors.Is(err, service.ErrConflict) {
					return errors.New("RSS Feed already exists")
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added feed %d: %s\n", f.ID, f.URL)
			return nil
		})
	},
}

var feedsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a feed by id",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withDB(func(database *db.DB) error {
			if err := service.NewFeedService(database).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "RSS Feed deleted")
			return nil
		})
	},
}

var feedsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all feeds as OPML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return fmt.Errorf("failed to read --output: %w", err)
		}
		return withDB(func(database *db.DB) error {
			data, err := service.NewFeedService(database).ExportOPML(cmd.Context())
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			slog.Info("exported feeds", "path", output)
			return nil
		})
	},
}

var feedsImportCmd = &cobra.Command{
	Use:   "import <file.opml>",
	Short: "Subscribe to every feed in an OPML file",
	Long: `Subscribe to every feed listed in an OPML file. Feeds whose URL is
already stored, and entries with an invalid name or URL, are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		doc, err := opml.Parse(f)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		return withDB(func(database *db.DB) error {
			svc := service.NewFeedService(database)
			var imported, skipped int
			for _, o := range doc.Feeds() {
				name := o.Title
				if name == "" {
					name = o.Text
				}
				if name == "" {
					name = o.XMLURL
				}

				_, err := svc.Create(cmd.Context(), name, o.XMLURL)
				switch {
				case err == nil:
					imported++
				case errors.Is(err, service.ErrConflict):
					skipped++
					slog.Debug("feed already exists", "url", o.XMLURL)
				case errors.Is(err, service.ErrValidation):
					skipped++
					slog.Warn("skipping invalid feed", "url", o.XMLURL, "error", err)
				default:
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d feed(s), skipped %d\n", imported, skipped)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(feedsCmd)
	feedsCmd.AddCommand(feedsListCmd, feedsAddCmd, feedsRmCmd, feedsExportCmd, feedsImportCmd)

	feedsExportCmd.Flags().StringP("output", "o", "", "Write OPML to this file instead of stdout")
}
