package cli

import (
	"github.com/spf13/cobra"
	"github.com/specialistvlad/hrggo/internal/app"
)

func newConvertCommand(a func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a document between formats, chosen by file extension.",
		Long: `Convert reads IN and writes OUT. Supported extensions are .yaml, .yml and
.hcl, each optionally followed by .zst for zstd compression.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return failed(a().Convert(cmd.Context(), args[0], args[1]))
		},
	}
}

func newValidateCommand(a func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATTERN...",
		Short: "Load every document matching the glob patterns and report failures.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return failed(a().Validate(cmd.Context(), args...))
		},
	}
}

func newStatsCommand(a func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE",
		Short: "Print node, entity and relation counts of a document.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a().Stats(cmd.Context(), args[0])
			return failed(err)
		},
	}
}

func newDigestCommand(a func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "digest FILE...",
		Short: "Print the structural digest of each document.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if _, err := a().Digest(cmd.Context(), path); err != nil {
					return failed(err)
				}
			}
			return nil
		},
	}
}

func newArchiveCommand(a func() *app.App) *cobra.Command {
	archive := &cobra.Command{
		Use:   "archive",
		Short: "Store and retrieve documents in the archive database.",
	}
	archive.AddCommand(
		&cobra.Command{
			Use:   "put NAME FILE",
			Short: "Store FILE and tag it NAME.",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := a().ArchivePut(cmd.Context(), args[0], args[1])
				return failed(err)
			},
		},
		&cobra.Command{
			Use:   "get REF OUT",
			Short: "Write the document named by a tag or digest prefix to OUT.",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := a().ArchiveGet(cmd.Context(), args[0], args[1])
				return failed(err)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List tagged documents.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := a().ArchiveList(cmd.Context())
				return failed(err)
			},
		},
	)
	return archive
}
