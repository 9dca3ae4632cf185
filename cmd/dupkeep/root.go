package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dupkeep/internal/version"
	"github.com/arthur-debert/dupkeep/pkg/config"
	"github.com/arthur-debert/dupkeep/pkg/filesystem"
	"github.com/arthur-debert/dupkeep/pkg/logging"
	"github.com/arthur-debert/dupkeep/pkg/scan"
	"github.com/arthur-debert/dupkeep/pkg/style"
)

var (
	verbosity      int
	flagFilesOnly  bool
	flagFollow     bool
	flagExclude    string
	flagList       string
	flagStore      bool
	flagAccounting bool
	flagOverwrite  bool
	flagDelete     bool
	flagCopyTo     string
	flagMoveTo     string

	rootCmd = &cobra.Command{
		Use:   "dupkeep [flags] sourcedir...",
		Short: "Find duplicate files by content fingerprint",
		Long: `dupkeep scans one or more source directories, fingerprints every file
by content, and reports duplicates. It can keep a persisted list of
previously-seen content across runs, delete duplicates, and copy or
move newly-discovered files to a destination directory without ever
clobbering an existing file.`,
		Args: cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:          runScan,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Fatal setup errors print a message
// plus usage and surface as a non-zero exit.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.Error("%v", err))
		fmt.Fprint(os.Stderr, rootCmd.UsageString())
		return err
	}
	return nil
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&flagFilesOnly, "files-only", "f", false, "Do not recurse into directories below the first level")
	flags.CountVarP(&verbosity, "verbose", "v", "Per-file tag output (-vv adds debug logging)")
	flags.StringVarP(&flagList, "list", "l", "", "Persisted list file of previously-seen content")
	flags.BoolVarP(&flagStore, "store", "s", false, "Append newly-discovered records to the list")
	flags.BoolVarP(&flagFollow, "follow-symlinks", "b", false, "Follow symbolic links instead of skipping them")
	flags.StringVarP(&flagExclude, "exclude", "e", "", "Regex; matching files and directory subtrees are skipped")
	flags.BoolVarP(&flagAccounting, "accounting", "a", false, "Report stored records missing from this scan")
	flags.BoolVarP(&flagOverwrite, "overwrite", "o", false, "Allow copy/move to clobber existing destination files")
	flags.BoolVarP(&flagDelete, "delete", "d", false, "Delete duplicate files")
	flags.StringVarP(&flagCopyTo, "copy-to", "c", "", "Copy new files into this directory")
	flags.StringVarP(&flagMoveTo, "move-to", "m", "", "Move new files into this directory")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(genconfigCmd)
	rootCmd.AddCommand(topicsCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	// Flags beat config file and environment, but only when given.
	flags := cmd.Flags()
	if flags.Changed("files-only") {
		settings.FilesOnly = flagFilesOnly
	}
	if flags.Changed("follow-symlinks") {
		settings.FollowSymlinks = flagFollow
	}
	if flags.Changed("exclude") {
		settings.Exclude = flagExclude
	}
	if flags.Changed("list") {
		settings.List = flagList
	}
	if flags.Changed("store") {
		settings.Store = flagStore
	}
	if flags.Changed("accounting") {
		settings.Accounting = flagAccounting
	}
	if flags.Changed("overwrite") {
		settings.Overwrite = flagOverwrite
	}
	if flags.Changed("delete") {
		settings.Delete = flagDelete
	}
	if flags.Changed("copy-to") {
		settings.CopyTo = flagCopyTo
	}
	if flags.Changed("move-to") {
		settings.MoveTo = flagMoveTo
	}
	if verbosity > 0 {
		settings.Verbose = true
	}

	opts, err := settings.Options()
	if err != nil {
		return err
	}

	runner := scan.New(filesystem.NewOS(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return runner.Run(args)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dupkeep version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:                   "completion [bash|zsh|fish|powershell]",
	Short:                 "Generate shell completion script",
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate bash completion")
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate zsh completion")
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
				log.Error().Err(err).Msg("Failed to generate fish completion")
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate powershell completion")
			}
		}
	},
}

var genconfigCmd = &cobra.Command{
	Use:   "genconfig",
	Short: "Print the default configuration as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.GenerateDefault()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}
