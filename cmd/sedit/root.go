package sedit

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/sedit/internal/version"
	"github.com/arthur-debert/sedit/pkg/cobrax/topics"
	"github.com/arthur-debert/sedit/pkg/logging"
	"github.com/arthur-debert/sedit/pkg/style"
)

//go:embed topics/*.md
var topicsFS embed.FS

// Sentinel errors for exit-code classification. Commands that already
// rendered their outcome return these so Main does not print them again.
var (
	errEditsFailed      = errors.New("one or more edits failed")
	errValidationFailed = errors.New("validation failed")
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "sedit",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand given, show help but signal incorrect usage
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().Bool("dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().Bool("no-backup", false, MsgFlagNoBackup)
	rootCmd.PersistentFlags().String("backup-strategy", "", MsgFlagStrategy)
	rootCmd.PersistentFlags().Bool("diff", false, MsgFlagDiff)
	rootCmd.PersistentFlags().String("color", "auto", MsgFlagColor)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "edit",
		Title: "EDIT COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "backup",
		Title: "BACKUPS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newSubCmd())
	rootCmd.AddCommand(newLinesCmd())
	rootCmd.AddCommand(newColsCmd())
	rootCmd.AddCommand(newReplaceCmd())
	rootCmd.AddCommand(newScriptCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newBackupsCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help over the embedded docs
	if docs, err := fs.Sub(topicsFS, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".txt", ".md"},
			Renderer:   topics.NewGlamourRenderer(),
		}
		_ = topics.InitializeWithOptions(rootCmd, docs, opts)
	}

	return rootCmd
}

// Main runs the CLI and returns the process exit code: 0 when every
// operation succeeded, 1 when at least one edit failed, 2 for usage,
// validation, and configuration errors.
func Main() int {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	if errors.Is(err, errEditsFailed) {
		return 1
	}
	if !errors.Is(err, errValidationFailed) {
		renderer := style.NewRenderer(style.Resolve(style.FormatAuto, os.Stderr))
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
	}
	return 2
}
