package topics

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"
)

// Initialize installs the topic-aware help command on rootCmd with
// default options.
func Initialize(rootCmd *cobra.Command, fsys fs.FS) error {
	return InitializeWithOptions(rootCmd, fsys, Options{})
}

// InitializeWithOptions scans fsys for topics and replaces rootCmd's
// help command and help function with versions that know about them.
// Requests matching neither a topic nor the "topics" keyword fall
// through to Cobra's regular help.
func InitializeWithOptions(rootCmd *cobra.Command, fsys fs.FS, opts Options) error {
	m := NewWithOptions(fsys, opts)
	if err := m.scanTopics(); err != nil {
		return fmt.Errorf("failed to scan topics: %w", err)
	}

	originalHelp := rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: fmt.Sprintf(`Help shows usage for any command and documentation for any topic.

Run "%[1]s help topics" for the list of available topics.`, rootCmd.Name()),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			switch {
			case len(args) == 0:
				originalHelp(rootCmd, nil)
			case args[0] == "topics":
				fmt.Print(m.topicList(rootCmd.Name()))
			default:
				if t, ok := m.Lookup(args[0]); ok {
					fmt.Print(m.render(t))
					return
				}
				originalHelp(rootCmd, args)
			}
		},
	}

	// Cobra installs its own help command on first Execute; replace it
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.AddCommand(helpCmd)

	// The --help flag goes through the help function, not the command
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if t, ok := m.Lookup(args[0]); ok {
				fmt.Print(m.render(t))
				return
			}
		}
		originalHelp(cmd, args)
	})

	return nil
}

// topicList builds the "help topics" listing, grouping option topics
// separately from general ones.
func (m *Manager) topicList(appName string) string {
	names := m.Names()
	if len(names) == 0 {
		return "No help topics available.\n"
	}

	var general, options []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	if len(general) > 0 {
		b.WriteString("\nGeneral topics:\n")
		for _, name := range general {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		b.WriteString("\nOption topics:\n")
		for _, name := range options {
			fmt.Fprintf(&b, "  --%s\n", name)
		}
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", appName)
	return b.String()
}
