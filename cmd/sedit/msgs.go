package sedit

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort           = "A backup-aware file editor"
	MsgSubShort            = "Apply a substitution expression to files"
	MsgLinesShort          = "Replace, delete, or insert lines by number"
	MsgColsShort           = "Rearrange columns in delimited files"
	MsgReplaceShort        = "Replace literal text in files"
	MsgScriptShort         = "Transform files with a Lua script"
	MsgPlanShort           = "Run the edit steps of a plan file"
	MsgBackupsShort        = "Inspect, create, and restore backups"
	MsgBackupsListShort    = "List backups in a directory"
	MsgBackupsCreateShort  = "Snapshot a file without editing it"
	MsgBackupsRestoreShort = "Restore a file from a backup"
	MsgValidateShort       = "Check mode parameters without touching files"
	MsgGenConfigShort      = "Generate the default configuration"
	MsgVersionShort        = "Print version information"
	MsgTopicsShort         = "Display available documentation topics"
	MsgTopicsLong          = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort     = "Generate shell completion script"

	// Status messages
	MsgEditSummary    = "%d of %d files edited\n"
	MsgPlanStepFormat = "\nstep %d: %s\n"
	MsgBackupCreated  = "backup created: %s (%d B)\n"
	MsgBackupRestored = "restored %s from %s\n"
	MsgConfigWritten  = "wrote %s\n"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without writing them"
	MsgFlagNoBackup  = "Skip the backup snapshot for this run"
	MsgFlagStrategy  = "Backup naming scheme (canonical, timestamped)"
	MsgFlagDiff      = "Report a line diff for every edit"
	MsgFlagColor     = "Color output (auto, always, never)"
	MsgFlagSeparator = "Column separator (default: any run of whitespace)"
	MsgFlagAll       = "Replace every occurrence instead of the first"
	MsgFlagTarget    = "Restore to this path instead of the backup's source"
	MsgFlagWrite     = "Write config to the user config file instead of stdout"

	// genconfig keeps its long text inline, the command is small
	MsgGenConfigLong    = "Output the effective configuration as TOML.\n\nWithout -w the config prints to stdout. With -w it is written to the\nuser config file, creating the directory if needed."
	MsgGenConfigExample = `  sedit genconfig            # print to stdout
  sedit genconfig -w         # write the user config file`
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/sub-long.txt
	msgSubLongRaw string
	MsgSubLong    = strings.TrimSpace(msgSubLongRaw)

	//go:embed msgs/sub-example.txt
	msgSubExampleRaw string
	MsgSubExample    = strings.TrimSpace(msgSubExampleRaw)

	//go:embed msgs/lines-long.txt
	msgLinesLongRaw string
	MsgLinesLong    = strings.TrimSpace(msgLinesLongRaw)

	//go:embed msgs/lines-example.txt
	msgLinesExampleRaw string
	MsgLinesExample    = strings.TrimSpace(msgLinesExampleRaw)

	//go:embed msgs/cols-long.txt
	msgColsLongRaw string
	MsgColsLong    = strings.TrimSpace(msgColsLongRaw)

	//go:embed msgs/cols-example.txt
	msgColsExampleRaw string
	MsgColsExample    = strings.TrimSpace(msgColsExampleRaw)

	//go:embed msgs/replace-long.txt
	msgReplaceLongRaw string
	MsgReplaceLong    = strings.TrimSpace(msgReplaceLongRaw)

	//go:embed msgs/replace-example.txt
	msgReplaceExampleRaw string
	MsgReplaceExample    = strings.TrimSpace(msgReplaceExampleRaw)

	//go:embed msgs/script-long.txt
	msgScriptLongRaw string
	MsgScriptLong    = strings.TrimSpace(msgScriptLongRaw)

	//go:embed msgs/script-example.txt
	msgScriptExampleRaw string
	MsgScriptExample    = strings.TrimSpace(msgScriptExampleRaw)

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/plan-example.txt
	msgPlanExampleRaw string
	MsgPlanExample    = strings.TrimSpace(msgPlanExampleRaw)

	//go:embed msgs/validate-long.txt
	msgValidateLongRaw string
	MsgValidateLong    = strings.TrimSpace(msgValidateLongRaw)

	//go:embed msgs/validate-example.txt
	msgValidateExampleRaw string
	MsgValidateExample    = strings.TrimSpace(msgValidateExampleRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
