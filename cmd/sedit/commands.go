package sedit

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/sedit/pkg/config"
	"github.com/arthur-debert/sedit/pkg/engine"
	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/filesystem"
	"github.com/arthur-debert/sedit/pkg/plan"
	"github.com/arthur-debert/sedit/pkg/style"
	"github.com/arthur-debert/sedit/pkg/transform"
	"github.com/arthur-debert/sedit/pkg/types"
)

// cliEnv bundles the effective configuration, the engine built from it,
// and the renderer resolved for stdout
type cliEnv struct {
	cfg      *config.Settings
	eng      *engine.Engine
	renderer style.Renderer
}

func newEnv(cmd *cobra.Command) (*cliEnv, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	flags := cmd.Root().PersistentFlags()

	colorMode := cfg.Output.Color
	if flags.Changed("color") {
		colorMode, _ = flags.GetString("color")
	}
	format, err := style.ParseFormat(colorMode)
	if err != nil {
		return nil, err
	}

	eng := engine.New(engine.Options{
		TransformTimeout: cfg.Engine.Timeout(),
		MaxParallel:      cfg.Engine.MaxParallel,
	})

	return &cliEnv{
		cfg:      cfg,
		eng:      eng,
		renderer: style.NewRenderer(style.Resolve(format, os.Stdout)),
	}, nil
}

// strategy resolves the backup strategy from the flag, falling back to
// the configured default
func (env *cliEnv) strategy(cmd *cobra.Command) (types.BackupStrategy, error) {
	flags := cmd.Root().PersistentFlags()
	if !flags.Changed("backup-strategy") {
		return env.cfg.Backup.BackupStrategy(), nil
	}

	raw, _ := flags.GetString("backup-strategy")
	switch types.BackupStrategy(raw) {
	case types.StrategyCanonical, types.StrategyTimestamped:
		return types.BackupStrategy(raw), nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown backup strategy: %s", raw)
	}
}

// operation assembles an edit operation for target from the global flags
// and the configuration
func (env *cliEnv) operation(cmd *cobra.Command, target string, params types.Params) (types.EditOperation, error) {
	flags := cmd.Root().PersistentFlags()
	dryRun, _ := flags.GetBool("dry-run")
	noBackup, _ := flags.GetBool("no-backup")
	reportDiff, _ := flags.GetBool("diff")

	strategy, err := env.strategy(cmd)
	if err != nil {
		return types.EditOperation{}, err
	}

	return types.EditOperation{
		Mode:         params.Mode(),
		Target:       target,
		Params:       params,
		CreateBackup: env.cfg.Backup.Enabled && !noBackup,
		Strategy:     strategy,
		DryRun:       dryRun,
		ReportDiff:   reportDiff,
	}, nil
}

// isGlob reports whether the file argument should be expanded as a glob
func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// runEdit validates params once, applies them to every file argument, and
// renders the outcomes. Glob arguments fan out through the engine.
func runEdit(cmd *cobra.Command, params types.Params, files []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}

	if v := engine.Validate(params.Mode(), params); !v.Valid {
		fmt.Println(env.renderer.RenderValidation(params.Mode(), v))
		return errValidationFailed
	}

	ctx := cmd.Context()
	var results []types.EditResult
	for _, file := range files {
		op, err := env.operation(cmd, file, params)
		if err != nil {
			return err
		}

		if isGlob(file) {
			batch, err := env.eng.ApplyGlob(ctx, file, op)
			if err != nil {
				return err
			}
			results = append(results, batch...)
			continue
		}

		results = append(results, env.eng.Apply(ctx, op))
	}

	if printResults(env.renderer, results) > 0 {
		return errEditsFailed
	}
	return nil
}

func newSubCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "sub <expression> <file...>",
		Short:   MsgSubShort,
		Long:    MsgSubLong,
		Example: MsgSubExample,
		GroupID: "edit",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, types.SubstituteParams{Expression: args[0]}, args[1:])
		},
	}
}

func newLinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "lines <action> <start>[,<end>] [text] <file...>",
		Short:   MsgLinesShort,
		Long:    MsgLinesLong,
		Example: MsgLinesExample,
		GroupID: "edit",
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, files, err := parseLinesArgs(args)
			if err != nil {
				return err
			}
			return runEdit(cmd, params, files)
		},
	}
}

// parseLinesArgs splits "action range [text] files..." into parameters and
// file arguments. Only replace and insert take a text argument.
func parseLinesArgs(args []string) (types.LineEditParams, []string, error) {
	params := types.LineEditParams{Action: types.LineAction(args[0])}

	start, end, err := parseRange(args[1])
	if err != nil {
		return params, nil, err
	}
	params.Start, params.End = start, end

	rest := args[2:]
	switch params.Action {
	case types.LineDelete:
	case types.LineReplace, types.LineInsert:
		if len(rest) < 2 {
			return params, nil, errors.Newf(errors.ErrInvalidInput,
				"%s needs a text argument before the file", params.Action)
		}
		params.Text = rest[0]
		rest = rest[1:]
	default:
		return params, nil, errors.Newf(errors.ErrInvalidInput,
			"unknown line action: %s (expected replace, delete, or insert)", args[0])
	}

	return params, rest, nil
}

// parseRange parses "N" or "N,M" into start and end. End stays zero for a
// single-line address.
func parseRange(s string) (int, int, error) {
	startStr, endStr, hasEnd := strings.Cut(s, ",")

	start, err := strconv.Atoi(startStr)
	if err != nil {
		return 0, 0, errors.Newf(errors.ErrInvalidInput, "bad line range %q", s)
	}
	if !hasEnd {
		return start, 0, nil
	}

	end, err := strconv.Atoi(endStr)
	if err != nil {
		return 0, 0, errors.Newf(errors.ErrInvalidInput, "bad line range %q", s)
	}
	return start, end, nil
}

func newColsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cols <expression> <file...>",
		Short:   MsgColsShort,
		Long:    MsgColsLong,
		Example: MsgColsExample,
		GroupID: "edit",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			separator, _ := cmd.Flags().GetString("separator")
			params := types.ColumnParams{
				Expression: args[0],
				Separator:  separator,
			}
			return runEdit(cmd, params, args[1:])
		},
	}

	cmd.Flags().StringP("separator", "F", "", MsgFlagSeparator)

	return cmd
}

func newReplaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "replace <find> <replacement> <file...>",
		Short:   MsgReplaceShort,
		Long:    MsgReplaceLong,
		Example: MsgReplaceExample,
		GroupID: "edit",
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			params := types.LiteralParams{
				Find:       args[0],
				Replace:    args[1],
				ReplaceAll: all,
			}
			return runEdit(cmd, params, args[2:])
		},
	}

	cmd.Flags().Bool("all", false, MsgFlagAll)

	return cmd
}

func newScriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "script <script.lua> <file...>",
		Short:   MsgScriptShort,
		Long:    MsgScriptLong,
		Example: MsgScriptExample,
		GroupID: "edit",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return errors.MapOS(err, errors.ErrSourceNotFound, args[0])
			}
			return runEdit(cmd, types.ScriptParams{Source: string(source)}, args[1:])
		},
	}
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "plan <plan.yaml>",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		Example: MsgPlanExample,
		GroupID: "edit",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(cmd)
			if err != nil {
				return err
			}

			p, err := plan.Load(filesystem.NewOS(), args[0])
			if err != nil {
				return err
			}

			flags := cmd.Root().PersistentFlags()
			dryRun, _ := flags.GetBool("dry-run")
			noBackup, _ := flags.GetBool("no-backup")
			reportDiff, _ := flags.GetBool("diff")

			strategy, err := env.strategy(cmd)
			if err != nil {
				return err
			}

			runner := plan.NewRunner(env.eng)
			stepResults, runErr := runner.Run(cmd.Context(), p, plan.RunOptions{
				DryRun:     dryRun,
				ReportDiff: reportDiff,
				NoBackup:   noBackup || !env.cfg.Backup.Enabled,
				Strategy:   strategy,
			})

			failed := 0
			for _, step := range stepResults {
				fmt.Printf(MsgPlanStepFormat, step.Index+1, stepLabel(step.Step))
				failed += printResults(env.renderer, step.Results)
			}

			if runErr != nil {
				if failed > 0 {
					return errEditsFailed
				}
				return runErr
			}
			return nil
		},
	}
}

// stepLabel names a plan step for output
func stepLabel(step plan.Step) string {
	target := step.File
	if target == "" {
		target = step.Glob
	}
	return fmt.Sprintf("%s %s", step.Mode, target)
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate <mode> <args...>",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		Example: MsgValidateExample,
		GroupID: "edit",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(cmd)
			if err != nil {
				return err
			}

			mode, err := normalizeMode(args[0])
			if err != nil {
				return err
			}

			params, err := validateParams(cmd, mode, args[1:])
			if err != nil {
				return err
			}

			v := engine.Validate(mode, params)
			fmt.Println(env.renderer.RenderValidation(mode, v))
			if !v.Valid {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringP("separator", "F", "", MsgFlagSeparator)

	return cmd
}

// normalizeMode accepts both command spellings (sub, cols, replace) and
// canonical mode names
func normalizeMode(s string) (types.EditMode, error) {
	switch s {
	case "sub", string(types.ModeSubstitute):
		return types.ModeSubstitute, nil
	case string(types.ModeLines):
		return types.ModeLines, nil
	case "cols", string(types.ModeColumns):
		return types.ModeColumns, nil
	case "replace", string(types.ModeLiteral):
		return types.ModeLiteral, nil
	case string(types.ModeScript):
		return types.ModeScript, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput,
			"unknown mode: %s (expected one of %s)", s, strings.Join(transform.Modes(), ", "))
	}
}

// validateParams builds mode parameters from validate's positional
// arguments, mirroring the edit commands' shapes minus the file arguments
func validateParams(cmd *cobra.Command, mode types.EditMode, args []string) (types.Params, error) {
	switch mode {
	case types.ModeSubstitute:
		if len(args) != 1 {
			return nil, errors.New(errors.ErrInvalidInput, "substitute takes one expression argument")
		}
		return types.SubstituteParams{Expression: args[0]}, nil

	case types.ModeLines:
		if len(args) < 2 || len(args) > 3 {
			return nil, errors.New(errors.ErrInvalidInput, "lines takes an action, a range, and optional text")
		}
		params := types.LineEditParams{Action: types.LineAction(args[0])}
		start, end, err := parseRange(args[1])
		if err != nil {
			return nil, err
		}
		params.Start, params.End = start, end
		if len(args) == 3 {
			params.Text = args[2]
		}
		return params, nil

	case types.ModeColumns:
		if len(args) != 1 {
			return nil, errors.New(errors.ErrInvalidInput, "columns takes one expression argument")
		}
		separator, _ := cmd.Flags().GetString("separator")
		return types.ColumnParams{Expression: args[0], Separator: separator}, nil

	case types.ModeLiteral:
		if len(args) < 1 || len(args) > 2 {
			return nil, errors.New(errors.ErrInvalidInput, "literal takes a find and an optional replacement")
		}
		params := types.LiteralParams{Find: args[0]}
		if len(args) == 2 {
			params.Replace = args[1]
		}
		return params, nil

	case types.ModeScript:
		if len(args) != 1 {
			return nil, errors.New(errors.ErrInvalidInput, "script takes one script file argument")
		}
		source, err := os.ReadFile(args[0])
		if err != nil {
			return nil, errors.MapOS(err, errors.ErrSourceNotFound, args[0])
		}
		return types.ScriptParams{Source: string(source)}, nil
	}

	return nil, errors.Newf(errors.ErrInternal, "no parameter shape for mode %s", mode)
}
