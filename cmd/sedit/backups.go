package sedit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/sedit/pkg/backup"
	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/filesystem"
)

func newBackupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backups",
		Short:   MsgBackupsShort,
		GroupID: "backup",
	}

	cmd.AddCommand(newBackupsListCmd())
	cmd.AddCommand(newBackupsCreateCmd())
	cmd.AddCommand(newBackupsRestoreCmd())

	return cmd
}

func newBackupsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: MsgBackupsListShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(cmd)
			if err != nil {
				return err
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			store := backup.NewStore(filesystem.NewOS())
			records, err := store.List(dir)
			if err != nil {
				return err
			}

			fmt.Println(env.renderer.RenderBackups(records))
			return nil
		},
	}
}

func newBackupsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <file>",
		Short: MsgBackupsCreateShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(cmd)
			if err != nil {
				return err
			}

			strategy, err := env.strategy(cmd)
			if err != nil {
				return err
			}

			store := backup.NewStore(filesystem.NewOS())
			record, err := store.Snapshot(args[0], strategy)
			if err != nil {
				fmt.Println(env.renderer.RenderError(err))
				return errEditsFailed
			}

			fmt.Printf(MsgBackupCreated, record.BackupPath, record.SizeBytes)
			return nil
		},
	}
}

func newBackupsRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <backup>",
		Short: MsgBackupsRestoreShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(cmd)
			if err != nil {
				return err
			}

			backupPath := args[0]
			target, _ := cmd.Flags().GetString("target")
			if target == "" {
				source, ok := backup.Source(backupPath)
				if !ok {
					return errors.Newf(errors.ErrInvalidInput,
						"cannot derive a source path from %s, use --target", backupPath)
				}
				target = source
			}

			store := backup.NewStore(filesystem.NewOS())
			if err := store.Restore(backupPath, target); err != nil {
				fmt.Println(env.renderer.RenderError(err))
				return errEditsFailed
			}

			fmt.Printf(MsgBackupRestored, target, backupPath)
			return nil
		},
	}

	cmd.Flags().String("target", "", MsgFlagTarget)

	return cmd
}
