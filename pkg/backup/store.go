// Package backup implements the snapshot store that protects files before
// they are edited. Every snapshot is verified by reading the written copy
// back and comparing bytes; a backup that cannot be verified is treated as
// no backup at all.
package backup

import (
	"bytes"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/filesystem"
	"github.com/arthur-debert/sedit/pkg/internal/hashutil"
	"github.com/arthur-debert/sedit/pkg/logging"
	"github.com/arthur-debert/sedit/pkg/types"
)

const (
	// Marker is the suffix every backup file carries
	Marker = ".bak"

	// timestampLayout is ISO 8601 with dashes in place of colons so the
	// stamp is safe in file names, at nanosecond precision
	timestampLayout = "2006-01-02T15-04-05.000000000"
)

// Store creates, lists, and restores backups through a types.FS.
type Store struct {
	fs     types.FS
	logger zerolog.Logger

	// mu serializes timestamped name probing so concurrent snapshots of
	// the same file in the same tick get distinct names
	mu sync.Mutex
}

// NewStore creates a backup store bound to the given filesystem
func NewStore(fsys types.FS) *Store {
	return &Store{
		fs:     fsys,
		logger: logging.GetLogger("backup.store"),
	}
}

// Snapshot copies path to its strategy-derived backup location and verifies
// the copy byte for byte. The returned record describes the verified backup.
// The source file is never modified.
func (s *Store) Snapshot(path string, strategy types.BackupStrategy) (types.BackupRecord, error) {
	var record types.BackupRecord

	info, err := s.fs.Stat(path)
	if err != nil {
		return record, errors.MapOS(err, errors.ErrSourceNotFound, path)
	}
	if info.IsDir() {
		return record, errors.Newf(errors.ErrInvalidInput, "cannot back up a directory: %s", path).
			WithDetail("path", path)
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return record, errors.MapOS(err, errors.ErrSourceNotFound, path)
	}

	createdAt := time.Now().UTC()
	backupPath, err := s.derivePath(path, strategy, createdAt)
	if err != nil {
		return record, err
	}

	if err := s.fs.WriteFile(backupPath, data, info.Mode().Perm()); err != nil {
		return record, errors.MapOS(err, errors.ErrWriteFailed, backupPath)
	}

	// Verification: the backup on disk must match what we read, otherwise
	// it is not a usable recovery point
	written, err := s.fs.ReadFile(backupPath)
	if err != nil {
		_ = s.fs.Remove(backupPath)
		return record, errors.Wrapf(err, errors.ErrBackupVerificationFailed,
			"cannot read back backup of %s", path).
			WithDetail("backupPath", backupPath)
	}
	if !bytes.Equal(data, written) {
		_ = s.fs.Remove(backupPath)
		return record, errors.Newf(errors.ErrBackupVerificationFailed,
			"backup content mismatch for %s", path).
			WithDetail("backupPath", backupPath).
			WithDetail("sourceSize", len(data)).
			WithDetail("backupSize", len(written))
	}

	record = types.BackupRecord{
		SourcePath: path,
		BackupPath: backupPath,
		Strategy:   strategy,
		CreatedAt:  createdAt,
		SizeBytes:  int64(len(data)),
	}

	s.logger.Debug().
		Str("source", path).
		Str("backup", backupPath).
		Str("strategy", string(strategy)).
		Int64("size", record.SizeBytes).
		Str("checksum", hashutil.ContentChecksum(data)).
		Msg("Snapshot verified")

	return record, nil
}

// Restore copies backupPath over targetPath atomically. The target's
// current state does not matter; it may be missing or corrupt.
func (s *Store) Restore(backupPath, targetPath string) error {
	data, err := s.fs.ReadFile(backupPath)
	if err != nil {
		return errors.MapOS(err, errors.ErrSourceNotFound, backupPath)
	}

	perm := defaultRestoreMode
	if info, err := s.fs.Stat(backupPath); err == nil {
		perm = info.Mode().Perm()
	}

	if err := filesystem.WriteFileAtomic(s.fs, targetPath, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrRestoreTargetUnwritable,
			"cannot write restore target %s", targetPath).
			WithDetail("backupPath", backupPath).
			WithDetail("targetPath", targetPath)
	}

	s.logger.Info().
		Str("backup", backupPath).
		Str("target", targetPath).
		Int("size", len(data)).
		Msg("Restored backup")

	return nil
}

const defaultRestoreMode fs.FileMode = 0o644

// derivePath maps a source path and strategy to the backup location.
// Canonical backups overwrite in place; timestamped backups probe for an
// unused name, appending a counter when two snapshots land in the same
// nanosecond.
func (s *Store) derivePath(path string, strategy types.BackupStrategy, createdAt time.Time) (string, error) {
	switch strategy {
	case types.StrategyCanonical:
		return path + Marker, nil

	case types.StrategyTimestamped:
		s.mu.Lock()
		defer s.mu.Unlock()

		stamp := createdAt.Format(timestampLayout)
		candidate := fmt.Sprintf("%s.%s%s", path, stamp, Marker)
		for n := 1; ; n++ {
			if _, err := s.fs.Stat(candidate); err != nil {
				return candidate, nil
			}
			candidate = fmt.Sprintf("%s.%s-%d%s", path, stamp, n, Marker)
		}

	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown backup strategy: %s", strategy).
			WithDetail("strategy", string(strategy))
	}
}
