package backup

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/types"
)

// timestampRe matches the stamp segment of a timestamped backup name,
// including the optional collision counter
var timestampRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}\.\d{9})(?:-\d+)?$`)

// List discovers every backup in dir and attributes each one to its source
// file. Results are sorted by creation time ascending, ties broken by
// backup path, so repeated calls over an unchanged directory are stable.
func (s *Store) List(dir string) ([]types.BackupRecord, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.MapOS(err, errors.ErrSourceNotFound, dir)
	}

	var records []types.BackupRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Marker) {
			continue
		}

		backupPath := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			s.logger.Warn().Err(err).Str("path", backupPath).Msg("Skipping unreadable backup entry")
			continue
		}

		record := types.BackupRecord{
			BackupPath: backupPath,
			SizeBytes:  info.Size(),
		}

		trimmed := strings.TrimSuffix(entry.Name(), Marker)
		if source, createdAt, ok := splitTimestamped(trimmed); ok {
			record.SourcePath = filepath.Join(dir, source)
			record.Strategy = types.StrategyTimestamped
			record.CreatedAt = createdAt
		} else {
			record.SourcePath = filepath.Join(dir, trimmed)
			record.Strategy = types.StrategyCanonical
			record.CreatedAt = info.ModTime().UTC()
		}

		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].BackupPath < records[j].BackupPath
	})

	return records, nil
}

// Source derives the source path a backup belongs to by stripping the
// backup marker and, for timestamped backups, the stamp segment. It
// reports false for paths that do not look like backups.
func Source(backupPath string) (string, bool) {
	name := filepath.Base(backupPath)
	if !strings.HasSuffix(name, Marker) {
		return "", false
	}

	trimmed := strings.TrimSuffix(name, Marker)
	if trimmed == "" {
		return "", false
	}
	if source, _, ok := splitTimestamped(trimmed); ok {
		trimmed = source
	}
	return filepath.Join(filepath.Dir(backupPath), trimmed), true
}

// splitTimestamped splits "name.stamp" into the source name and the parsed
// stamp. Names whose final dot segment is not a valid stamp are canonical.
func splitTimestamped(trimmed string) (string, time.Time, bool) {
	idx := strings.LastIndex(trimmed, ".")
	if idx <= 0 {
		return "", time.Time{}, false
	}
	// The stamp itself contains a dot before the nanoseconds, so the split
	// point is the dot before the date part
	for probe := idx; probe > 0; probe = strings.LastIndex(trimmed[:probe], ".") {
		stamp := trimmed[probe+1:]
		if m := timestampRe.FindStringSubmatch(stamp); m != nil {
			createdAt, err := time.Parse(timestampLayout, m[1])
			if err != nil {
				return "", time.Time{}, false
			}
			return trimmed[:probe], createdAt, true
		}
	}
	return "", time.Time{}, false
}
