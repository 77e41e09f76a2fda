package types

import "time"

// BackupRecord describes one verified backup on disk.
type BackupRecord struct {
	// SourcePath is the file the backup was taken from
	SourcePath string

	// BackupPath is where the backup bytes live
	BackupPath string

	// Strategy is the naming scheme that produced BackupPath
	Strategy BackupStrategy

	// CreatedAt is when the snapshot was taken
	CreatedAt time.Time

	// SizeBytes is the verified size of the backup content
	SizeBytes int64
}
