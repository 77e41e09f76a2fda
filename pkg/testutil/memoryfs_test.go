package testutil

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFSReadWrite(t *testing.T) {
	m := NewMemoryFS()

	require.NoError(t, m.WriteFile("/a/b/file.txt", []byte("hello"), 0644))

	data, err := m.ReadFile("/a/b/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	info, err := m.Stat("/a/b/file.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	assert.False(t, info.IsDir())
}

func TestMemoryFSMissingFile(t *testing.T) {
	m := NewMemoryFS()

	_, err := m.ReadFile("/nope")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFSRename(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.WriteFile("/old.txt", []byte("content"), 0644))
	require.NoError(t, m.WriteFile("/target.txt", []byte("stale"), 0644))

	require.NoError(t, m.Rename("/old.txt", "/target.txt"))

	_, err := m.ReadFile("/old.txt")
	assert.Error(t, err)

	data, err := m.ReadFile("/target.txt")
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestMemoryFSReadDir(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.WriteFile("/dir/a.txt", []byte("a"), 0644))
	require.NoError(t, m.WriteFile("/dir/b.txt", []byte("b"), 0644))

	entries, err := m.ReadDir("/dir")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMemoryFSErrorInjection(t *testing.T) {
	t.Run("all_ops", func(t *testing.T) {
		boom := errors.New("boom")
		m := NewMemoryFS().WithError("/bad.txt", boom)

		_, err := m.ReadFile("/bad.txt")
		assert.ErrorIs(t, err, boom)

		err = m.WriteFile("/bad.txt", []byte("x"), 0644)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("single_op", func(t *testing.T) {
		boom := errors.New("write refused")
		m := NewMemoryFS().WithErrorOn("write", "/file.txt", boom)

		err := m.WriteFile("/file.txt", []byte("x"), 0644)
		assert.ErrorIs(t, err, boom)

		// Reads are unaffected
		_, err = m.ReadFile("/file.txt")
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})
}

func TestMemoryFSCorrupt(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.WriteFile("/f.txt", []byte("good"), 0644))

	_, writesBefore := m.Stats()
	assert.True(t, m.Corrupt("/f.txt", []byte("bad")))
	_, writesAfter := m.Stats()

	// Corruption bypasses the write counter
	assert.Equal(t, writesBefore, writesAfter)

	data, err := m.ReadFile("/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "bad", string(data))

	assert.False(t, m.Corrupt("/missing.txt", []byte("x")))
}

func TestMemoryFSCorruptWrites(t *testing.T) {
	m := NewMemoryFS().WithCorruptWrites("/lossy.txt")

	require.NoError(t, m.WriteFile("/lossy.txt", []byte("abc"), 0644))

	data, err := m.ReadFile("/lossy.txt")
	require.NoError(t, err)
	assert.NotEqual(t, "abc", string(data))
	assert.Len(t, data, 3)
}

func TestMemoryFSStats(t *testing.T) {
	m := NewMemoryFS()

	reads, writes := m.Stats()
	assert.Equal(t, 0, reads)
	assert.Equal(t, 0, writes)

	require.NoError(t, m.WriteFile("/f.txt", []byte("x"), 0644))
	_, _ = m.ReadFile("/f.txt")
	_, _ = m.ReadFile("/f.txt")

	reads, writes = m.Stats()
	assert.Equal(t, 2, reads)
	assert.Equal(t, 1, writes)
}
