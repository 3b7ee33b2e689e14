// Package status performs the filesystem side effects of a run and tracks
// what happened to every file, honoring dry-run mode.
package status

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what a run did to a file
type FileStatus int

const (
	StatusUnknown FileStatus = iota
	StatusNew                // File did not exist before
	StatusModified           // File existed with different content
	StatusUnchanged          // File existed with identical content
	StatusSkipped            // File deliberately left alone
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains metadata about a processed file
type FileInfo struct {
	Path     string     // Path relative to the base directory
	Status   FileStatus // Outcome for this file
	Size     int64      // Size written, in bytes
	Checksum string     // Content hash of the written file
}

// 🔧 Manager performs file operations rooted at a base directory. In dry-run
// mode every mutating call logs its decision and reports success without
// touching the filesystem; reads behave normally so decision logic is
// identical between modes.
type Manager struct {
	baseDir string
	dryRun  bool

	mu    sync.RWMutex
	files map[string]FileInfo
}

// 🏭 New creates a new status manager
func New(baseDir string, dryRun bool) *Manager {
	return &Manager{
		baseDir: filepath.Clean(baseDir),
		dryRun:  dryRun,
		files:   make(map[string]FileInfo),
	}
}

// DryRun reports whether the manager suppresses filesystem mutation
func (m *Manager) DryRun() bool {
	return m.dryRun
}

// BaseDir returns the manager's base directory
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// 🔒 Abs returns the absolute path for a base-relative path
func (m *Manager) Abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// 🔍 checksum generates a SHA-256 hash of the content
func checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// WriteFileAtomic writes content to path via a temp-file rename, creating
// parent directories as needed. The returned status distinguishes new,
// modified, and unchanged targets.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) (FileStatus, error) {
	logger := zerolog.Ctx(ctx)
	absPath := m.Abs(path)

	fileStatus := StatusNew
	if current, err := os.ReadFile(absPath); err == nil {
		if bytes.Equal(current, content) {
			fileStatus = StatusUnchanged
		} else {
			fileStatus = StatusModified
		}
	}

	if m.dryRun {
		logger.Info().Str("path", path).Int("bytes", len(content)).Msg("[dry-run] would write file")
		m.track(path, FileInfo{Path: path, Status: fileStatus, Size: int64(len(content)), Checksum: checksum(content)})
		return fileStatus, nil
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return StatusUnknown, errors.Errorf("creating parent directories: %w", err)
	}

	tempPath := absPath + ".tmp"
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return StatusUnknown, errors.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return StatusUnknown, errors.Errorf("renaming temp file: %w", err)
	}

	m.track(path, FileInfo{Path: path, Status: fileStatus, Size: int64(len(content)), Checksum: checksum(content)})
	return fileStatus, nil
}

// CopyFile copies src (an absolute path, typically outside the base
// directory) to the base-relative dst, preserving the source's modification
// time so later newer-than comparisons keep working.
func (m *Manager) CopyFile(ctx context.Context, src, dst string) error {
	logger := zerolog.Ctx(ctx)
	absDst := m.Abs(dst)

	if m.dryRun {
		logger.Info().Str("source", src).Str("target", dst).Msg("[dry-run] would copy file")
		m.track(dst, FileInfo{Path: dst, Status: StatusNew})
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(absDst), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(absDst)
	if err != nil {
		return errors.Errorf("creating target file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("copying content: %w", err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing target file: %w", err)
	}

	if info, err := os.Stat(src); err == nil {
		_ = os.Chtimes(absDst, info.ModTime(), info.ModTime())
	}

	m.track(dst, FileInfo{Path: dst, Status: StatusNew})
	return nil
}

// CopyFileIfNewer copies src to dst only when dst is missing or src has a
// newer modification time. Returns whether a copy took place (or would have,
// in dry-run).
func (m *Manager) CopyFileIfNewer(ctx context.Context, src, dst string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, errors.Errorf("stat source file: %w", err)
	}

	dstInfo, err := os.Stat(m.Abs(dst))
	if err == nil && !srcInfo.ModTime().After(dstInfo.ModTime()) {
		m.track(dst, FileInfo{Path: dst, Status: StatusSkipped})
		return false, nil
	}

	if err := m.CopyFile(ctx, src, dst); err != nil {
		return false, err
	}
	return true, nil
}

// CreateDir ensures a base-relative directory exists
func (m *Manager) CreateDir(ctx context.Context, path string) error {
	if m.dryRun {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("[dry-run] would create directory")
		return nil
	}
	if err := os.MkdirAll(m.Abs(path), 0755); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}
	return nil
}

// ReadFile reads a base-relative file
func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.Abs(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// FileExists reports whether a base-relative path exists
func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.Abs(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// track records the outcome for a file, normalizing the key to a
// base-relative path when the file lives under the base directory
func (m *Manager) track(path string, info FileInfo) {
	if rel, err := filepath.Rel(m.baseDir, m.Abs(path)); err == nil && !strings.HasPrefix(rel, "..") {
		path = rel
		info.Path = rel
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = info
}

// Files returns the tracked outcomes for every file the run touched
func (m *Manager) Files() []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]FileInfo, 0, len(m.files))
	for _, info := range m.files {
		out = append(out, info)
	}
	return out
}
