package export

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Header is written exactly once, when the destination file is newly created.
const Header = "timestamp,handleCount,memory,threadCount"

// FileSystem is the slice of file operations the exporter needs.
type FileSystem interface {
	Exists(path string) bool
	Size(path string) (int64, error)
	AppendText(path, text string) error
	Remove(path string) error
}

// OSFileSystem backs FileSystem with the real filesystem.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFileSystem) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (OSFileSystem) AppendText(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	_, werr := f.WriteString(text)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

func (OSFileSystem) Remove(path string) error {
	return os.Remove(path)
}

// History holds the per-process sample data to export. All slices are
// parallel and index-aligned.
type History struct {
	Timestamps []time.Time
	Handles    []int64
	Memory     []int64
	Threads    []int64
}

// WriteHistory appends h to path as CSV, prepending the header when the file
// does not exist yet. Each line is HH:mm:ss followed by the three raw
// counters. After writing, the destination is re-checked: a missing or empty
// file is treated as a write-integrity failure, the leftover is removed, and
// an error is returned.
func WriteHistory(fs FileSystem, path string, h History) error {
	var b strings.Builder
	if !fs.Exists(path) {
		b.WriteString(Header)
		b.WriteByte('\n')
	}
	for i, ts := range h.Timestamps {
		fmt.Fprintf(&b, "%s,%d,%d,%d\n", ts.Format("15:04:05"), h.Handles[i], h.Memory[i], h.Threads[i])
	}

	if err := fs.AppendText(path, b.String()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	size, err := fs.Size(path)
	if !fs.Exists(path) || err != nil || size == 0 {
		_ = fs.Remove(path)
		return fmt.Errorf("export verification failed: %s is missing or empty", path)
	}

	return nil
}

// FileName builds the default export file name for a process.
func FileName(processName string, pid int32) string {
	return fmt.Sprintf("%s_%d_ResourceUsage.csv", strings.ReplaceAll(processName, ".", "_"), pid)
}
