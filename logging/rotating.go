package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

const filePrefix = "medcalc-"

var numberedFileRe = regexp.MustCompile(`^medcalc-\d{4}-W\d{2}_(\d{2})\.log$`)

// RotatingFile is an io.Writer over weekly log files in a directory.
// A week's file is named medcalc-YYYY-Www.log; when it reaches the size
// limit, writing continues in medcalc-YYYY-Www_NN.log.
type RotatingFile struct {
	dir         string
	retention   time.Duration
	maxFileSize int64 // zero disables size rotation
	now         func() time.Time

	mu          sync.Mutex
	file        *os.File
	week        string
	currentSize int64
}

// OpenRotatingFile creates dir if needed, removes log files older than
// the retention period and opens the current week's file.
func OpenRotatingFile(dir string, retentionWeeks int, maxFileSize int64) (*RotatingFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	rf := newRotatingFile(dir, retentionWeeks, maxFileSize)
	if _, err := rf.cleanupOldLogs(); err != nil {
		return nil, err
	}

	rf.mu.Lock()
	defer rf.mu.Unlock()
	if err := rf.rotate(weekKey(rf.now()), false); err != nil {
		return nil, err
	}
	return rf, nil
}

func newRotatingFile(dir string, retentionWeeks int, maxFileSize int64) *RotatingFile {
	return &RotatingFile{
		dir:         dir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
		now:         time.Now,
	}
}

// weekKey returns the ISO week in YYYY-Www format
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// rotate switches to the file for week. Caller holds mu.
func (rf *RotatingFile) rotate(week string, full bool) error {
	if rf.file != nil {
		if err := rf.file.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		rf.file = nil
	}

	name := rf.pickFile(week, full)
	path := filepath.Join(rf.dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to stat log file %s: %w", path, err)
	}

	rf.file = file
	rf.week = week
	rf.currentSize = info.Size()
	return nil
}

// pickFile chooses the file name to append to for week. full means the
// file in use has reached the size limit.
func (rf *RotatingFile) pickFile(week string, full bool) string {
	base := filePrefix + week + ".log"
	if rf.maxFileSize <= 0 {
		return base
	}

	highest, size := rf.highestNumbered(week)
	if highest == 0 {
		if !full {
			if info, err := os.Stat(filepath.Join(rf.dir, base)); err != nil || info.Size() < rf.maxFileSize {
				return base
			}
		}
		return numberedName(week, 1)
	}
	if !full && size < rf.maxFileSize {
		return numberedName(week, highest)
	}
	return numberedName(week, highest+1)
}

func numberedName(week string, n int) string {
	return fmt.Sprintf("%s%s_%02d.log", filePrefix, week, n)
}

// highestNumbered returns the highest sequence number used for week and
// the size of that file.
func (rf *RotatingFile) highestNumbered(week string) (int, int64) {
	matches, _ := filepath.Glob(filepath.Join(rf.dir, filePrefix+week+"_??.log"))

	highest := 0
	var size int64
	for _, match := range matches {
		m := numberedFileRe.FindStringSubmatch(filepath.Base(match))
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		if n <= highest {
			continue
		}
		highest = n
		size = 0
		if info, err := os.Stat(match); err == nil {
			size = info.Size()
		}
	}
	return highest, size
}

// Write appends p to the current file, rotating first when the week has
// changed or p would take the file past the size limit.
func (rf *RotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	week := weekKey(rf.now())
	switch {
	case rf.file == nil || rf.week != week:
		if err := rf.rotate(week, false); err != nil {
			return 0, err
		}
	case rf.maxFileSize > 0 && rf.currentSize > 0 && rf.currentSize+int64(len(p)) > rf.maxFileSize:
		if err := rf.rotate(week, true); err != nil {
			return 0, err
		}
	}

	n, err := rf.file.Write(p)
	rf.currentSize += int64(n)
	return n, err
}

// cleanupOldLogs removes log files last modified before the retention
// period and returns how many were removed.
func (rf *RotatingFile) cleanupOldLogs() (int, error) {
	entries, err := os.ReadDir(rf.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := rf.now().Add(-rf.retention)
	var removed int
	var errs []error
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(rf.dir, name)); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

// Close closes the current file.
func (rf *RotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.file == nil {
		return nil
	}
	err := rf.file.Close()
	rf.file = nil
	return err
}
