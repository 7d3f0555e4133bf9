package gutachten

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ExportStorage tracks generated export files and removes them again after a
// delay. Deletion is best-effort and deferred so it cannot race a download
// of the same file into a hard error: a file that is already gone is fine.
type ExportStorage struct {
	baseDir string
	delay   time.Duration

	mu     sync.Mutex
	active map[string]bool
}

// NewExportStorage creates storage rooted at baseDir whose files are removed
// after the given delay once released.
func NewExportStorage(baseDir string, delay time.Duration) *ExportStorage {
	return &ExportStorage{
		baseDir: baseDir,
		delay:   delay,
		active:  make(map[string]bool),
	}
}

// BaseDir returns the directory exports are written to.
func (s *ExportStorage) BaseDir() string { return s.baseDir }

// Track marks a file as active, protecting it from cleanup.
func (s *ExportStorage) Track(filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[filepath.Base(filename)] = true
}

// Release schedules a tracked file for deferred removal.
func (s *ExportStorage) Release(filename string) {
	name := filepath.Base(filename)

	s.mu.Lock()
	delete(s.active, name)
	s.mu.Unlock()

	time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		stillInactive := !s.active[name]
		s.mu.Unlock()
		if stillInactive {
			// tolerate files already removed by an earlier cleanup
			_ = os.Remove(filepath.Join(s.baseDir, name))
		}
	})
}

// CleanupInactive removes every file in the base directory that is not
// currently tracked. Errors on individual files are ignored; cleanup must
// never take the service down.
func (s *ExportStorage) CleanupInactive() {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range entries {
		if entry.IsDir() || s.active[entry.Name()] {
			continue
		}
		_ = os.Remove(filepath.Join(s.baseDir, entry.Name()))
	}
}
