package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// LogToFile points logger at path for as long as the alternate screen owns
// the terminal, and returns a function that restores stderr. The function
// may be called more than once.
func LogToFile(logger *log.Logger, path string) (restore func(), err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("tui: cannot create log directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot open log file: %w", err)
	}

	logger.SetOutput(f)
	var once sync.Once
	return func() {
		once.Do(func() {
			logger.SetOutput(os.Stderr)
			f.Close()
		})
	}, nil
}
