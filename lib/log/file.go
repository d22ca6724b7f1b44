package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
)

// OpenRotating returns a writer for a strftime file name pattern such as
// log/glstage_%Y%m%d.log. A new file is started whenever the pattern
// expands differently and files older than maxAge are removed.
func OpenRotating(pattern string, maxAge time.Duration) (io.Writer, error) {
	err := os.MkdirAll(filepath.Dir(pattern), 0o755)
	if err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	w, err := rotatelogs.New(pattern,
		rotatelogs.WithClock(rotatelogs.Local),
		rotatelogs.WithMaxAge(maxAge),
	)
	if err != nil {
		return nil, fmt.Errorf("could not open log file %s: %w", pattern, err)
	}
	return w, nil
}
