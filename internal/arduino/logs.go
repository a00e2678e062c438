package arduino

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// logTimeLayout names log files by wall-clock timestamp.
const logTimeLayout = "20060102_150405"

// WriteLog persists captured build/upload output under the sketch's logs
// directory and returns the log file path.
func WriteLog(sketchDir, content string) (string, error) {
	logDir := filepath.Join(sketchDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", fmt.Errorf("arduino: create log dir: %w", err)
	}

	path := filepath.Join(logDir, time.Now().Format(logTimeLayout)+".log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("arduino: write log: %w", err)
	}

	return path, nil
}
