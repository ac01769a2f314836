package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunLog records statistics gathered during one run.
type RunLog struct {
	Started time.Time `json:"started"`
	Ended   time.Time `json:"ended"`
	Depth   int       `json:"depth"`
	Turns   int       `json:"turns"`
	Kills   int       `json:"kills"`
	Result  string    `json:"result"` // "died" or "saved"
}

func newRunLog() RunLog {
	return RunLog{Started: time.Now(), Depth: 1}
}

// appendRunLog appends log as a single JSON line to path, or to the
// default runs.jsonl when path is empty.
func appendRunLog(path string, log RunLog) error {
	if path == "" {
		dir, err := runLogDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "runs.jsonl")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

// runLogDir returns $XDG_DATA_HOME/delve, defaulting to
// ~/.local/share/delve.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "delve"), nil
}
