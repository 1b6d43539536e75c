// Package config loads the hook settings from annn.rc.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/steveyegge/annn/internal/debug"
)

// Recognized settings keys
const (
	KeyTag        = "annn.tag"
	KeyOnComplete = "annn.on_complete"
	KeyOnDelete   = "annn.on_delete"
	KeyEditor     = "annn.editor"
)

// Enabled is the only value that switches an event on.
const Enabled = "yes"

// Defaults holds the recognized keys and their default values.
// Keys missing from this map are ignored when reading annn.rc.
var Defaults = map[string]string{
	KeyTag:        "ann",
	KeyOnComplete: Enabled,
	KeyOnDelete:   Enabled,
	KeyEditor:     "",
}

// Settings is the hook configuration. It is loaded once at startup and
// never mutated afterwards.
type Settings struct {
	Tag        string
	OnComplete string
	OnDelete   string
	Editor     string // empty = unset
}

// DefaultSettings returns settings populated from Defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Tag:        Defaults[KeyTag],
		OnComplete: Defaults[KeyOnComplete],
		OnDelete:   Defaults[KeyOnDelete],
		Editor:     Defaults[KeyEditor],
	}
}

// CompleteEnabled reports whether completing a tagged task prompts.
func (s *Settings) CompleteEnabled() bool {
	return s.OnComplete == Enabled
}

// DeleteEnabled reports whether deleting a tagged task prompts.
func (s *Settings) DeleteEnabled() bool {
	return s.OnDelete == Enabled
}

func (s *Settings) String() string {
	return fmt.Sprintf("%s=%q %s=%q %s=%q %s=%q",
		KeyTag, s.Tag, KeyOnComplete, s.OnComplete, KeyOnDelete, s.OnDelete, KeyEditor, s.Editor)
}

// DefaultDataDir returns Taskwarrior's default data directory (~/.task).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".task"
	}
	return filepath.Join(home, ".task")
}

// RCPath returns the settings file location under a task data directory.
func RCPath(dataDir string) string {
	return filepath.Join(dataDir, "config", "annn.rc")
}

// Load reads settings from the annn.rc file at path.
//
// Values are layered defaults < annn.rc; the environment is not consulted,
// so a key absent from the file keeps its default. A missing or unreadable
// file is not an error: whatever could be read is kept and the rest falls
// back to defaults.
func Load(path string, logger debug.Logger) *Settings {
	if logger == nil {
		logger = debug.Discard
	}

	v := viper.New()
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	values, err := readRCFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Logf("No annn.rc found, using defaults")
	case err != nil:
		logger.Logf("Error reading annn.rc: %v", err)
	}

	if len(values) > 0 {
		if err := v.MergeConfigMap(nestKeys(values)); err != nil {
			logger.Logf("Error merging annn.rc: %v", err)
		}
	}

	s := &Settings{
		Tag:        v.GetString(KeyTag),
		OnComplete: v.GetString(KeyOnComplete),
		OnDelete:   v.GetString(KeyOnDelete),
		Editor:     v.GetString(KeyEditor),
	}
	logger.Logf("Config loaded: %s", s)
	return s
}

// readRCFile parses key=value lines. Blank lines and '#' comments are
// skipped, the line is split at the first '=', and only keys present in
// Defaults are kept. Values read before an I/O error are returned with it.
func readRCFile(path string) (map[string]string, error) {
	// #nosec G304 -- path is the user's own annn.rc
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 4*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if _, known := Defaults[key]; !known {
			continue
		}
		values[key] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return values, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

// nestKeys turns dotted keys into the nested map viper merges as a config layer.
func nestKeys(values map[string]string) map[string]interface{} {
	out := make(map[string]interface{})
	for key, value := range values {
		section, name, ok := strings.Cut(key, ".")
		if !ok {
			out[key] = value
			continue
		}
		inner, _ := out[section].(map[string]interface{})
		if inner == nil {
			inner = make(map[string]interface{})
			out[section] = inner
		}
		inner[name] = value
	}
	return out
}
