// Package feed decodes the line-delimited JSON task feed Taskwarrior writes
// to a hook's stdin.
package feed

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/steveyegge/annn/internal/debug"
	"github.com/steveyegge/annn/internal/types"
)

// maxLogLine bounds how much of a rejected line reaches the debug log.
const maxLogLine = 80

// ReadTasks reads every line from r and decodes one task per non-empty line.
// Lines that are not a JSON object are skipped and logged, whatever their
// length. Tasks are returned in input order. Only a failure of the stream
// itself is returned as an error, together with the tasks decoded up to that
// point.
func ReadTasks(r io.Reader, logger debug.Logger) ([]*types.Task, error) {
	if logger == nil {
		logger = debug.Discard
	}

	var tasks []*types.Task
	reader := bufio.NewReader(r)

	lineNum := 0
	for {
		raw, readErr := reader.ReadBytes('\n')
		if len(raw) > 0 {
			lineNum++
			if task, ok := decodeLine(raw, lineNum, logger); ok {
				tasks = append(tasks, task)
			}
		}

		if errors.Is(readErr, io.EOF) {
			return tasks, nil
		}
		if readErr != nil {
			return tasks, fmt.Errorf("read task feed: %w", readErr)
		}
	}
}

func decodeLine(raw []byte, lineNum int, logger debug.Logger) (*types.Task, bool) {
	line := bytes.TrimSpace(raw)

	// Skip empty lines
	if len(line) == 0 {
		return nil, false
	}

	var task types.Task
	if err := json.Unmarshal(line, &task); err != nil {
		logger.Logf("Skipping non-JSON line %d: %s", lineNum, debug.Clip(string(line), maxLogLine))
		return nil, false
	}
	return &task, true
}
