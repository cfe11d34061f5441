// Package analysis loads frame dumps and derives per-type statistics and plottable series from them.
package analysis

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/iafilius/FrameTimeline/src/logging"
	"github.com/iafilius/FrameTimeline/src/types"
)

// MaxLineBytes caps a single JSONL line.
const MaxLineBytes = 16 * 1024 * 1024

// LoadFrames reads a frame dump: one JSON FrameRecord per line. Blank lines and lines starting with
// "//" are skipped. A malformed line aborts the load with its line number.
func LoadFrames(path string) (*types.Sequence, error) {
	defer logging.TimeTrack(time.Now(), "analysis: load "+path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frames: %w", err)
	}
	defer f.Close()
	seq, err := ReadFrames(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Infof("[analysis] loaded %d frames from %s", seq.Len(), path)
	return seq, nil
}

// ReadFrames is LoadFrames for an arbitrary reader.
func ReadFrames(r io.Reader) (*types.Sequence, error) {
	reader := bufio.NewReader(r)
	var frames []types.FrameRecord
	lineNo := 0
	for {
		line, done, err := readLine(reader)
		if err != nil {
			return nil, err
		}
		if done && line == nil {
			break
		}
		lineNo++
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("//")) {
			if done {
				break
			}
			continue
		}
		var rec types.FrameRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		frames = append(frames, rec)
		if done {
			break
		}
	}
	return types.NewSequence(frames)
}

// readLine accumulates one logical line, which may span several buffer fills. done is set at EOF;
// a nil line with done means there was nothing left to read.
func readLine(reader *bufio.Reader) (line []byte, done bool, err error) {
	for {
		part, rerr := reader.ReadBytes('\n')
		if len(part) > 0 {
			if len(line)+len(part) > MaxLineBytes {
				return nil, false, fmt.Errorf("line too large: %d bytes exceeds limit %d", len(line)+len(part), MaxLineBytes)
			}
			line = append(line, part...)
		}
		switch {
		case rerr == nil:
			return line, false, nil
		case errors.Is(rerr, io.EOF):
			return line, true, nil
		case errors.Is(rerr, bufio.ErrBufferFull):
			continue
		default:
			return nil, false, fmt.Errorf("read frames: %w", rerr)
		}
	}
}
