package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/penwyp/go-event-timeline/internal/core/model"
	"github.com/penwyp/go-event-timeline/internal/util"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFile reads an event log with one timestamp per line.
func ParseFile(path string) ([]time.Time, error) {
	util.LogDebug("Start parsing event file", util.F("path", path))

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	start := time.Now()
	events, err := ParseReader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	util.LogDebug("Parsed event file",
		util.F("path", path),
		util.F("events", len(events)),
		util.F("duration", time.Since(start)))
	return events, nil
}

// ParseReader parses timestamps line by line. Blank lines are skipped; the
// first malformed line aborts the whole read.
func ParseReader(r io.Reader) ([]time.Time, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var events []time.Time
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if lineNo == 1 {
			line = bytes.TrimPrefix(line, utf8BOM)
		}

		value := strings.TrimSpace(string(line))
		if value == "" {
			continue
		}

		t, err := util.ParseTimestamp(value)
		if err != nil {
			return nil, &model.MalformedInputError{Line: lineNo, Value: value, Err: err}
		}
		events = append(events, t)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, model.ErrEmptyInput
	}
	return events, nil
}

// ParseLines parses already split values, numbering them from 1.
func ParseLines(lines []string) ([]time.Time, error) {
	events := make([]time.Time, 0, len(lines))
	for i, line := range lines {
		t, err := util.ParseTimestamp(line)
		if err != nil {
			return nil, &model.MalformedInputError{Line: i + 1, Value: line, Err: err}
		}
		events = append(events, t)
	}
	return events, nil
}
