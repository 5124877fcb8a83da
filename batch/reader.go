// Package batch reads calculator cases from JSON Lines input and runs them
// through the registry.
package batch

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"

	"github.com/giygas/medcalc/logging"
	"github.com/giygas/medcalc/metrics"
	"github.com/giygas/medcalc/validation"
)

// Skip reasons, used as the metrics label.
const (
	ReasonEmpty             = "empty"
	ReasonMalformed         = "malformed"
	ReasonMissingCalculator = "missing_calculator"
	ReasonInvalidID         = "invalid_id"
)

// ErrLineTooLong is returned when a line exceeds the configured maximum.
var ErrLineTooLong = errors.New("batch line too long")

// Case is one line of batch input.
type Case struct {
	ID         string          `json:"id"`
	Calculator string          `json:"calculator"`
	Parameters json.RawMessage `json:"parameters"`

	// Line is the 1-based input line the case came from.
	Line int `json:"-"`
}

// SkippedLine records an input line that produced no case.
type SkippedLine struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// ReadStats summarises one read.
type ReadStats struct {
	Lines   int           `json:"lines"`
	Cases   int           `json:"cases"`
	Skipped []SkippedLine `json:"skipped,omitempty"`
}

// decodeInput returns r as UTF-8. Input that is not valid UTF-8 is
// decoded from ISO-8859-1.
func decodeInput(r io.Reader) (io.Reader, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch input: %w", err)
	}
	if utf8.Valid(raw) {
		return bytes.NewReader(raw), nil
	}
	logging.Debug("Batch input is not valid UTF-8, decoding as ISO-8859-1")
	return charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(raw)), nil
}

// ReadCases parses one case per line. Empty lines, lines that are not a
// case object and lines with an invalid id are skipped and counted; a
// missing id is replaced by a random UUID. A line longer than
// maxLineSize bytes stops the read with ErrLineTooLong.
func ReadCases(r io.Reader, maxLineSize int) ([]Case, ReadStats, error) {
	var stats ReadStats

	reader, err := decodeInput(r)
	if err != nil {
		return nil, stats, err
	}

	if maxLineSize <= 0 {
		maxLineSize = bufio.MaxScanTokenSize
	}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, min(maxLineSize, 64*1024)), maxLineSize)

	var cases []Case
	skip := func(reason, detail string) {
		stats.Skipped = append(stats.Skipped, SkippedLine{Line: stats.Lines, Reason: reason, Detail: detail})
		metrics.ObserveSkippedLine(reason)
	}

	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())
		if stats.Lines == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if line == "" {
			skip(ReasonEmpty, "")
			continue
		}

		var c Case
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			skip(ReasonMalformed, err.Error())
			continue
		}

		if strings.TrimSpace(c.Calculator) == "" {
			skip(ReasonMissingCalculator, "")
			continue
		}

		if c.ID == "" {
			c.ID = uuid.NewString()
		} else if err := validation.ValidateCaseID(c.ID); err != nil {
			skip(ReasonInvalidID, fmt.Sprintf("%q: %v", c.ID, err))
			continue
		}

		c.Line = stats.Lines
		cases = append(cases, c)
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, stats, fmt.Errorf("%w: line %d exceeds %d bytes", ErrLineTooLong, stats.Lines+1, maxLineSize)
		}
		return nil, stats, fmt.Errorf("scanner error in batch input: %w", err)
	}

	stats.Cases = len(cases)
	if len(stats.Skipped) > 0 {
		logging.Info("Batch input skip statistics",
			"skipped_lines", len(stats.Skipped),
			"total_lines", stats.Lines,
			"cases_parsed", stats.Cases)
	}

	return cases, stats, nil
}
