// Package cochange reads external co-change history for shotgun surgery detection.
//
// The engine never produces this data itself: a VCS-side collaborator exports
// records of coordinated edits, either as newline-delimited JSON or as a
// SQLite database. Absence of a source is not an error; the shotgun surgery
// sub-detector is simply skipped.
package cochange

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/schema"
)

// SQLite file extensions recognized by NewSource.
var sqliteExtensions = map[string]struct{}{
	".db":      {},
	".sqlite":  {},
	".sqlite3": {},
}

// NewSource returns the co-change source for the given path, or nil when the
// path is empty. SQLite databases are detected by extension; everything else
// is treated as newline-delimited JSON.
func NewSource(path string) contract.CoChangeSource {
	if path == "" {
		return nil
	}
	if _, ok := sqliteExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return &SQLiteSource{Path: path}
	}
	return &NDJSONSource{Path: path}
}

// NDJSONSource reads co-change records from a newline-delimited JSON file,
// one {"unit": ..., "timestamp": ...} object per line.
type NDJSONSource struct {
	Path string
}

// Fetch implements contract.CoChangeSource. The read is bounded by the file
// size and observes context cancellation between lines.
func (s *NDJSONSource) Fetch(ctx context.Context) ([]schema.CoChangeRecord, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open co-change source: %w", err)
	}
	defer func() { _ = file.Close() }()

	var records []schema.CoChangeRecord
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec schema.CoChangeRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("co-change source %s line %d: %w", s.Path, lineNo, err)
		}
		if rec.Unit == "" {
			return nil, fmt.Errorf("co-change source %s line %d: missing unit", s.Path, lineNo)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading co-change source %s: %w", s.Path, err)
	}
	return records, nil
}
