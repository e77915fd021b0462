package metric

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dashbuild/dashbuild/internal/errors"
	"gopkg.in/yaml.v3"
)

// dateLayouts are the accepted snapshot date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// File is the on-disk shape of a history file. JSON files parse too, since
// JSON is a subset of YAML.
type File struct {
	History []SnapshotRecord    `yaml:"history"`
	Latest  map[string]*float64 `yaml:"latest"`
}

// SnapshotRecord is one history entry as written in a file.
type SnapshotRecord struct {
	Date    string              `yaml:"date"`
	Metrics map[string]*float64 `yaml:"metrics"`
}

// Dataset is a parsed history file.
type Dataset struct {
	History History
	Latest  Latest
}

// LoadFile reads and parses a history file.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrHistory,
				"History file not found: "+path,
				"Point 'history' in dashbuild.yaml at an existing file, or pass --history")
		}
		return nil, errors.WrapWithCode(err, errors.ErrHistory,
			"Cannot read history file: "+path,
			"Check file permissions")
	}
	return Parse(data)
}

// Parse decodes history file contents. When the file has no "latest" block,
// the last snapshot's metrics stand in for it.
func Parse(data []byte) (*Dataset, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrHistory,
			"Cannot parse history file",
			"History files are YAML or JSON with 'history' and optional 'latest' keys")
	}

	h := make(History, 0, len(f.History))
	for i, rec := range f.History {
		date, err := ParseDate(rec.Date)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrHistory,
				fmt.Sprintf("Snapshot %d has an invalid date %q", i, rec.Date),
				"Use YYYY-MM-DD or RFC3339 dates")
		}
		metrics := rec.Metrics
		if metrics == nil {
			metrics = map[string]*float64{}
		}
		h = append(h, Snapshot{Date: date, Metrics: metrics})
	}

	latest := Latest(f.Latest)
	if latest == nil {
		latest = LatestOf(h)
	}

	return &Dataset{History: h, Latest: latest}, nil
}

// ParseDate parses a snapshot date in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
