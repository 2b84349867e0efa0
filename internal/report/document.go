package report

import (
	"sort"

	"github.com/spacesedan/subreddit-insights/internal/models"
)

// Table is a header row followed by data rows, written downward from its anchor cell.
type Table struct {
	Header []string
	Rows   [][]any
}

// Sheet holds the labels, tables and images of one worksheet, keyed by anchor cell
// (for example "A1"). Each anchor holds at most one item of each kind.
type Sheet struct {
	Name   string
	labels map[string]string
	tables map[string]Table
	images map[string]models.Artifact
}

func newSheet(name string) *Sheet {
	s := &Sheet{Name: name}
	s.Reset()
	return s
}

// Reset drops everything previously placed on the sheet.
func (s *Sheet) Reset() {
	s.labels = make(map[string]string)
	s.tables = make(map[string]Table)
	s.images = make(map[string]models.Artifact)
}

func (s *Sheet) SetLabel(anchor, text string) {
	s.labels[anchor] = text
}

func (s *Sheet) SetTable(anchor string, t Table) {
	s.tables[anchor] = t
}

// SetImage places img at anchor, replacing any image already there.
func (s *Sheet) SetImage(anchor string, img models.Artifact) {
	s.images[anchor] = img
}

func (s *Sheet) Label(anchor string) (string, bool) {
	l, ok := s.labels[anchor]
	return l, ok
}

func (s *Sheet) Table(anchor string) (Table, bool) {
	t, ok := s.tables[anchor]
	return t, ok
}

func (s *Sheet) Image(anchor string) (models.Artifact, bool) {
	img, ok := s.images[anchor]
	return img, ok
}

func (s *Sheet) LabelAnchors() []string { return sortedKeys(s.labels) }
func (s *Sheet) TableAnchors() []string { return sortedKeys(s.tables) }
func (s *Sheet) ImageAnchors() []string { return sortedKeys(s.images) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Document is the in-memory report. Sheets keep the order they were first requested in.
type Document struct {
	sheets []*Sheet
	byName map[string]*Sheet
}

func NewDocument() *Document {
	return &Document{byName: make(map[string]*Sheet)}
}

// Sheet returns the named sheet, creating it on first use.
func (d *Document) Sheet(name string) *Sheet {
	if s, ok := d.byName[name]; ok {
		return s
	}
	s := newSheet(name)
	d.sheets = append(d.sheets, s)
	d.byName[name] = s
	return s
}

func (d *Document) Sheets() []*Sheet {
	return d.sheets
}
