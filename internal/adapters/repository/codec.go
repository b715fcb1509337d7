package repository

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/okian/mindlab/internal/domain/model"
)

// column identifies a field of the fixed sheet schema.
type column int

const (
	colDate column = iota
	colVenue
	colScore
	colAcceptance
	colRoutine
	colDecision
	colFocus
	colEnergy
	colTension
	colNotes
	columnCount
)

// storedDateLayout is written on append.
const storedDateLayout = "2006-01-02 15:04:05"

// Header is the canonical column order.
var Header = []string{"Date", "Venue", "Score", "Acceptance", "Routine", "Decision", "Focus", "Energy", "Tension", "Notes"}

// legacyNames maps headers used by the original sheet.
var legacyNames = map[string]column{
	"data":         colDate,
	"torneo":       colVenue,
	"accettazione": colAcceptance,
	"decisione":    colDecision,
	"energia":      colEnergy,
	"tensione":     colTension,
	"note":         colNotes,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// layout maps each schema column to its index in a row, or -1.
type layout [columnCount]int

func canonicalLayout() layout {
	var l layout
	for i := range l {
		l[i] = i
	}
	return l
}

// parseHeader locates schema columns by name. Notes is optional; every other
// column is required.
func parseHeader(header []string) (layout, error) {
	var l layout
	for i := range l {
		l[i] = -1
	}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		c, ok := lookupColumn(name)
		if ok && l[c] < 0 {
			l[c] = i
		}
	}
	for c := colDate; c < colNotes; c++ {
		if l[c] < 0 {
			return l, fmt.Errorf("%w: missing column %q", ErrMalformedSheet, Header[c])
		}
	}
	return l, nil
}

func lookupColumn(name string) (column, bool) {
	for i, h := range Header {
		if strings.ToLower(h) == name {
			return column(i), true
		}
	}
	c, ok := legacyNames[name]
	return c, ok
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// isEmptySheet reports a sheet with nothing or only a header row.
func isEmptySheet(rows [][]string) bool {
	return len(rows) == 0 || (len(rows) == 1 && isBlank(rows[0]))
}

// decodeRows converts raw rows into records. Rows with an unparseable date
// or numeric cell, or with values outside the record bounds, are dropped and
// counted. Blank rows are skipped.
func decodeRows(rows [][]string, loc *time.Location) (records []model.Record, dropped int, err error) {
	records = []model.Record{}
	if isEmptySheet(rows) {
		return records, 0, nil
	}
	l, err := parseHeader(rows[0])
	if err != nil {
		return nil, 0, err
	}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec, ok := decodeRow(l, row, loc)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped, nil
}

func decodeRow(l layout, row []string, loc *time.Location) (model.Record, bool) {
	raw := func(c column) string {
		i := l[c]
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}
	cell := func(c column) string { return strings.TrimSpace(raw(c)) }

	ts, ok := parseDate(cell(colDate), loc)
	if !ok {
		return model.Record{}, false
	}
	// Text cells are kept as written so an appended record reads back exactly.
	rec := model.Record{
		Timestamp: ts,
		Venue:     raw(colVenue),
		Notes:     raw(colNotes),
	}

	ints := []struct {
		c   column
		dst *int
	}{
		{colScore, &rec.Score},
		{colAcceptance, &rec.Acceptance},
		{colRoutine, &rec.Routine},
		{colDecision, &rec.Decision},
		{colFocus, &rec.Focus},
		{colEnergy, &rec.Energy},
		{colTension, &rec.Tension},
	}
	for _, f := range ints {
		v, ok := parseInt(cell(f.c))
		if !ok {
			return model.Record{}, false
		}
		*f.dst = v
	}
	if rec.Validate() != nil {
		return model.Record{}, false
	}
	return rec, true
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseInt accepts integers and integral spreadsheet floats such as "4.0".
// Floats outside the int32 range are rejected.
func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	f = math.Round(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// encodeRow lays rec out to match l within a row of width cells.
func encodeRow(l layout, width int, rec model.Record, loc *time.Location) []string {
	row := make([]string, width)
	set := func(c column, v string) {
		if i := l[c]; i >= 0 && i < width {
			row[i] = v
		}
	}
	set(colDate, rec.Timestamp.In(loc).Format(storedDateLayout))
	set(colVenue, rec.Venue)
	set(colScore, strconv.Itoa(rec.Score))
	set(colAcceptance, strconv.Itoa(rec.Acceptance))
	set(colRoutine, strconv.Itoa(rec.Routine))
	set(colDecision, strconv.Itoa(rec.Decision))
	set(colFocus, strconv.Itoa(rec.Focus))
	set(colEnergy, strconv.Itoa(rec.Energy))
	set(colTension, strconv.Itoa(rec.Tension))
	set(colNotes, rec.Notes)
	return row
}
