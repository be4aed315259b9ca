// Package record writes tracking records to CSV files and a SQLite store.
package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/teslashibe/go-arena/pkg/tracking"
)

// Layout selects the CSV columns.
type Layout int

const (
	LayoutRegion     Layout = iota // rectangle,x,y
	LayoutRegionZone               // rectangle,location,x,y
	LayoutZone                     // location,x,y
)

// LayoutFor picks the layout matching a session configuration.
func LayoutFor(cfg tracking.Config) Layout {
	switch {
	case cfg.Mode == tracking.ModeWholeFrame:
		return LayoutZone
	case cfg.HasZones():
		return LayoutRegionZone
	}
	return LayoutRegion
}

// Header returns the column names.
func (l Layout) Header() []string {
	switch l {
	case LayoutRegionZone:
		return []string{"rectangle", "location", "x", "y"}
	case LayoutZone:
		return []string{"location", "x", "y"}
	}
	return []string{"rectangle", "x", "y"}
}

// Row formats rec as a CSV row.
func (l Layout) Row(rec tracking.Record) []string {
	x, y := strconv.Itoa(rec.X), strconv.Itoa(rec.Y)
	switch l {
	case LayoutRegionZone:
		return []string{rec.Region, rec.Zone, x, y}
	case LayoutZone:
		return []string{rec.Zone, x, y}
	}
	return []string{rec.Region, x, y}
}

// CSVWriter appends records to a CSV stream.
type CSVWriter struct {
	w      *csv.Writer
	closer io.Closer
	layout Layout
}

// NewCSVWriter writes the header for layout to w.
func NewCSVWriter(w io.Writer, layout Layout) (*CSVWriter, error) {
	cw := &CSVWriter{w: csv.NewWriter(w), layout: layout}
	if err := cw.w.Write(layout.Header()); err != nil {
		return nil, fmt.Errorf("record: write header: %w", err)
	}
	return cw, nil
}

// CreateCSV creates (or truncates) path and writes the header.
func CreateCSV(path string, layout Layout) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	cw, err := NewCSVWriter(f, layout)
	if err != nil {
		f.Close()
		return nil, err
	}
	cw.closer = f
	return cw, nil
}

// WriteRecord appends one row.
func (c *CSVWriter) WriteRecord(rec tracking.Record) error {
	return c.w.Write(c.layout.Row(rec))
}

// Flush writes buffered rows.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// Close flushes and closes the underlying file, if any.
func (c *CSVWriter) Close() error {
	err := c.Flush()
	if c.closer != nil {
		if cerr := c.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
