package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/ShapePack/internal/engine"
	"github.com/piwi3910/ShapePack/internal/model"
)

// Comparison collects the runs of several algorithms on the same input.
type Comparison struct {
	RunID     string      `json:"runId"`
	CreatedAt time.Time   `json:"createdAt"`
	Sheet     model.Sheet `json:"sheet"`
	Entries   []Stats     `json:"entries"`
}

// NewComparison builds a comparison from engine results, keeping their order.
func NewComparison(sheet model.Sheet, results []engine.ComparisonResult) *Comparison {
	c := &Comparison{
		RunID:     uuid.New().String()[:8],
		CreatedAt: time.Now(),
		Sheet:     sheet,
		Entries:   make([]Stats, 0, len(results)),
	}
	for _, r := range results {
		c.Entries = append(c.Entries, NewStats(r.Result, r.Elapsed))
	}
	return c
}

// Best returns the entry that placed the most shapes, breaking ties by fill
// percentage and then by elapsed time. Returns false for an empty comparison.
func (c *Comparison) Best() (Stats, bool) {
	if len(c.Entries) == 0 {
		return Stats{}, false
	}
	best := c.Entries[0]
	for _, e := range c.Entries[1:] {
		switch {
		case e.Placed != best.Placed:
			if e.Placed > best.Placed {
				best = e
			}
		case e.Percent != best.Percent:
			if e.Percent > best.Percent {
				best = e
			}
		case e.Elapsed < best.Elapsed:
			best = e
		}
	}
	return best, true
}

// jsonEntry is one element of comparison_results.json.
type jsonEntry struct {
	Algorithm    string  `json:"Algorithm"`
	Placed       int     `json:"Placed"`
	Percent      float64 `json:"Percent"`
	Time         float64 `json:"Time"`
	NotPlacedIDs []int   `json:"NotPlacedIDs"`
}

// WriteJSON writes the comparison as an indented JSON array with one object
// per algorithm. Time is in seconds.
func (c *Comparison) WriteJSON(path string) error {
	entries := make([]jsonEntry, len(c.Entries))
	for i, e := range c.Entries {
		entries[i] = jsonEntry{
			Algorithm:    e.Name,
			Placed:       e.Placed,
			Percent:      e.Percent,
			Time:         e.Elapsed.Seconds(),
			NotPlacedIDs: e.NotPlacedIDs,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal comparison: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write comparison: %w", err)
	}
	return nil
}

// FormatTable prints the comparison as a fixed-width console table.
func (c *Comparison) FormatTable(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%-12s | %-10s | %-12s | %-10s | %s\n",
		"Algorithm", "Placed", "Fill %", "Time (s)", "Not placed IDs"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 70)); err != nil {
		return err
	}
	for _, e := range c.Entries {
		if _, err := fmt.Fprintf(w, "%-12s | %-10d | %-12.2f | %-10.4f | %s\n",
			e.Name, e.Placed, e.Percent, e.Elapsed.Seconds(), formatIDs(e.NotPlacedIDs)); err != nil {
			return err
		}
	}
	return nil
}

// formatIDs renders ids as "[1, 2, 3]".
func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
