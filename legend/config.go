package legend

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DetectorAssignment assigns a crystal shape file to an array slot.
type DetectorAssignment struct {
	Slot SlotKey
	File string
}

// LoadDetectorConfig reads a detector configuration CSV with header
// columns tower, string, layer and filename, in any column order.
// Slot coordinates are range-checked against the array layout, each
// slot may be assigned at most once, and relative shape file paths
// are resolved against the directory of the configuration file.
func LoadDetectorConfig(path string) ([]DetectorAssignment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening detector config: %w", err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading detector config header from %s: %w", path, err)
	}
	column := make(map[string]int, len(header))
	for i, name := range header {
		column[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{"tower", "string", "layer", "filename"} {
		if _, ok := column[name]; !ok {
			return nil, fmt.Errorf("detector config %s: missing column %q", path, name)
		}
	}

	dir := filepath.Dir(path)
	var assignments []DetectorAssignment
	assigned := make(map[SlotKey]int)
	rowIdx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("detector config %s row %d: %w", path, rowIdx, err)
		}
		tower, err := parseSlotIndex(record[column["tower"]], "tower", towerCount)
		if err != nil {
			return nil, fmt.Errorf("detector config %s row %d: %w", path, rowIdx, err)
		}
		str, err := parseSlotIndex(record[column["string"]], "string", stringCount)
		if err != nil {
			return nil, fmt.Errorf("detector config %s row %d: %w", path, rowIdx, err)
		}
		layer, err := parseSlotIndex(record[column["layer"]], "layer", layerCount)
		if err != nil {
			return nil, fmt.Errorf("detector config %s row %d: %w", path, rowIdx, err)
		}
		slot := SlotKey{Tower: tower, String: str, Layer: layer}
		if prev, dup := assigned[slot]; dup {
			return nil, fmt.Errorf("detector config %s row %d: slot tower=%d string=%d layer=%d already assigned in row %d",
				path, rowIdx, tower, str, layer, prev)
		}
		assigned[slot] = rowIdx

		name := strings.TrimSpace(record[column["filename"]])
		if name == "" {
			return nil, fmt.Errorf("detector config %s row %d: empty filename", path, rowIdx)
		}
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		assignments = append(assignments, DetectorAssignment{Slot: slot, File: name})
		rowIdx++
	}

	if len(assignments) == 0 {
		return nil, fmt.Errorf("empty detector config: no data rows in %s", path)
	}
	return assignments, nil
}

// parseSlotIndex parses one slot coordinate and checks it against the
// array layout.
func parseSlotIndex(field, name string, count int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, field, err)
	}
	if v < 0 || v >= count {
		return 0, fmt.Errorf("%s %d out of range [0, %d]", name, v, count-1)
	}
	return v, nil
}
