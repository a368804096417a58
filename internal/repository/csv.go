package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mortgage/internal/model"
)

// CSVRepository reads the property dataset from a flat file
type CSVRepository struct {
	path string
}

// NewCSVRepository creates a loader for the CSV file at path
func NewCSVRepository(path string) *CSVRepository {
	return &CSVRepository{path: path}
}

// LoadDataset reads the whole file. A missing file, a missing required
// column or an unparsable numeric cell is an error.
func (r *CSVRepository) LoadDataset(ctx context.Context) (*model.Dataset, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", r.path, err)
	}
	defer f.Close()

	ds, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("csv: %s: %w", r.path, err)
	}
	ds.Origin = r.path
	return ds, nil
}

// ReadCSV parses a dataset with a header row from any reader
func ReadCSV(ctx context.Context, src io.Reader) (*model.Dataset, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	names := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		names[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	hasRooms, err := checkColumns(names)
	if err != nil {
		return nil, err
	}

	ds := &model.Dataset{HasRooms: hasRooms}
	for line := 2; ; line++ {
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRecord(row, index, hasRooms)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

func parseRecord(row []string, index map[string]int, hasRooms bool) (model.PropertyRecord, error) {
	cell := func(col string) string {
		v := strings.TrimSpace(row[index[col]])
		if isMissing(v) {
			return ""
		}
		return v
	}

	rec := model.PropertyRecord{
		State:    cell(ColumnState),
		District: cell(ColumnDistrict),
	}

	var err error
	if rec.LandArea, err = parseNumber(cell(ColumnLandArea)); err != nil {
		return rec, fmt.Errorf("%s: %w", ColumnLandArea, err)
	}
	if rec.Price, err = parseNumber(cell(ColumnPrice)); err != nil {
		return rec, fmt.Errorf("%s: %w", ColumnPrice, err)
	}
	if hasRooms {
		if rec.NumRooms, err = parseCount(cell(ColumnNumRooms)); err != nil {
			return rec, fmt.Errorf("%s: %w", ColumnNumRooms, err)
		}
	}
	return rec, nil
}
