package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"mortgage/internal/model"
)

// Column names of the property dataset
const (
	ColumnState    = "state"
	ColumnDistrict = "district"
	ColumnLandArea = "land_area"
	ColumnPrice    = "price"
	ColumnNumRooms = "num_rooms"
)

// RequiredColumns must be present in every dataset source
var RequiredColumns = []string{ColumnState, ColumnDistrict, ColumnLandArea, ColumnPrice}

var (
	// ErrMissingColumn is returned when a required column is absent
	ErrMissingColumn = errors.New("dataset: required column missing")
	// ErrMalformedValue is returned when a numeric cell cannot be parsed
	ErrMalformedValue = errors.New("dataset: malformed value")
)

// DatasetLoader loads the full property dataset once at startup
type DatasetLoader interface {
	LoadDataset(ctx context.Context) (*model.Dataset, error)
}

// checkColumns verifies the required columns and reports whether the
// optional rooms column exists
func checkColumns(present []string) (bool, error) {
	set := make(map[string]bool, len(present))
	for _, c := range present {
		set[strings.TrimSpace(c)] = true
	}

	var missing []string
	for _, c := range RequiredColumns {
		if !set[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return false, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return set[ColumnNumRooms], nil
}

// isMissing reports whether a raw cell counts as a missing value
func isMissing(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "na", "n/a", "nan", "null", "none":
		return true
	}
	return false
}

// parseNumber parses a numeric cell, accepting thousands separators.
// Missing cells yield nil.
func parseNumber(s string) (*float64, error) {
	if isMissing(s) {
		return nil, nil
	}
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %q is not a number", ErrMalformedValue, s)
	}
	if math.IsNaN(v) {
		return nil, nil
	}
	return &v, nil
}

// parseCount parses an integral cell such as "3" or "3.0"
func parseCount(s string) (*int, error) {
	f, err := parseNumber(s)
	if err != nil || f == nil {
		return nil, err
	}
	if *f != math.Trunc(*f) {
		return nil, fmt.Errorf("%w: %q is not a whole number", ErrMalformedValue, s)
	}
	n := int(*f)
	return &n, nil
}
