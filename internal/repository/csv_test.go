package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "properties.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestCSVRepository_LoadDataset(t *testing.T) {
	path := writeCSV(t, `state,district,land_area,price,num_rooms
Kuala Lumpur,Bangsar,1500,"1,200,000",4
Kuala Lumpur,Cheras,1100,560000,3.0
Kuala Lumpur,Kepong,,380000,2
Selangor,Petaling Jaya,1200,700000,NA
`)

	ds, err := NewCSVRepository(path).LoadDataset(context.Background())
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}

	if !ds.HasRooms {
		t.Error("HasRooms = false, want true")
	}
	if ds.Origin != path {
		t.Errorf("Origin = %q, want %q", ds.Origin, path)
	}
	if len(ds.Records) != 4 {
		t.Fatalf("got %d records, want 4", len(ds.Records))
	}

	bangsar := ds.Records[0]
	if bangsar.District != "Bangsar" || *bangsar.Price != 1200000 || *bangsar.LandArea != 1500 || *bangsar.NumRooms != 4 {
		t.Errorf("first record = %+v", bangsar)
	}
	if *ds.Records[1].NumRooms != 3 {
		t.Errorf("rooms 3.0 parsed as %d", *ds.Records[1].NumRooms)
	}
	if ds.Records[2].LandArea != nil {
		t.Errorf("empty land_area should be nil, got %v", *ds.Records[2].LandArea)
	}
	if ds.Records[3].NumRooms != nil {
		t.Errorf("NA num_rooms should be nil, got %v", *ds.Records[3].NumRooms)
	}
}

func TestCSVRepository_NoRoomsColumn(t *testing.T) {
	path := writeCSV(t, "\ufeffdistrict, state ,price,land_area,extra\nSetapak,Kuala Lumpur,420000,900,x\n")

	ds, err := NewCSVRepository(path).LoadDataset(context.Background())
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if ds.HasRooms {
		t.Error("HasRooms = true, want false")
	}
	if len(ds.Records) != 1 || ds.Records[0].State != "Kuala Lumpur" || ds.Records[0].NumRooms != nil {
		t.Errorf("records = %+v", ds.Records)
	}
}

func TestCSVRepository_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing price column",
			content: "state,district,land_area\nKuala Lumpur,Cheras,1000\n",
			wantErr: ErrMissingColumn,
			wantMsg: "price",
		},
		{
			name:    "empty file",
			content: "",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "malformed price",
			content: "state,district,land_area,price\nKuala Lumpur,Cheras,1000,abc\n",
			wantErr: ErrMalformedValue,
			wantMsg: "line 2",
		},
		{
			name:    "fractional rooms",
			content: "state,district,land_area,price,num_rooms\nKuala Lumpur,Cheras,1000,500000,2.5\n",
			wantErr: ErrMalformedValue,
			wantMsg: "num_rooms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVRepository(writeCSV(t, tt.content)).LoadDataset(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadDataset() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestCSVRepository_MissingFile(t *testing.T) {
	_, err := NewCSVRepository(filepath.Join(t.TempDir(), "nope.csv")).LoadDataset(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadDataset() error = %v, want os.ErrNotExist", err)
	}
}

func TestIsMissing(t *testing.T) {
	for _, s := range []string{"", "  ", "NA", "nan", "NULL", "None", "n/a"} {
		if !isMissing(s) {
			t.Errorf("isMissing(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"0", "Cheras", "nana"} {
		if isMissing(s) {
			t.Errorf("isMissing(%q) = true, want false", s)
		}
	}
}
