package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mortgage/internal/model"
)

const sampleCSV = `state,district,land_area,price,num_rooms
Kuala Lumpur,Setapak,900,420000,3
Kuala Lumpur,Setapak,1100,480000,3
Kuala Lumpur,Cheras,1000,510000,3
Kuala Lumpur,Cheras,1300,620000,4
Kuala Lumpur,Bangsar,1500,1200000,4
Kuala Lumpur,Bangsar,2100,1650000,5
`

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MODEL_SEED", "")
	t.Setenv("GBR_N_ESTIMATORS", "10")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func dataFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kl.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestVersion(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(out, "evaluate dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestRun(t *testing.T) {
	path := dataFile(t)

	out, err := runCmd(t, "run", "cheras", "--data", path, "--seed", "5")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	for _, want := range []string{"Evaluation Complete", "Cheras (score 1)", "MYR ", "Loan-to-Value Ratio"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_JSONIsReproducibleWithSeed(t *testing.T) {
	path := dataFile(t)

	decode := func() model.EvaluateResponse {
		out, err := runCmd(t, "run", "Bangsar", "--data", path, "--seed", "11", "--json", "--loan", "900000")
		if err != nil {
			t.Fatalf("run error = %v", err)
		}
		var resp model.EvaluateResponse
		if err := json.Unmarshal([]byte(out), &resp); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
		return resp
	}

	a, b := decode(), decode()
	if a.Result != b.Result {
		t.Errorf("seeded runs differ: %+v vs %+v", a.Result, b.Result)
	}
	if a.District != "Bangsar" || a.LocationScore != 0 {
		t.Errorf("location = (%q, %d)", a.District, a.LocationScore)
	}
}

func TestRun_Errors(t *testing.T) {
	path := dataFile(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "size out of range", args: []string{"run", "Cheras", "--data", path, "--size", "100"}, want: "SizeSqft"},
		{name: "unknown district", args: []string{"run", "Ampang", "--data", path}, want: "unknown district"},
		{name: "missing district arg", args: []string{"run", "--data", path}, want: "arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestDistricts(t *testing.T) {
	out, err := runCmd(t, "districts", "--data", dataFile(t), "--seed", "1")
	if err != nil {
		t.Fatalf("districts error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasSuffix(lines[2], "Setapak") {
		t.Errorf("districts output = %q", out)
	}
}
