package utils

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bukit Jalil", "bukit jalil"},
		{"  Bkt.  Jalil ", "bukit jalil"},
		{"Tmn Tun Dr Ismail", "taman tun dr ismail"},
		{"KL City", "kuala lumpur city"},
		{"Sri-Petaling", "seri petaling"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveName(t *testing.T) {
	districts := []string{"Bangsar", "Bukit Jalil", "Cheras", "Kepong", "Seri Petaling", "Setapak"}

	tests := []struct {
		name   string
		query  string
		want   string
		wantOK bool
	}{
		{name: "exact", query: "Cheras", want: "Cheras", wantOK: true},
		{name: "case insensitive", query: "bangsar", want: "Bangsar", wantOK: true},
		{name: "abbreviation", query: "Bkt Jalil", want: "Bukit Jalil", wantOK: true},
		{name: "alias spelling", query: "Sri Petaling", want: "Seri Petaling", wantOK: true},
		{name: "unique substring", query: "kepo", want: "Kepong", wantOK: true},
		{name: "ambiguous substring", query: "se", wantOK: false},
		{name: "unknown", query: "Penang", wantOK: false},
		{name: "empty", query: "   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveName(tt.query, districts)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ResolveName(%q) = (%q, %v); want (%q, %v)", tt.query, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
