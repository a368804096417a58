package features

import "sort"

// LocationEncoder assigns each distinct district an integer code equal to
// its index in the lexicographically sorted district list. The code carries
// no ordinal meaning about location quality.
type LocationEncoder struct {
	districts []string
	codes     map[string]int
}

// NewLocationEncoder builds an encoder from the districts observed in a
// dataset. Duplicates are collapsed.
func NewLocationEncoder(districts []string) *LocationEncoder {
	seen := make(map[string]struct{}, len(districts))
	unique := make([]string, 0, len(districts))
	for _, d := range districts {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		unique = append(unique, d)
	}
	sort.Strings(unique)

	codes := make(map[string]int, len(unique))
	for i, d := range unique {
		codes[d] = i
	}
	return &LocationEncoder{districts: unique, codes: codes}
}

// Encode returns the location score of a district
func (e *LocationEncoder) Encode(district string) (int, bool) {
	code, ok := e.codes[district]
	return code, ok
}

// Districts returns the sorted district list. The slice is a copy.
func (e *LocationEncoder) Districts() []string {
	out := make([]string, len(e.districts))
	copy(out, e.districts)
	return out
}

// Len returns the number of distinct districts
func (e *LocationEncoder) Len() int {
	return len(e.districts)
}
