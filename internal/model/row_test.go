package model

import (
	"encoding/json"
	"testing"
)

func TestFlexStringUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want FlexString
	}{
		{"string", `"CS101"`, "CS101"},
		{"integer", `40`, "40"},
		{"float", `1.5`, "1.5"},
		{"null", `null`, ""},
		{"boolean", `true`, "true"},
		{"empty string", `""`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexString
			if err := json.Unmarshal([]byte(tt.data), &f); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.data, err)
			}
			if f != tt.want {
				t.Errorf("got %q, want %q", f, tt.want)
			}
		})
	}
}

func TestRawCourseRowMixedTypes(t *testing.T) {
	// The feed mixes strings and numbers for the same columns row to row.
	payload := `{"syy": 2026, "smtDivCd": "1", "subjtNo": "CS101", "cdt": 3, "atnlcPercpCnt": null}`

	var row RawCourseRow
	if err := json.Unmarshal([]byte(payload), &row); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if row.Year != "2026" || row.TermCode != "1" || row.Credits != "3" || row.Capacity != "" {
		t.Errorf("unexpected row: %+v", row)
	}
}

func TestFlexStringUnmarshalCSV(t *testing.T) {
	var f FlexString
	if err := f.UnmarshalCSV(" E11 101 "); err != nil {
		t.Fatalf("unmarshal csv: %v", err)
	}
	if f != " E11 101 " {
		t.Errorf("csv values decode verbatim, got %q", f)
	}
}
