package model

import "encoding/json"

// FlexString is a string field tolerant of the catalog feed's loose
// typing: the same column arrives as a JSON string in one row and a bare
// number (or null) in the next. CSV imports decode it verbatim.
type FlexString string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (f *FlexString) UnmarshalCSV(value string) error {
	*f = FlexString(value)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// RawCourseRow mirrors one record of the scraped course feed. Field tags
// keep the feed's original column names; everything is a FlexString and
// all coercion happens in the catalog builder.
type RawCourseRow struct {
	Year         FlexString `json:"syy" csv:"syy"`
	TermCode     FlexString `json:"smtDivCd" csv:"smtDivCd"`
	DivisionCode FlexString `json:"subjtCrseDivCd" csv:"subjtCrseDivCd"`
	DivisionName FlexString `json:"subjtCrseDivNm" csv:"subjtCrseDivNm"`
	CourseCode   FlexString `json:"subjtNo" csv:"subjtNo"`
	CourseName   FlexString `json:"subjtNm" csv:"subjtNm"`
	Instructor   FlexString `json:"chrgInstrNmLisup" csv:"chrgInstrNmLisup"`
	Department   FlexString `json:"deprtNm" csv:"deprtNm"`
	Category     FlexString `json:"subjcDivNm" csv:"subjcDivNm"`
	Credits      FlexString `json:"cdt" csv:"cdt"`
	LectureTime  FlexString `json:"lctreTm" csv:"lctreTm"`
	Classroom    FlexString `json:"lecrmNm" csv:"lecrmNm"`
	DeliveryMode FlexString `json:"tactUntctDivNm" csv:"tactUntctDivNm"`
	Capacity     FlexString `json:"atnlcPercpCnt" csv:"atnlcPercpCnt"`
	Enrollment   FlexString `json:"atnlcPcnt" csv:"atnlcPcnt"`
}
