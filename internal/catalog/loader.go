package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/haneulsoft/timetable-backend/internal/model"
)

// RowSource supplies the raw term rows the section catalog is built from.
// Implemented by the PostgreSQL course-row repository and by FileSource.
type RowSource interface {
	FetchRows(ctx context.Context) ([]model.RawCourseRow, error)
}

// FileSource reads raw rows straight from a local courses file, mirroring
// the original static-fetch deployment where no database is involved.
type FileSource struct {
	Path string
}

// NewFileSource returns a RowSource backed by a JSON or CSV file.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// FetchRows loads and decodes the file. The format is picked by
// extension: ".csv" decodes with gocsv, everything else is expected to be
// a JSON array of row objects.
func (f *FileSource) FetchRows(_ context.Context) ([]model.RawCourseRow, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var rows []model.RawCourseRow
	if strings.EqualFold(filepath.Ext(f.Path), ".csv") {
		if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
			return nil, fmt.Errorf("decode catalog csv: %w", err)
		}
		return rows, nil
	}

	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode catalog json: expected an array of rows: %w", err)
	}
	return rows, nil
}
