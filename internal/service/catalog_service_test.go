package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/haneulsoft/timetable-backend/internal/model"
	"github.com/rs/zerolog"
)

func TestSearchAppliesDisplayCap(t *testing.T) {
	rows := make([]model.RawCourseRow, 0, 300)
	for i := 0; i < 300; i++ {
		rows = append(rows, testRow(
			fmt.Sprintf("CS%03d", i),
			fmt.Sprintf("과목 %d", i),
			"월 10:30~12:00",
			"김철수",
		))
	}

	catalogService := NewCatalogService(&stubRowSource{rows: rows}, "2026", "1", 280, zerolog.Nop())
	if err := catalogService.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	result := catalogService.Search("")
	if result.Total != 300 || result.Shown != 280 || !result.Overflow {
		t.Errorf("result = total %d shown %d overflow %v, want 300/280/true", result.Total, result.Shown, result.Overflow)
	}
	if len(result.Sections) != 280 {
		t.Errorf("got %d sections, want 280", len(result.Sections))
	}
}

func TestSearchUnderCap(t *testing.T) {
	catalogService := NewCatalogService(&stubRowSource{rows: []model.RawCourseRow{
		testRow("CS101", "프로그래밍 기초", "월 10:30~12:00", "김철수"),
	}}, "2026", "1", 280, zerolog.Nop())
	if err := catalogService.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	result := catalogService.Search("cs101")
	if result.Total != 1 || result.Shown != 1 || result.Overflow {
		t.Errorf("result = %+v", result)
	}
}
