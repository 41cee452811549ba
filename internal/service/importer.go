package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/types"
)

// Spreadsheet column layout for bulk food import. The first row is treated
// as a header. Macro columns are per 100 grams.
//
//	A: name  B: calories  C: protein  D: fats  E: carbs
const (
	importColName = iota
	importColCalories
	importColProtein
	importColFats
	importColCarbs
)

// ImportSpreadsheet parses an xlsx workbook, validates each row, inserts
// the valid foods for the user, and reports invalid rows by number. Rows
// that are entirely empty are ignored. An error is returned only when the
// workbook itself cannot be read or the insert fails; per-row validation
// failures land in the result.
func (s *FoodService) ImportSpreadsheet(ctx context.Context, userID uuid.UUID, r io.Reader) (*types.ImportResult, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() { _ = workbook.Close() }()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	result := &types.ImportResult{}
	var foods []models.Food

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if rowIsEmpty(row) {
			continue
		}

		rowNum := i + 1
		food, errs := parseImportRow(row)
		if len(errs) > 0 {
			result.Skipped = append(result.Skipped, types.ImportRowError{Row: rowNum, Errors: errs})
			continue
		}
		food.UserID = userID
		foods = append(foods, food)
	}

	if len(foods) > 0 {
		if err := s.db.WithContext(ctx).Create(&foods).Error; err != nil {
			return nil, fmt.Errorf("failed to insert imported foods: %w", err)
		}
		s.cache.InvalidateResource(ctx, dashboardResource, userID)
	}
	result.Imported = len(foods)
	return result, nil
}

func parseImportRow(row []string) (models.Food, []string) {
	var errs []string

	name := strings.TrimSpace(cell(row, importColName))
	if name == "" {
		errs = append(errs, "name is required")
	}

	parse := func(col int, label string) float64 {
		raw := strings.TrimSpace(cell(row, col))
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s value %q", label, raw))
			return 0
		}
		if value < 0 {
			errs = append(errs, fmt.Sprintf("%s must not be negative", label))
			return 0
		}
		return value
	}

	food := models.Food{
		Name:            name,
		CaloriesPer100g: parse(importColCalories, "calories"),
		ProteinPer100g:  parse(importColProtein, "protein"),
		FatsPer100g:     parse(importColFats, "fats"),
		CarbsPer100g:    parse(importColCarbs, "carbs"),
	}
	return food, errs
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

func rowIsEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
