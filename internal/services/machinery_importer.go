package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"machinery-registry/internal/entities"
	"machinery-registry/internal/repositories"
	"machinery-registry/pkg/constants"
	apperrors "machinery-registry/pkg/errors"
)

var (
	// ErrUnreadableWorkbook is returned when the file is not a workbook excelize can open.
	ErrUnreadableWorkbook = errors.New("workbook could not be opened")
	ErrNoImportHeader     = errors.New("no header row with code and name columns")
)

// ImportResult counts what happened to the data rows of an import.
type ImportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// MachineryImporter loads machines from a spreadsheet. The header row is found
// by looking for a "code" and a "name" column on any sheet; other recognised
// columns are type, brand, model, year and notes. Codes that already exist are
// skipped, never overwritten.
type MachineryImporter struct {
	machineryRepo repositories.MachineryRepositoryInterface
	logger        *zap.Logger
}

func NewMachineryImporter(machineryRepo repositories.MachineryRepositoryInterface, logger *zap.Logger) *MachineryImporter {
	return &MachineryImporter{machineryRepo: machineryRepo, logger: logger}
}

type columnIndex map[string]int

func (c columnIndex) get(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

var importColumns = map[string][]string{
	"code":  {"code", "inventory", "plate"},
	"name":  {"name"},
	"type":  {"type", "category"},
	"brand": {"brand", "make"},
	"model": {"model"},
	"year":  {"year"},
	"notes": {"notes", "comment"},
}

func (i *MachineryImporter) ImportFile(ctx context.Context, path string) (ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %s: %v", ErrUnreadableWorkbook, path, err)
	}
	defer f.Close()

	rows, header, cols := findHeader(f)
	if header < 0 {
		return ImportResult{}, fmt.Errorf("%w in %s", ErrNoImportHeader, path)
	}

	var result ImportResult
	for r := header + 1; r < len(rows); r++ {
		row := rows[r]
		code := cols.get(row, "code")
		name := cols.get(row, "name")
		if code == "" && name == "" {
			continue
		}
		if code == "" || name == "" {
			i.logger.Warn("import: row without code or name", zap.Int("row", r+1))
			result.Failed++
			continue
		}

		machine := entities.Machinery{
			Code:   code,
			Name:   name,
			Type:   cols.get(row, "type"),
			Brand:  nullString(cols.get(row, "brand")),
			Model:  nullString(cols.get(row, "model")),
			Notes:  nullString(cols.get(row, "notes")),
			Status: constants.MachineryStatusAvailable,
		}
		if machine.Type == "" {
			machine.Type = "Other"
		}
		if y := cols.get(row, "year"); y != "" {
			year, err := strconv.Atoi(y)
			if err != nil {
				i.logger.Warn("import: bad year", zap.Int("row", r+1), zap.String("year", y))
				result.Failed++
				continue
			}
			machine.Year = null.IntFrom(year)
		}

		if _, err := i.machineryRepo.Create(ctx, nil, machine); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				result.Skipped++
				continue
			}
			i.logger.Error("import: insert failed", zap.Int("row", r+1), zap.String("code", code), zap.Error(err))
			result.Failed++
			continue
		}
		result.Created++
	}

	i.logger.Info("machinery import finished",
		zap.String("file", path),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func findHeader(f *excelize.File) ([][]string, int, columnIndex) {
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for r, row := range rows {
			cols := columnIndex{}
			for c, cell := range row {
				label := strings.ToLower(strings.TrimSpace(cell))
				for key, aliases := range importColumns {
					if _, taken := cols[key]; taken {
						continue
					}
					for _, alias := range aliases {
						if strings.Contains(label, alias) {
							cols[key] = c
							break
						}
					}
				}
			}
			_, hasCode := cols["code"]
			_, hasName := cols["name"]
			if hasCode && hasName {
				return rows, r, cols
			}
		}
	}
	return nil, -1, nil
}

func nullString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
