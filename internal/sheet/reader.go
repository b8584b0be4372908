// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package sheet reads the employee spreadsheet downloaded from the
// dashboard.
//
// Only the first worksheet is read. Its first row holds the column headers,
// matched by name so the column order does not matter. Every following
// non-blank row becomes one [models.Employee].
package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
	"github.com/MKhiriev/go-rpa-cadastro/models"
)

var (
	ErrOpenSpreadsheet = errors.New("could not open spreadsheet")
	ErrNoWorksheet     = errors.New("spreadsheet has no worksheet")
)

var columns = []string{
	models.ColumnName,
	models.ColumnSurname,
	models.ColumnEmail,
	models.ColumnRole,
	models.ColumnCompany,
	models.ColumnAddress,
	models.ColumnPhone,
}

// Reader turns a spreadsheet file into employee records.
type Reader struct {
	logger *logger.Logger
}

func NewReader(log *logger.Logger) *Reader {
	return &Reader{logger: log}
}

// Read returns the records of the first worksheet of the .xlsx at path.
// A sheet with headers only is not an error: it yields no records and a
// warning. Unknown columns are ignored; a known column that is absent
// leaves that field empty in every record.
func (r *Reader) Read(path string) ([]models.Employee, error) {
	r.logger.Info().Str("path", path).Msg("reading spreadsheet")

	f, err := excelize.OpenFile(path)
	if err != nil {
		r.logger.Error().Err(err).Str("path", path).Msg("could not open spreadsheet")
		return nil, fmt.Errorf("%w %s: %w", ErrOpenSpreadsheet, path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			r.logger.Warn().Err(closeErr).Msg("closing spreadsheet")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoWorksheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenSpreadsheet, path, err)
	}

	var employees []models.Employee
	if len(rows) > 0 {
		index := r.headerIndex(rows[0])
		for i, row := range rows[1:] {
			if blank(row) {
				continue
			}
			// +2: 1-based, and the header occupies row 1
			employees = append(employees, toEmployee(i+2, row, index))
		}
	}

	if len(employees) == 0 {
		r.logger.Warn().Str("sheet", sheets[0]).Msg("spreadsheet read, but it is empty")
	}
	r.logger.Info().Int("records", len(employees)).Msg("spreadsheet read")
	return employees, nil
}

// headerIndex maps each known column to its position in header.
func (r *Reader) headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(columns))
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, c := range columns {
			if strings.EqualFold(h, c) {
				index[c] = i
			}
		}
	}

	var missing []string
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		r.logger.Warn().Strs("columns", missing).Msg("spreadsheet is missing columns")
	}
	return index
}

func toEmployee(rowNum int, row []string, index map[string]int) models.Employee {
	cell := func(column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return models.Employee{
		Row:     rowNum,
		Name:    cell(models.ColumnName),
		Surname: cell(models.ColumnSurname),
		Email:   cell(models.ColumnEmail),
		Role:    cell(models.ColumnRole),
		Company: cell(models.ColumnCompany),
		Address: cell(models.ColumnAddress),
		Phone:   cell(models.ColumnPhone),
	}
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
