package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadRows — выберет парсер по расширению и вернёт строки листа как есть
// (позиционно), пропустив skip верхних строк. sheet — имя листа для
// .xlsx/.xls; пустое имя означает первый лист. Для .csv/.tsv игнорируется.
func ReadRows(r io.Reader, filename, sheet string, skip int) ([][]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		rows, err = readXLSX(r, sheet)
	case ".xls":
		rows, err = readXLS(r, sheet)
	case ".csv":
		rows, err = readCSV(r, 0)
	case ".tsv":
		rows, err = readCSV(r, '\t')
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
	if err != nil {
		return nil, err
	}
	if skip >= len(rows) {
		return nil, nil
	}
	if skip > 0 {
		rows = rows[skip:]
	}
	return rows, nil
}

// ReadMaps — то же, но строки возвращаются как map[заголовок]значение.
// headerRow — номер строки заголовков (1-based).
func ReadMaps(r io.Reader, filename string, headerRow int) ([]map[string]string, error) {
	rows, err := ReadRows(r, filename, "", 0)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	h := pickHeader(rows, headerRow)
	return rowsToMaps(rows, h, headerRow), nil
}

// pickHeader — берёт строку заголовков (в нижнем регистре) и подставляет
// Column N для пустых.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			v = fmt.Sprintf("column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToMaps — конвертирует AoA в []map по заголовкам, пропуская полностью пустые строки.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	start := headerRow // первая строка после заголовков
	if start < 1 {
		start = 1
	}
	var out []map[string]string
	for r := start; r < len(rows); r++ {
		rec := rows[r]
		m := map[string]string{}
		empty := true
		for c := 0; c < len(headers); c++ {
			var v string
			if c < len(rec) {
				v = strings.TrimSpace(rec[c])
			}
			if v != "" {
				empty = false
			}
			m[headers[c]] = v
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}
