package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"nursery-catalog/internal/catalog/model"
)

// TitleReviewHeader: колонки файла ручной сверки заголовков.
var TitleReviewHeader = []string{"SKU", "Match String", "Pot", "Title"}

var flatten = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// WriteTitleReview пишет карту заголовков как TSV, по строке на товар.
func WriteTitleReview(w io.Writer, titles *model.TitleMap) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(TitleReviewHeader); err != nil {
		return err
	}
	if titles != nil {
		for _, e := range titles.Entries() {
			rec := []string{
				strconv.Itoa(e.SKU),
				flatten.Replace(e.MatchString()),
				flatten.Replace(e.Pot),
				flatten.Replace(e.Title),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCategoryReport пишет страницы витрины и их категории:
// имя страницы, затем категории с отступом в два пробела.
func WriteCategoryReport(w io.Writer, sets model.CategorySets) error {
	bw := bufio.NewWriter(w)
	for _, page := range sets.Pages() {
		bw.WriteString(page)
		bw.WriteByte('\n')
		for _, c := range sets.Categories(page) {
			bw.WriteString("  ")
			bw.WriteString(c)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
