package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rxKeepNums = regexp.MustCompile(`[^\d\.\,\-]`)
	rxDecComma = regexp.MustCompile(`^-?\d+,\d{1,2}$`)
)

// ParsePrice парсит "4.99", "$4.99", "1,234.50", "4,99", " 12 " и т.п.
// Запятая считается десятичной, только если после неё одна-две цифры и точки нет.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// убрать неразрывные/узкие пробелы, валюту и прочий мусор
	repl := strings.NewReplacer("\u00A0", "", "\u202F", "", " ", "", "\t", "")
	s = rxKeepNums.ReplaceAllString(repl.Replace(s), "")
	switch {
	case rxDecComma.MatchString(s):
		s = strings.Replace(s, ",", ".", 1)
	default:
		s = strings.ReplaceAll(s, ",", "")
	}
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
