package match

import (
	"regexp"
	"sort"
	"strings"
)

// всё, что не буква и не цифра, превращаем в пробел
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Process: стандартная подготовка строки перед сравнением:
// нижний регистр, пунктуация → пробел, схлопывание пробелов.
func Process(s string) string {
	if s == "" {
		return ""
	}
	return collapseSpaces(nonWord.ReplaceAllString(strings.ToLower(s), " "))
}

// Лексикографическая сортировка токенов (устойчиво к порядку слов)
func tokenSort(s string) string {
	f := strings.Fields(s)
	sort.Strings(f)
	return strings.Join(f, " ")
}

// Схлопывание пробелов
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// tokenSets делит токены двух строк на пересечение и разности (всё отсортировано).
func tokenSets(a, b string) (sect, onlyA, onlyB []string) {
	inA := make(map[string]struct{})
	for _, t := range strings.Fields(a) {
		inA[t] = struct{}{}
	}
	inB := make(map[string]struct{})
	for _, t := range strings.Fields(b) {
		inB[t] = struct{}{}
	}
	for t := range inA {
		if _, ok := inB[t]; ok {
			sect = append(sect, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range inB {
		if _, ok := inA[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(sect)
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	return sect, onlyA, onlyB
}
