package match

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Scorer: метрика схожести двух строк в диапазоне 0..100 (точное совпадение = 100).
type Scorer func(a, b string) int

// Ratio: 2*LCS/(len(a)+len(b)), в процентах.
func Ratio(a, b string) int {
	return intr(ratio(a, b))
}

func ratio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0
	}
	if a == b {
		return 100
	}
	return 200 * float64(edlib.LCS(a, b)) / float64(la+lb)
}

// PartialRatio сравнивает короткую строку с каждым окном той же длины в длинной
// и возвращает лучший результат.
func PartialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	short := string(ra)
	best := 0.0
	for i := 0; i+len(ra) <= len(rb); i++ {
		if r := ratio(short, string(rb[i:i+len(ra)])); r > best {
			best = r
			if best >= 100 {
				break
			}
		}
	}
	return intr(best)
}

// TokenSortRatio считает Ratio после сортировки токенов, порядок слов не важен,
// а лишние/недостающие слова штрафуются.
func TokenSortRatio(a, b string) int {
	return Ratio(tokenSort(Process(a)), tokenSort(Process(b)))
}

// PartialTokenSortRatio: как TokenSortRatio, но через PartialRatio.
func PartialTokenSortRatio(a, b string) int {
	return PartialRatio(tokenSort(Process(a)), tokenSort(Process(b)))
}

// TokenSetRatio сравнивает множества токенов: порядок и повторы слов не важны,
// строка, целиком входящая в другую, даёт 100.
func TokenSetRatio(a, b string) int {
	return tokenSetRatio(a, b, Ratio)
}

// PartialTokenSetRatio: TokenSetRatio через PartialRatio.
func PartialTokenSetRatio(a, b string) int {
	return tokenSetRatio(a, b, PartialRatio)
}

func tokenSetRatio(a, b string, score Scorer) int {
	pa, pb := Process(a), Process(b)
	if pa == "" || pb == "" {
		return 0
	}
	sect, onlyA, onlyB := tokenSets(pa, pb)
	s := strings.Join(sect, " ")
	withA := strings.TrimSpace(s + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(s + " " + strings.Join(onlyB, " "))
	return max(score(s, withA), score(s, withB), score(withA, withB))
}

// WRatio: взвешенная комбинация метрик. Частичные метрики включаются только
// при заметной разнице длин (от 1.5 раз) и идут с понижающим коэффициентом,
// поэтому "full shade" против "shade" даёт 90, а не 100.
func WRatio(a, b string) int {
	pa, pb := Process(a), Process(b)
	if pa == "" || pb == "" {
		return 0
	}
	const unbaseScale = 0.95
	partialScale := 0.90

	base := float64(Ratio(pa, pb))
	la, lb := utf8.RuneCountInString(pa), utf8.RuneCountInString(pb)
	lenRatio := float64(max(la, lb)) / float64(min(la, lb))
	if lenRatio > 8 {
		partialScale = 0.6
	}

	if lenRatio < 1.5 {
		tsor := float64(TokenSortRatio(pa, pb)) * unbaseScale
		tser := float64(TokenSetRatio(pa, pb)) * unbaseScale
		return intr(max(base, tsor, tser))
	}

	partial := float64(PartialRatio(pa, pb)) * partialScale
	ptsor := float64(PartialTokenSortRatio(pa, pb)) * unbaseScale * partialScale
	ptser := float64(PartialTokenSetRatio(pa, pb)) * unbaseScale * partialScale
	return intr(max(base, partial, ptsor, ptser))
}

func intr(f float64) int { return int(math.Round(f)) }
