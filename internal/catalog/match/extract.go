package match

import "sort"

// Choice: кандидат с ключом (например, ссылка на файл → очищенное имя).
type Choice struct {
	Key   string
	Value string
}

// Match: результат сравнения запроса с кандидатом.
type Match struct {
	Value string
	Score int
	Key   string
	Index int // позиция кандидата во входном списке
}

// BestMatch returns the best scoring candidate. Ties go to the earliest
// candidate. ok is false only when there are no candidates.
// A nil scorer means WRatio.
func BestMatch(query string, candidates []string, scorer Scorer) (m Match, ok bool) {
	if scorer == nil {
		scorer = WRatio
	}
	q := Process(query)
	m.Score = -1
	for i, c := range candidates {
		if s := scorer(q, Process(c)); s > m.Score {
			m = Match{Value: c, Score: s, Key: c, Index: i}
		}
	}
	return m, m.Score >= 0
}

// BestMatches scores every choice and returns up to limit results, best first.
// Equal scores keep the input order. limit <= 0 returns everything.
func BestMatches(query string, choices []Choice, scorer Scorer, limit int) []Match {
	if scorer == nil {
		scorer = WRatio
	}
	q := Process(query)
	out := make([]Match, 0, len(choices))
	for i, c := range choices {
		out = append(out, Match{Value: c.Value, Key: c.Key, Score: scorer(q, Process(c.Value)), Index: i})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
