package images

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"nursery-catalog/internal/catalog/match"
	"nursery-catalog/internal/catalog/model"
)

const defaultLimit = 5

// Matcher ранжирует фото по нескольким метрикам сразу.
type Matcher struct {
	Threshold int
	Limit     int // top-K на каждую метрику
	Scorers   []match.Scorer
	Logger    zerolog.Logger
}

// NewMatcher returns a matcher scoring with token-set and token-sort ratios.
// threshold <= 0 falls back to the default (75).
func NewMatcher(threshold int, logger zerolog.Logger) *Matcher {
	if threshold <= 0 {
		threshold = model.DefaultImageThreshold
	}
	return &Matcher{
		Threshold: threshold,
		Limit:     defaultLimit,
		Scorers:   []match.Scorer{match.TokenSetRatio, match.TokenSortRatio},
		Logger:    logger,
	}
}

// Query собирает строку запроса из названий товара.
func Query(item model.InventoryItem) string {
	return strings.ToLower(strings.TrimSpace(item.ScientificName + " " + item.CommonName))
}

// Match returns download references of the candidates that clear the
// threshold, in ASCENDING score order: the best candidate is the last element.
// Callers that want one photo take the last entry. nil means no candidate.
func (m *Matcher) Match(item model.InventoryItem, c *Catalog) []string {
	if c.Len() == 0 {
		return nil
	}
	query := Query(item)
	choices := c.choices()

	lists := make([][]match.Match, 0, len(m.Scorers))
	for _, scorer := range m.Scorers {
		lists = append(lists, match.BestMatches(query, choices, scorer, m.Limit))
	}

	var out []string
	for _, r := range ascending(mergeMax(lists...), m.Threshold) {
		out = append(out, r.Key)
	}

	m.Logger.Debug().
		Int("sku", item.SKU).
		Str("query", query).
		Strs("images", out).
		Msg("image candidates")

	if len(out) == 0 {
		return nil
	}
	return out
}

// mergeMax объединяет результаты метрик по ключу (ссылке), оставляя максимальный балл.
// Порядок: по первому появлению ключа.
func mergeMax(lists ...[]match.Match) []match.Match {
	idx := make(map[string]int)
	var out []match.Match
	for _, l := range lists {
		for _, r := range l {
			if i, ok := idx[r.Key]; ok {
				if r.Score > out[i].Score {
					out[i] = r
				}
				continue
			}
			idx[r.Key] = len(out)
			out = append(out, r)
		}
	}
	return out
}

// ascending фильтрует по порогу и сортирует по возрастанию балла (стабильно).
func ascending(rs []match.Match, threshold int) []match.Match {
	out := make([]match.Match, 0, len(rs))
	for _, r := range rs {
		if r.Score >= threshold {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}
