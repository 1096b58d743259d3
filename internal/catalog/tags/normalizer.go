// Package tags resolves free-text inventory tags against a category vocabulary.
package tags

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"nursery-catalog/internal/catalog/match"
	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/metrics"
)

const memoSize = 1024

// Стратегии разрешения тега (порядок проверки важен).
const (
	StrategyValid     = "valid"
	StrategyExclude   = "exclude"
	StrategyException = "exception"
)

var separators = regexp.MustCompile(`[,/]`)

type resolution struct {
	tag      string
	strategy string
}

// Normalizer применяет словарь категории к сырому полю тегов.
// Результаты разрешения отдельных тегов кэшируются.
type Normalizer struct {
	cfg       model.TagConfig
	threshold int
	folded    map[string]string // Process(exception key) -> value
	memo      *lru.Cache[string, resolution]
	logger    zerolog.Logger
}

// New returns a normalizer for cfg. threshold <= 0 falls back to the default (95).
func New(cfg model.TagConfig, threshold int, logger zerolog.Logger) *Normalizer {
	if threshold <= 0 {
		threshold = model.DefaultTagThreshold
	}
	folded := make(map[string]string, len(cfg.Exceptions))
	for k, v := range cfg.Exceptions {
		folded[match.Process(k)] = v
	}
	memo, _ := lru.New[string, resolution](memoSize) // ошибка только при size <= 0
	return &Normalizer{cfg: cfg, threshold: threshold, folded: folded, memo: memo, logger: logger}
}

// Split режет поле по запятым и слешам, пустые токены пропускает.
func Split(raw string) []string {
	var out []string
	for _, p := range separators.Split(raw, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Normalize resolves every sub-tag of raw and returns the deduplicated set of
// canonical tags. The first tag that cannot be resolved aborts with
// *model.UnresolvedTagError.
func (n *Normalizer) Normalize(raw string) (Set, error) {
	out := make(Set)
	for _, token := range Split(raw) {
		tag, ok, err := n.Resolve(token)
		if err != nil {
			return nil, err
		}
		if ok {
			out.Add(tag)
		}
	}
	return out, nil
}

// Resolve maps one raw tag. ok is false when the tag matched the exclude list
// and must be dropped.
func (n *Normalizer) Resolve(token string) (tag string, ok bool, err error) {
	if r, hit := n.memo.Get(token); hit {
		metrics.TagResolutionsTotal.WithLabelValues(r.strategy).Inc()
		return r.tag, r.strategy != StrategyExclude, nil
	}

	r, err := n.resolve(token)
	if err != nil {
		return "", false, err
	}
	n.memo.Add(token, r)
	metrics.TagResolutionsTotal.WithLabelValues(r.strategy).Inc()
	return r.tag, r.strategy != StrategyExclude, nil
}

func (n *Normalizer) resolve(token string) (resolution, error) {
	valid, okValid := match.BestMatch(token, n.cfg.Valid, match.WRatio)
	excl, okExcl := match.BestMatch(token, n.cfg.Exclude, match.WRatio)

	n.logger.Debug().
		Str("tag", token).
		Str("valid", valid.Value).
		Int("valid_score", valid.Score).
		Str("exclude", excl.Value).
		Int("exclude_score", excl.Score).
		Msg("tag candidates")

	// (1) словарь важнее исключений: тег, похожий и на то и на другое, остаётся
	if okValid && valid.Score >= n.threshold {
		canon := valid.Value
		if r, ok := n.cfg.Replace[canon]; ok {
			canon = r
		}
		return resolution{tag: canon, strategy: StrategyValid}, nil
	}

	// (2) исключения: молча выбрасываем
	if okExcl && excl.Score >= n.threshold {
		return resolution{tag: excl.Value, strategy: StrategyExclude}, nil
	}

	// (3) точные исключения: сначала как есть, потом без регистра/пунктуации
	if v, ok := n.cfg.Exceptions[token]; ok {
		return resolution{tag: v, strategy: StrategyException}, nil
	}
	if v, ok := n.folded[match.Process(token)]; ok {
		return resolution{tag: v, strategy: StrategyException}, nil
	}

	return resolution{}, &model.UnresolvedTagError{Tag: token}
}
