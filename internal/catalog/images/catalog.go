// Package images matches inventory items to candidate photo files by name.
package images

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"nursery-catalog/internal/catalog/match"
	"nursery-catalog/internal/catalog/model"
)

var (
	// цифры, скобки, точки, подчёркивания
	reJunk = regexp.MustCompile(`[\d()._]+`)
	// расширение как отдельный токен (после удаления точек)
	reExt = regexp.MustCompile(`\b(jpg|jpeg|png)\b`)
)

// CleanName приводит имя файла к виду, пригодному для сравнения с названием растения:
// "Echinacea_Purpurea (2).JPG" → "echinacea purpurea".
func CleanName(name string) string {
	s := strings.ToLower(foldAccents(name))
	s = reJunk.ReplaceAllString(s, " ")
	s = reExt.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// Échinacea → Echinacea
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Catalog: неизменяемый набор кандидатов, строится один раз на запуск.
type Catalog struct {
	candidates []model.ImageCandidate
}

// NewCatalog cleans every listed file once. folderPages maps a listing folder
// to the product page its photos belong to. Files without a download
// reference, and repeated references, are skipped.
func NewCatalog(files []model.ImageFile, folderPages map[string]string) *Catalog {
	seen := make(map[string]struct{}, len(files))
	c := &Catalog{candidates: make([]model.ImageCandidate, 0, len(files))}
	for _, f := range files {
		if f.Download == "" {
			continue
		}
		if _, dup := seen[f.Download]; dup {
			continue
		}
		seen[f.Download] = struct{}{}
		c.candidates = append(c.candidates, model.ImageCandidate{
			Name:        f.Name,
			Clean:       CleanName(f.Name),
			ID:          f.ID,
			Download:    f.Download,
			ProductPage: folderPages[f.Folder],
		})
	}
	return c
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.candidates)
}

// Candidates returns a copy of the catalog entries.
func (c *Catalog) Candidates() []model.ImageCandidate {
	if c == nil {
		return nil
	}
	return append([]model.ImageCandidate(nil), c.candidates...)
}

// Pages returns the sub-catalog of candidates filed under the given product
// pages. Without pages the catalog itself is returned.
func (c *Catalog) Pages(pages ...string) *Catalog {
	if c == nil || len(pages) == 0 {
		return c
	}
	want := make(map[string]struct{}, len(pages))
	for _, p := range pages {
		want[p] = struct{}{}
	}
	sub := &Catalog{}
	for _, cand := range c.candidates {
		if _, ok := want[cand.ProductPage]; ok {
			sub.candidates = append(sub.candidates, cand)
		}
	}
	return sub
}

func (c *Catalog) choices() []match.Choice {
	out := make([]match.Choice, 0, c.Len())
	if c == nil {
		return out
	}
	for _, cand := range c.candidates {
		out = append(out, match.Choice{Key: cand.Download, Value: cand.Clean})
	}
	return out
}
