package model

import (
	"sort"
	"strings"
)

// TitleKey: идентичность товара для ручной сверки заголовков.
type TitleKey struct {
	SKU            int
	ScientificName string
	CommonName     string
	Pot            string
}

// MatchString: научное + обиходное название одной строкой.
func (k TitleKey) MatchString() string {
	return strings.TrimSpace(k.ScientificName + " " + k.CommonName)
}

type TitleEntry struct {
	TitleKey
	Title string
}

// TitleMap records the generated title of every distinct item key, in first
// seen order.
type TitleMap struct {
	titles map[TitleKey]string
	order  []TitleKey
}

func NewTitleMap() *TitleMap {
	return &TitleMap{titles: make(map[TitleKey]string)}
}

// Add записывает заголовок; повторный ключ перезаписывает значение, но не порядок.
func (m *TitleMap) Add(k TitleKey, title string) {
	if _, ok := m.titles[k]; !ok {
		m.order = append(m.order, k)
	}
	m.titles[k] = title
}

func (m *TitleMap) Len() int { return len(m.order) }

// Entries returns one entry per key in first seen order.
func (m *TitleMap) Entries() []TitleEntry {
	out := make([]TitleEntry, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, TitleEntry{TitleKey: k, Title: m.titles[k]})
	}
	return out
}

// Duplicates: заголовки, которые получили несколько разных товаров.
func (m *TitleMap) Duplicates() map[string][]TitleKey {
	by := make(map[string][]TitleKey)
	for _, k := range m.order {
		t := m.titles[k]
		by[t] = append(by[t], k)
	}
	for t, keys := range by {
		if len(keys) < 2 {
			delete(by, t)
		}
	}
	return by
}

// CategorySets: категории, реально выданные на каждую страницу витрины.
type CategorySets map[string]map[string]struct{}

func (c CategorySets) Add(page string, categories ...string) {
	set, ok := c[page]
	if !ok {
		set = make(map[string]struct{})
		c[page] = set
	}
	for _, cat := range categories {
		set[cat] = struct{}{}
	}
}

// Pages returns the product pages in alphabetical order.
func (c CategorySets) Pages() []string {
	out := make([]string, 0, len(c))
	for p := range c {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Categories returns the categories of page in alphabetical order.
func (c CategorySets) Categories(page string) []string {
	out := make([]string, 0, len(c[page]))
	for cat := range c[page] {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}
