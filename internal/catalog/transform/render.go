package transform

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"nursery-catalog/internal/catalog/model"
)

var (
	placeholder = regexp.MustCompile(`\{(\w+)\}`)
	emptyParens = regexp.MustCompile(`\s*\(\s*\)`)
)

// RenderTitle подставляет поля товара в шаблон вида "{scientific_name} ({common_name})".
// Пустые скобки от незаполненных полей убираются.
func RenderTitle(tmpl string, it model.InventoryItem) (string, error) {
	var ferr error
	out := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := it.Field(name)
		if !ok && ferr == nil {
			ferr = &model.FormatError{Template: tmpl, Field: name}
		}
		return v
	})
	if ferr != nil {
		return "", ferr
	}
	out = emptyParens.ReplaceAllString(out, "")
	return strings.Join(strings.Fields(out), " "), nil
}

// Describe builds the product description HTML from the info and zone fields.
func Describe(it model.InventoryItem) string {
	var b strings.Builder
	if it.Info != "" {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(it.Info))
	}
	if it.Zone != "" {
		fmt.Fprintf(&b, "<p><strong>Zone:</strong> %s</p>", html.EscapeString(it.Zone))
	}
	return b.String()
}
