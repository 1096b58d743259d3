package model

import (
	"errors"
	"fmt"
)

// SchemaError: строка листа не прошла проверку формы.
type SchemaError struct {
	Index int
	Row   []string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("row %d: %v (row=%q)", e.Index, e.Err, e.Row)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// UnresolvedTagError is returned when a tag resolves through neither the
// vocabulary, the exclude list nor the exceptions.
type UnresolvedTagError struct {
	Tag  string
	Item *InventoryItem
}

func (e *UnresolvedTagError) Error() string {
	if e.Item != nil {
		return fmt.Sprintf("unresolved tag %q (sku %d)", e.Tag, e.Item.SKU)
	}
	return fmt.Sprintf("unresolved tag %q", e.Tag)
}

// AmbiguousClassificationError: взаимоисключающие признаки заданы одновременно.
type AmbiguousClassificationError struct {
	Reason string
	Item   InventoryItem
}

func (e *AmbiguousClassificationError) Error() string {
	return fmt.Sprintf("ambiguous classification (sku %d): %s", e.Item.SKU, e.Reason)
}

// MissingClassificationError: не задан ни один из обязательных признаков.
type MissingClassificationError struct {
	Reason string
	Item   InventoryItem
}

func (e *MissingClassificationError) Error() string {
	return fmt.Sprintf("missing classification (sku %d): %s", e.Item.SKU, e.Reason)
}

// FormatError: шаблон заголовка ссылается на неизвестное поле.
type FormatError struct {
	Template string
	Field    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("title template %q: unknown field %q", e.Template, e.Field)
}

// MissingFieldError: у товара нет значения, без которого строку не собрать.
type MissingFieldError struct {
	Field string
	Item  InventoryItem
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("sku %d: missing %s", e.Item.SKU, e.Field)
}

// ErrUnknownCategory is returned for a category name absent from the configuration.
var ErrUnknownCategory = errors.New("unknown category")
