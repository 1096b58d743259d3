package transform

import (
	"encoding/json"
	"fmt"
	"strings"

	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/catalog/tags"
)

// Страницы витрины.
const (
	PageTreesAndShrubs = "trees-and-shrubs"
	PagePerennials     = "perennials"
	PageVeggies        = "veggies"
	PageHerbs          = "herbs"
	PageHouseplants    = "houseplants"
)

const sizeOption = "Size"

// теги-признаки, не попадающие в категории своей страницы
var (
	veggieOwnTags     = []string{"veggie", "herb"}
	houseplantOwnTags = []string{"reg water", "drought", "houseplant"}
)

// Select picks the expansion rule for an item of a category.
func Select(strategy model.Strategy, set tags.Set) (model.Expansion, error) {
	switch strategy {
	case model.StrategyPlants:
		if set.Has("tree") || set.Has("shrub") {
			return model.TreeShrubExpansion, nil
		}
		return model.PerennialExpansion, nil
	case model.StrategyVeggies:
		return model.VeggieHerbExpansion, nil
	case model.StrategyHouseplants:
		return model.HouseplantExpansion, nil
	}
	return 0, fmt.Errorf("unknown strategy %q", strategy)
}

// Expand turns the base row into the catalog rows of one product.
func Expand(exp model.Expansion, cat model.Category, it model.InventoryItem, set tags.Set, base model.CatalogRow) ([]model.CatalogRow, error) {
	switch exp {
	case model.TreeShrubExpansion:
		base.ProductPage = PageTreesAndShrubs
		base.Categories = slugs(set)
		return tiered(base, cat.Tiers[exp.String()])

	case model.PerennialExpansion:
		base.ProductPage = PagePerennials
		base.Categories = slugs(set)
		return tiered(base, cat.Tiers[exp.String()])

	case model.VeggieHerbExpansion:
		page, err := veggieOrHerb(it, set)
		if err != nil {
			return nil, err
		}
		bonus, err := bonusCategory(it)
		if err != nil {
			return nil, err
		}
		base.ProductPage = page
		base.Categories = slugs(set, veggieOwnTags...)
		if bonus != "" {
			base.Categories = append(base.Categories, bonus)
		}
		return tiered(base, cat.Tiers[exp.String()])

	case model.HouseplantExpansion:
		if it.Price == nil {
			return nil, &model.MissingFieldError{Field: "price", Item: it}
		}
		price := *it.Price
		base.ProductPage = PageHouseplants
		base.Categories = slugs(set, houseplantOwnTags...)
		base.OptionName1 = sizeOption
		base.OptionValue1 = it.Pot
		base.Price = &price
		return []model.CatalogRow{base}, nil
	}
	return nil, fmt.Errorf("unknown expansion %s", exp)
}

func tiered(base model.CatalogRow, tiers []model.Tier) ([]model.CatalogRow, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("no price tiers for %s", base.ProductPage)
	}
	rows := make([]model.CatalogRow, 0, len(tiers))
	for _, tier := range tiers {
		price := tier.Price
		row := base
		row.OptionName1 = sizeOption
		row.OptionValue1 = tier.Option
		row.Price = &price
		rows = append(rows, row)
	}
	return rows, nil
}

// ровно один из тегов veggie/herb
func veggieOrHerb(it model.InventoryItem, set tags.Set) (string, error) {
	veggie, herb := set.Has("veggie"), set.Has("herb")
	switch {
	case veggie && herb:
		return "", &model.AmbiguousClassificationError{Reason: "tagged both veggie and herb", Item: it}
	case veggie:
		return PageVeggies, nil
	case herb:
		return PageHerbs, nil
	}
	return "", &model.MissingClassificationError{Reason: "tagged neither veggie nor herb", Item: it}
}

// bonusCategory ищет "pepper"/"tomato" в любом поле товара.
func bonusCategory(it model.InventoryItem) (string, error) {
	raw, err := json.Marshal(it)
	if err != nil {
		return "", fmt.Errorf("serialize item: %w", err)
	}
	s := strings.ToLower(string(raw))
	pepper, tomato := strings.Contains(s, "pepper"), strings.Contains(s, "tomato")
	switch {
	case pepper && tomato:
		return "", &model.AmbiguousClassificationError{Reason: "mentions both pepper and tomato", Item: it}
	case pepper:
		return "peppers", nil
	case tomato:
		return "tomatoes", nil
	}
	return "", nil
}

func slugs(set tags.Set, skip ...string) []string {
	out := make([]string, 0, len(set))
next:
	for _, t := range set.Sorted() {
		for _, s := range skip {
			if t == s {
				continue next
			}
		}
		out = append(out, model.Slug(t))
	}
	return out
}
