package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"nursery-catalog/internal/catalog/model"
)

// Цены по умолчанию для развёрток.
var (
	treeShrubTiers  = []model.Tier{{Option: "gal", Price: 8.99}}
	perennialTiers  = []model.Tier{{Option: `4"`, Price: 4.99}, {Option: `qt or 5"`, Price: 6.99}, {Option: "gal", Price: 8.99}}
	veggieHerbTiers = []model.Tier{{Option: `3.5"`, Price: 3.99}, {Option: `4"`, Price: 4.99}}
)

// DefaultCategories returns the built-in plants, veggies and houseplants
// configuration.
func DefaultCategories() []model.Category {
	return []model.Category{
		{
			Name:     "plants",
			Sheet:    "Plants",
			Title:    "{scientific_name} ({common_name})",
			Strategy: model.StrategyPlants,
			Tags: model.TagConfig{
				Valid: []string{
					"rain garden", "pollinator", "deer", "native", "sun", "part-shade",
					"shade", "drought", "groundcover", "reg water", "tree", "shrub",
				},
				Exclude: []string{"perennial"},
				Replace: map[string]string{},
				Exceptions: map[string]string{
					"full shade":       "shade",
					"drought tolerant": "drought",
					"part sun":         "part-shade",
					"trees":            "tree",
					"shrubs":           "shrub",
				},
			},
			Tiers: map[string][]model.Tier{
				model.TreeShrubExpansion.String(): treeShrubTiers,
				model.PerennialExpansion.String(): perennialTiers,
			},
			Pages: []string{"perennials", "trees-and-shrubs"},
		},
		{
			Name:     "veggies",
			Sheet:    "Veggies",
			Title:    "{common_name}",
			Strategy: model.StrategyVeggies,
			Tags: model.TagConfig{
				Valid: []string{
					"sun", "part-shade", "shade", "drought", "rain garden", "pollinator",
					"reg water", "deer", "native", "herb", "veggie",
				},
				Replace: map[string]string{},
				Exceptions: map[string]string{
					"veggies":    "veggie",
					"vegetable":  "veggie",
					"vegetables": "veggie",
					"herbs":      "herb",
				},
			},
			Tiers: map[string][]model.Tier{
				model.VeggieHerbExpansion.String(): veggieHerbTiers,
			},
			Pages: []string{"veggies", "herbs"},
		},
		{
			Name:     "houseplants",
			Sheet:    "Houseplants",
			Title:    "{common_name} ({scientific_name})",
			Strategy: model.StrategyHouseplants,
			Tags: model.TagConfig{
				Valid: []string{
					"sun", "part-shade", "shade", "drought", "rain garden", "pollinator",
					"deer", "native", "reg water", "houseplant", "bright light",
					"indirect light", "herb",
				},
				Replace: map[string]string{
					"sun":        "bright light",
					"shade":      "indirect light",
					"part-shade": "indirect light",
				},
				Exceptions: map[string]string{
					"bright direct light": "bright light",
					"full sun if outside": "bright light",
					"low light":           "indirect light",
					"full shade":          "indirect light",
				},
			},
			Pages: []string{"houseplants"},
		},
	}
}

type vocabularyFile struct {
	Categories []model.Category `yaml:"categories"`
}

// LoadCategories reads a YAML vocabulary file. Unknown keys are rejected.
func LoadCategories(path string) ([]model.Category, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var vf vocabularyFile
	if err := dec.Decode(&vf); err != nil {
		return nil, fmt.Errorf("decode vocabulary %s: %w", path, err)
	}
	if len(vf.Categories) == 0 {
		return nil, errors.New("vocabulary: no categories")
	}
	for _, c := range vf.Categories {
		if err := validateCategory(c); err != nil {
			return nil, fmt.Errorf("vocabulary %s: %w", path, err)
		}
	}
	return vf.Categories, nil
}

func validateCategory(c model.Category) error {
	if c.Name == "" || c.Title == "" {
		return errors.New("category needs name and title")
	}
	switch c.Strategy {
	case model.StrategyPlants, model.StrategyVeggies, model.StrategyHouseplants:
	default:
		return fmt.Errorf("category %s: unknown strategy %q", c.Name, c.Strategy)
	}
	if len(c.Tags.Valid) == 0 {
		return fmt.Errorf("category %s: empty valid vocabulary", c.Name)
	}
	valid := make(map[string]bool, len(c.Tags.Valid))
	for _, t := range c.Tags.Valid {
		valid[t] = true
	}
	// цели замены должны быть каноническими, иначе повторная нормализация не идемпотентна
	for from, to := range c.Tags.Replace {
		if !valid[to] {
			return fmt.Errorf("category %s: replace %q -> %q targets a tag outside the vocabulary", c.Name, from, to)
		}
	}
	for _, need := range requiredTiers[c.Strategy] {
		if len(c.Tiers[need.String()]) == 0 {
			return fmt.Errorf("category %s: no %s price tiers", c.Name, need)
		}
	}
	return nil
}

var requiredTiers = map[model.Strategy][]model.Expansion{
	model.StrategyPlants:  {model.TreeShrubExpansion, model.PerennialExpansion},
	model.StrategyVeggies: {model.VeggieHerbExpansion},
}
