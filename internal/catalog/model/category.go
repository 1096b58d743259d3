package model

import "fmt"

// TagConfig: словарь тегов категории.
type TagConfig struct {
	Valid      []string          `yaml:"valid" json:"valid"`
	Exclude    []string          `yaml:"exclude" json:"exclude"`
	Replace    map[string]string `yaml:"replace" json:"replace"`
	Exceptions map[string]string `yaml:"exceptions" json:"exceptions"`
}

// Expansion is the rule that turns one inventory item into catalog rows.
type Expansion int

const (
	TreeShrubExpansion Expansion = iota
	PerennialExpansion
	VeggieHerbExpansion
	HouseplantExpansion
)

func (e Expansion) String() string {
	switch e {
	case TreeShrubExpansion:
		return "tree-shrub"
	case PerennialExpansion:
		return "perennial"
	case VeggieHerbExpansion:
		return "veggie-herb"
	case HouseplantExpansion:
		return "houseplant"
	}
	return fmt.Sprintf("expansion(%d)", int(e))
}

// Strategy выбирает правило развёртки для категории листа.
type Strategy string

const (
	StrategyPlants      Strategy = "plants"
	StrategyVeggies     Strategy = "veggies"
	StrategyHouseplants Strategy = "houseplants"
)

// Tier: вариант размера горшка с фиксированной ценой.
type Tier struct {
	Option string  `yaml:"option" json:"option"`
	Price  float64 `yaml:"price" json:"price"`
}

// Category: полная статическая конфигурация одной категории.
type Category struct {
	Name     string    `yaml:"name" json:"name"`
	Sheet    string    `yaml:"sheet" json:"sheet"`
	Title    string    `yaml:"title" json:"title"`
	Strategy Strategy  `yaml:"strategy" json:"strategy"`
	Tags     TagConfig `yaml:"tags" json:"tags"`
	// Tiers по имени развёртки: "tree-shrub", "perennial", "veggie-herb".
	Tiers map[string][]Tier `yaml:"tiers" json:"tiers"`
	// Pages: страницы витрины, из папок которых берутся фото.
	Pages []string `yaml:"pages" json:"pages"`
}

// Thresholds для нечёткого сопоставления (0..100).
type Thresholds struct {
	Tag   int `yaml:"tag" json:"tag" mapstructure:"tag"`
	Image int `yaml:"image" json:"image" mapstructure:"image"`
}

const (
	DefaultTagThreshold   = 95
	DefaultImageThreshold = 75
)

// DefaultThresholds returns the tag (95) and image (75) thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Tag: DefaultTagThreshold, Image: DefaultImageThreshold}
}
