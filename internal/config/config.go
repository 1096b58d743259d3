package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"nursery-catalog/internal/catalog/model"
)

// ImageFolder связывает папку с фото и страницу витрины.
type ImageFolder struct {
	ID   string `mapstructure:"id"`
	Page string `mapstructure:"page"`
}

type Config struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
	LogLevel     string   `mapstructure:"log_level"`
	LogFile      string   `mapstructure:"log_file"`
	MaxUploadMB  int      `mapstructure:"max_upload_mb"`

	// источники: Google Sheets/Drive либо локальные файлы
	SpreadsheetID   string        `mapstructure:"spreadsheet_id"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	Workbook        string        `mapstructure:"workbook"`
	ImageListing    string        `mapstructure:"image_listing"`
	ImageFolders    []ImageFolder `mapstructure:"image_folders"`

	TagThreshold   int `mapstructure:"tag_threshold"`
	ImageThreshold int `mapstructure:"image_threshold"`

	SnapshotDB  string `mapstructure:"snapshot_db"`
	SnapshotRun string `mapstructure:"snapshot_run"`
	OutputDir   string `mapstructure:"output_dir"`
	Vocabulary  string `mapstructure:"vocabulary"`

	// Categories заполняется из Vocabulary или встроенных словарей.
	Categories []model.Category `mapstructure:"-"`
}

// Load reads the optional config file at path (empty means ./nursery.yaml if
// present), then NURSERY_* environment variables, on top of the defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("NURSERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("nursery")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Vocabulary != "" {
		cats, err := LoadCategories(cfg.Vocabulary)
		if err != nil {
			return Config{}, err
		}
		cfg.Categories = cats
	} else {
		cfg.Categories = DefaultCategories()
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8082)
	v.SetDefault("allow_origins", []string{"*"})
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "logs/nursery-catalog.log")
	v.SetDefault("max_upload_mb", 64)
	v.SetDefault("credentials_file", "credentials.json")
	v.SetDefault("tag_threshold", model.DefaultTagThreshold)
	v.SetDefault("image_threshold", model.DefaultImageThreshold)
	v.SetDefault("snapshot_db", "snapshot.db")
	v.SetDefault("output_dir", "out")

	// без этих ключей AutomaticEnv их не увидит при Unmarshal
	for _, k := range []string{"spreadsheet_id", "workbook", "image_listing", "snapshot_run", "vocabulary"} {
		v.SetDefault(k, "")
	}
}

func (c Config) validate() error {
	if c.TagThreshold < 1 || c.TagThreshold > 100 {
		return fmt.Errorf("tag_threshold must be within 1..100, got %d", c.TagThreshold)
	}
	if c.ImageThreshold < 1 || c.ImageThreshold > 100 {
		return fmt.Errorf("image_threshold must be within 1..100, got %d", c.ImageThreshold)
	}
	// без папок листинг ни к одной странице не привязан
	if c.ImageListing != "" && len(c.ImageFolders) == 0 {
		return errors.New("image_listing needs image_folders to map files to pages")
	}
	for _, f := range c.ImageFolders {
		if f.ID == "" || f.Page == "" {
			return errors.New("image_folders entries need both id and page")
		}
	}
	return nil
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Thresholds returns the matching thresholds.
func (c Config) Thresholds() model.Thresholds {
	return model.Thresholds{Tag: c.TagThreshold, Image: c.ImageThreshold}
}

// FolderPages: папка → страница витрины.
func (c Config) FolderPages() map[string]string {
	out := make(map[string]string, len(c.ImageFolders))
	for _, f := range c.ImageFolders {
		out[f.ID] = f.Page
	}
	return out
}

// Category ищет категорию по имени.
func (c Config) Category(name string) (model.Category, error) {
	for _, cat := range c.Categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, nil
		}
	}
	return model.Category{}, fmt.Errorf("%w: %s", model.ErrUnknownCategory, name)
}
