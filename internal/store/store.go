// Package store loads and saves the editable lookup tables: the category
// keyword table and the slang normalization table.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"

	"gopkg.in/yaml.v3"
)

// Default file names looked up when no explicit path is configured.
const (
	DefaultCategoriesFile = "categories.yaml"
	DefaultSlangFile      = "slang.yaml"
)

// CategoryStore manages loading and saving of the lookup tables
type CategoryStore struct {
	CategoriesFile string
	SlangFile      string
	logger         logging.Logger
}

// NewCategoryStore creates a new store. Empty file names fall back to the
// default names, searched in the standard locations.
func NewCategoryStore(categoriesFile, slangFile string, logger logging.Logger) *CategoryStore {
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		SlangFile:      slangFile,
		logger:         logging.OrDefault(logger),
	}
}

// FindConfigFile looks for a configuration file in standard locations:
// the working directory, ./config, ./database and ~/.config/kharcha.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(homeDir, ".config", "kharcha", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// readTable resolves filename and returns its contents. A missing file is not
// an error: it returns nil data so callers keep the built-in table.
func (s *CategoryStore) readTable(filename, fallback string) ([]byte, string, error) {
	if filename == "" {
		filename = fallback
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Debug("Table file not found, using built-in table",
			logging.Field{Key: logging.FieldInputFile, Value: filename})
		return nil, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("error reading %s: %w", path, err)
	}
	return data, path, nil
}

// LoadCategories loads the primary category table. It accepts either a
// top-level "categories:" list or a bare list. A nil result means no file
// was found.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	data, path, err := s.readTable(s.CategoriesFile, DefaultCategoriesFile)
	if err != nil || data == nil {
		return nil, err
	}

	var wrapped models.CategoriesConfig
	if err := yaml.Unmarshal(data, &wrapped); err == nil && len(wrapped.Categories) > 0 {
		s.logger.Debug("Loaded categories",
			logging.Field{Key: logging.FieldInputFile, Value: path},
			logging.Field{Key: logging.FieldCount, Value: len(wrapped.Categories)})
		return wrapped.Categories, nil
	}

	var bare []models.CategoryConfig
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", path, err)
	}
	s.logger.Debug("Loaded categories",
		logging.Field{Key: logging.FieldInputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(bare)})
	return bare, nil
}

// LoadSlang loads the slang normalization table from a "mappings:" list.
// A nil result means no file was found.
func (s *CategoryStore) LoadSlang() ([]models.SlangMapping, error) {
	data, path, err := s.readTable(s.SlangFile, DefaultSlangFile)
	if err != nil || data == nil {
		return nil, err
	}

	var cfg models.SlangConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing slang file %s: %w", path, err)
	}
	s.logger.Debug("Loaded slang table",
		logging.Field{Key: logging.FieldInputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(cfg.Mappings)})
	return cfg.Mappings, nil
}

// SaveCategories writes categories to path under a "categories:" key.
func (s *CategoryStore) SaveCategories(path string, categories []models.CategoryConfig) error {
	return s.writeYAML(path, models.CategoriesConfig{Categories: categories})
}

// SaveSlang writes mappings to path under a "mappings:" key.
func (s *CategoryStore) SaveSlang(path string, mappings []models.SlangMapping) error {
	return s.writeYAML(path, models.SlangConfig{Mappings: mappings})
}

func (s *CategoryStore) writeYAML(path string, v interface{}) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	s.logger.Info("Saved table", logging.Field{Key: logging.FieldOutputFile, Value: path})
	return nil
}
