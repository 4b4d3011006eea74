package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wellness-go/internal/models"
	"wellness-go/internal/scoring"

	"go.uber.org/zap"
)

// TemplateCatalog serves questionnaire templates loaded from YAML files.
// It is read-only once loaded.
type TemplateCatalog struct {
	templates map[string]*models.AssessmentTemplate
}

// LoadTemplateCatalog reads every *.yaml / *.yml file in dir. Templates are
// keyed by their canonical assessment type.
func LoadTemplateCatalog(dir string, log *zap.Logger) (*TemplateCatalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading templates dir %s: %w", dir, err)
	}

	catalog := &TemplateCatalog{templates: make(map[string]*models.AssessmentTemplate)}
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		tmpl, err := models.LoadTemplate(path)
		if err != nil {
			return nil, err
		}
		key := scoring.NormalizeType(tmpl.AssessmentType)
		tmpl.AssessmentType = key
		if tmpl.Scoring.MaxScore == nil {
			log.Warn("Template has no max_score; normalized scores will always be 100",
				zap.String("assessment_type", key), zap.String("file", path))
		}
		if _, dup := catalog.templates[key]; dup {
			log.Warn("Duplicate template, keeping the last one read", zap.String("assessment_type", key), zap.String("file", path))
		}
		catalog.templates[key] = tmpl
	}
	log.Info("Assessment templates loaded", zap.Int("count", len(catalog.templates)))
	return catalog, nil
}

// Get returns the template for any alias of an assessment type.
func (c *TemplateCatalog) Get(assessmentType string) (*models.AssessmentTemplate, bool) {
	tmpl, ok := c.templates[scoring.NormalizeType(assessmentType)]
	return tmpl, ok
}

// Types lists the canonical types in the catalog, sorted.
func (c *TemplateCatalog) Types() []string {
	types := make([]string, 0, len(c.templates))
	for t := range c.templates {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// GetTemplates returns the templates for the requested types, skipping
// unknown ones. An empty request returns the whole catalog.
func (c *TemplateCatalog) GetTemplates(_ context.Context, types []string) ([]models.AssessmentTemplate, error) {
	if len(types) == 0 {
		types = c.Types()
	}
	result := make([]models.AssessmentTemplate, 0, len(types))
	for _, t := range scoring.NormalizeTypes(types) {
		if tmpl, ok := c.templates[t]; ok {
			result = append(result, *tmpl)
		}
	}
	return result, nil
}
