// Package catalog loads the disease-treatment knowledge base and answers
// treatment lookups. Loading never fails: a hierarchical knowledge base is
// tried first, then a flat one, then the embedded default table.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
)

const (
	hierarchicalFile = "comprehensive_disease_treatments.json"
	flatFile         = "disease_treatments.json"
)

// Advisor answers treatment lookups against an immutable catalog.
type Advisor struct {
	catalog domain.Catalog
}

func NewAdvisor(catalog domain.Catalog) *Advisor {
	return &Advisor{catalog: catalog}
}

// Load builds an Advisor from the knowledge-base directory. Each tier's read
// or parse failure is absorbed and the next tier is tried; the embedded
// default table is the final tier and always succeeds.
func Load(dir string) *Advisor {
	type loader struct {
		source string
		load   func() (domain.Catalog, error)
	}
	loaders := []loader{
		{"hierarchical", func() (domain.Catalog, error) { return loadHierarchical(filepath.Join(dir, hierarchicalFile)) }},
		{"flat", func() (domain.Catalog, error) { return loadFlat(filepath.Join(dir, flatFile)) }},
	}

	for _, l := range loaders {
		catalog, err := l.load()
		if err != nil {
			if !os.IsNotExist(err) {
				slog.Warn("knowledge base unusable, falling through", "source", l.source, "error", err)
			}
			continue
		}
		slog.Info("knowledge base loaded", "source", l.source, "diseases", len(catalog))
		return NewAdvisor(catalog)
	}

	slog.Info("knowledge base loaded", "source", "defaults", "diseases", len(defaultCatalog()))
	return NewAdvisor(defaultCatalog())
}

// Lookup composes the full advice message for a disease. Exact, case-sensitive
// match; a miss returns a generic message naming the disease. Never fails.
func (a *Advisor) Lookup(diseaseName string) string {
	record, ok := a.catalog[diseaseName]
	if !ok {
		return fmt.Sprintf(
			"No specific treatment information available for %s. Please consult with a local agricultural extension service or plant pathologist for proper diagnosis and treatment recommendations.",
			diseaseName,
		)
	}
	return fmt.Sprintf("%s\n\nTreatment: %s\n\nPrevention: %s", record.Description, record.Treatment, record.Prevention)
}

func loadHierarchical(path string) (domain.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var nested map[string]map[string]map[string]domain.DiseaseRecord
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("parse hierarchical knowledge base: %w", err)
	}
	if len(nested) == 0 {
		return nil, fmt.Errorf("hierarchical knowledge base is empty")
	}
	return Flatten(nested), nil
}

func loadFlat(path string) (domain.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var flat map[string]domain.DiseaseRecord
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("parse flat knowledge base: %w", err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("flat knowledge base is empty")
	}
	catalog := make(domain.Catalog, len(flat))
	for name, record := range flat {
		if !record.Complete() {
			slog.Warn("dropping incomplete disease record", "disease", name)
			continue
		}
		catalog[name] = record
	}
	return catalog, nil
}

// Flatten discards the category and crop levels, keeping only the innermost
// disease-name key. When a disease name appears under more than one
// category/crop the later one wins; the overwrite is logged because nothing
// in the source guarantees disambiguation.
func Flatten(nested map[string]map[string]map[string]domain.DiseaseRecord) domain.Catalog {
	catalog := make(domain.Catalog)
	for category, crops := range nested {
		for crop, diseases := range crops {
			for name, record := range diseases {
				if !record.Complete() {
					slog.Warn("dropping incomplete disease record", "disease", name, "category", category, "crop", crop)
					continue
				}
				if _, exists := catalog[name]; exists {
					slog.Warn("disease name collision, last write wins", "disease", name, "category", category, "crop", crop)
				}
				catalog[name] = record
			}
		}
	}
	return catalog
}
