package compare

import (
	"fmt"

	"github.com/ginjaninja78/hfm-metadata-compare/internal/config"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/schema"
)

// BuildRegistry assembles the property schemas for an application with
// customCount custom dimensions. The schema workbook, if configured, is
// applied over the defaults, and the config's schemas key over both.
func BuildRegistry(cfg *config.Config, customCount int) (*schema.Registry, error) {
	reg := schema.NewRegistry(customCount)

	if cfg.SchemaWorkbook != "" {
		fromWorkbook, err := schema.LoadWorkbook(cfg.SchemaWorkbook)
		if err != nil {
			return nil, fmt.Errorf("failed to load schema workbook: %w", err)
		}
		reg.Override(fromWorkbook)
	}

	overrides, err := cfg.SchemaOverrides()
	if err != nil {
		return nil, err
	}
	reg.Override(overrides)

	return reg, nil
}

// customNames picks the custom dimension names of a run. The files' own
// custom order wins; the configured names are used when neither file has
// one. It returns the names and the custom count for the Account schema.
func customNames(declared1, declared2 []string, configured []string) ([]string, int) {
	switch {
	case declared1 != nil:
		return declared1, len(declared1)
	case declared2 != nil:
		return declared2, len(declared2)
	case len(configured) > 0:
		return configured, len(configured)
	default:
		return nil, schema.DefaultCustomCount
	}
}
