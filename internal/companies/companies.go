// Package companies loads and filters the company metadata that drives scraping and
// industry grouping.
package companies

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/hiring-radar/internal/types"
	yaml "gopkg.in/yaml.v3"
)

// File is the on-disk shape of a company metadata file.
type File struct {
	Companies []types.CompanyMeta `json:"companies" yaml:"companies"`
}

// Load reads company metadata from a JSON or YAML file. The format is chosen by
// extension (.yaml/.yml are YAML, everything else is JSON). Every record is validated.
func Load(path string) ([]types.CompanyMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to decode", Cause: err}
	}

	if err := Validate(f.Companies); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid company record", Cause: err}
	}
	return f.Companies, nil
}

// Validate checks each record and rejects duplicate names.
func Validate(list []types.CompanyMeta) error {
	seen := make(map[string]bool, len(list))
	for i := range list {
		if err := list[i].Validate(); err != nil {
			return fmt.Errorf("company %d (%q): %w", i, list[i].Name, err)
		}
		if seen[list[i].Name] {
			return fmt.Errorf("duplicate company %q", list[i].Name)
		}
		seen[list[i].Name] = true
	}
	return nil
}

// ByIndustry returns the companies in the given industry, or all of them when
// industry is empty.
func ByIndustry(list []types.CompanyMeta, industry string) []types.CompanyMeta {
	if industry == "" {
		return list
	}
	var out []types.CompanyMeta
	for _, c := range list {
		if c.Industry == industry {
			out = append(out, c)
		}
	}
	return out
}

// ByPriority returns the companies with the given priority, or all of them when
// priority is empty.
func ByPriority(list []types.CompanyMeta, priority string) []types.CompanyMeta {
	if priority == "" {
		return list
	}
	var out []types.CompanyMeta
	for _, c := range list {
		if c.Priority == priority {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the company with the given name.
func Find(list []types.CompanyMeta, name string) (types.CompanyMeta, bool) {
	for _, c := range list {
		if c.Name == name {
			return c, true
		}
	}
	return types.CompanyMeta{}, false
}

// Names returns the company names in file order.
func Names(list []types.CompanyMeta) []string {
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}
	return names
}
