package taxonomy

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.json
var tableFiles embed.FS

// Table base names, shared by the embedded files and override directories.
const (
	fileSkills       = "skills"
	fileAliases      = "aliases"
	fileDegrees      = "degrees"
	fileInstitutions = "institutions"
	fileCompanies    = "companies"
	fileSoftSkills   = "soft_skills"
	fileRegions      = "regions"
)

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// LoadError reports a table file that could not be read or decoded.
type LoadError struct {
	File  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load table %s: %v", e.File, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError reports tables that decoded but break a structural rule.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid tables: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid tables: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Default returns the embedded tables. They are decoded and validated once.
func Default() (*Tables, error) {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = Load("")
	})
	return defaultTables, defaultErr
}

// MustDefault returns the embedded tables, panicking if they are invalid.
func MustDefault() *Tables {
	tables, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to load embedded tables: %v", err))
	}
	return tables
}

// Load reads all tables. Files found in dir (name.json, name.yaml or name.yml) replace
// the embedded table of the same name; an empty dir loads only embedded tables.
func Load(dir string) (*Tables, error) {
	t := &Tables{}

	if err := decodeTable(dir, fileSkills, &t.Skills); err != nil {
		return nil, err
	}
	aliases := make(map[string][]string)
	if err := decodeTable(dir, fileAliases, &aliases); err != nil {
		return nil, err
	}
	t.Aliases = normalizeAliases(aliases)
	if err := decodeTable(dir, fileDegrees, &t.Degrees); err != nil {
		return nil, err
	}
	if err := decodeTable(dir, fileInstitutions, &t.Institutions); err != nil {
		return nil, err
	}
	if err := decodeTable(dir, fileCompanies, &t.Companies); err != nil {
		return nil, err
	}
	if err := decodeTable(dir, fileSoftSkills, &t.SoftSkills); err != nil {
		return nil, err
	}
	if err := decodeTable(dir, fileRegions, &t.Regions); err != nil {
		return nil, err
	}

	if err := Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the structural rules of a Tables value.
func Validate(t *Tables) error {
	if t == nil {
		return &ValidationError{Message: "tables are nil"}
	}
	if err := validator.New().Struct(t); err != nil {
		return &ValidationError{Message: "struct validation failed", Cause: err}
	}
	if len(t.SkillTerms()) == 0 {
		return &ValidationError{Message: "skill taxonomy has no terms"}
	}
	return nil
}

// decodeTable decodes the override file for name when one exists in dir, otherwise the
// embedded JSON file.
func decodeTable(dir, name string, out any) error {
	if dir != "" {
		for _, ext := range []string{".json", ".yaml", ".yml"} {
			path := filepath.Join(dir, name+ext)
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return &LoadError{File: path, Cause: err}
			}
			if ext == ".json" {
				err = json.Unmarshal(data, out)
			} else {
				err = yaml.Unmarshal(data, out)
			}
			if err != nil {
				return &LoadError{File: path, Cause: err}
			}
			return nil
		}
	}

	path := "data/" + name + ".json"
	data, err := tableFiles.ReadFile(path)
	if err != nil {
		return &LoadError{File: path, Cause: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &LoadError{File: path, Cause: err}
	}
	return nil
}

// normalizeAliases re-keys the alias table by AliasKey so lookups ignore spacing.
func normalizeAliases(raw map[string][]string) map[string][]string {
	out := make(map[string][]string, len(raw))
	for term, aliases := range raw {
		key := AliasKey(term)
		out[key] = append(out[key], aliases...)
	}
	return out
}
