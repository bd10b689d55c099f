package audit

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aevon-lab/inspektr/internal/core/statistic"
	"gopkg.in/yaml.v3"
)

// ErrDefinitionNotFound is returned when no definition is loaded for an action.
var ErrDefinitionNotFound = errors.New("action definition not found")

// Definition declares an audited action: its metadata plus the resolver used to label it.
// Definitions are loaded at startup from YAML files and fingerprinted.
type Definition struct {
	Metadata    Metadata
	Resolver    string
	Fingerprint string // SHA-256 of the raw YAML file
}

// ActionResolver returns the resolver the definition names.
func (d Definition) ActionResolver() ActionResolver {
	r, err := ResolverByName(d.Resolver)
	if err != nil {
		// Resolver names are validated on load.
		return DefaultResolver{}
	}
	return r
}

// rawDefinition is the on-disk YAML shape.
type rawDefinition struct {
	Action          string   `yaml:"action"`
	ApplicationCode string   `yaml:"application_code"`
	Precisions      []string `yaml:"precisions"`
	Resolver        string   `yaml:"resolver"`
	ResourceHint    string   `yaml:"resource_hint"`
}

// DefinitionRepository loads action definitions from *.yaml files in a directory.
// Each file holds exactly one definition. Definitions are loaded once and kept in memory.
type DefinitionRepository struct {
	dir         string
	definitions map[string]Definition // keyed by action
}

// NewDefinitionRepository creates a repository and eagerly loads every definition in dir.
// A missing directory yields an empty repository.
func NewDefinitionRepository(dir string) (*DefinitionRepository, error) {
	repo := &DefinitionRepository{
		dir:         dir,
		definitions: make(map[string]Definition),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *DefinitionRepository) load() error {
	info, err := os.Stat(r.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("action definition dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("action definition path %q is not a directory", r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading action definition dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(r.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading definition file %s: %w", path, err)
		}

		var raw rawDefinition
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing definition file %s: %w", path, err)
		}
		if raw.Action == "" {
			continue // empty or comment-only file
		}

		if strings.TrimSpace(raw.ApplicationCode) == "" {
			return fmt.Errorf("action %q: application_code must not be empty", raw.Action)
		}

		precisions, err := statistic.ParsePrecisionSet(raw.Precisions)
		if err != nil {
			return fmt.Errorf("action %q: %w", raw.Action, err)
		}

		if _, err := ResolverByName(raw.Resolver); err != nil {
			return fmt.Errorf("action %q: %w", raw.Action, err)
		}

		if _, exists := r.definitions[raw.Action]; exists {
			return fmt.Errorf("action %q: duplicate definition (check multiple YAML files)", raw.Action)
		}

		resolver := strings.ToLower(strings.TrimSpace(raw.Resolver))
		if resolver == "" {
			resolver = ResolverDefault
		}
		if resolver == ResolverResource && strings.TrimSpace(raw.ResourceHint) == "" {
			return fmt.Errorf("action %q: resolver %q needs a resource_hint", raw.Action, resolver)
		}

		r.definitions[raw.Action] = Definition{
			Metadata: Metadata{
				Action:          raw.Action,
				ApplicationCode: raw.ApplicationCode,
				Precisions:      precisions,
				ResourceHint:    raw.ResourceHint,
			},
			Resolver:    resolver,
			Fingerprint: fmt.Sprintf("%x", sha256.Sum256(data)),
		}
	}
	return nil
}

// Get returns the definition for action, or an error if none is loaded.
func (r *DefinitionRepository) Get(_ context.Context, action string) (*Definition, error) {
	def, ok := r.definitions[action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDefinitionNotFound, action)
	}
	return &def, nil
}

// List returns the loaded definitions sorted by action, optionally filtered by application code.
func (r *DefinitionRepository) List(_ context.Context, applicationCode string) ([]Definition, error) {
	var out []Definition
	for _, def := range r.definitions {
		if applicationCode != "" && def.Metadata.ApplicationCode != applicationCode {
			continue
		}
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Metadata.Action < out[j].Metadata.Action })
	return out, nil
}

// Definitions returns every loaded definition.
func (r *DefinitionRepository) Definitions() []Definition {
	defs, _ := r.List(context.Background(), "")
	return defs
}
