// Package config provides the configuration loader for flo.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/flo/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	mu       sync.Mutex
	filename string
}

// NewLoader creates a Loader reading the default configuration file name.
func NewLoader() *Loader {
	return &Loader{filename: domain.FloFileName}
}

// SetFilename selects an alternate configuration file. This only affects
// which task list is resolved; run semantics are unchanged.
func (l *Loader) SetFilename(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if name != "" {
		l.filename = name
	}
}

// Load reads the configuration from the given working directory.
func (l *Loader) Load(cwd string) (*domain.Graph, error) {
	l.mu.Lock()
	filename := l.filename
	l.mu.Unlock()
	return Load(filepath.Join(cwd, filename))
}

// Load reads a configuration file from the given path and returns the
// dependency graph built from the resolved task list.
func Load(path string) (*domain.Graph, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var flofile Flofile
	if err := yaml.Unmarshal(data, &flofile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	tasks := make([]domain.Task, 0, len(flofile.Tasks))
	for i, dto := range flofile.Tasks {
		if len(dto.Creates) == 0 {
			return nil, zerr.With(zerr.New("task declares no outputs"), "index", i)
		}

		// Tasks are identified by name when given, else by their first output.
		id := dto.Name
		if id == "" {
			id = dto.Creates[0]
		}

		tasks = append(tasks, domain.Task{
			ID:          domain.NewInternedString(id),
			Inputs:      internStrings(dto.Depends),
			Outputs:     internStrings(dto.Creates),
			Command:     dto.Command,
			Environment: dto.Environment,
			Index:       i,
		})
	}

	g, err := domain.BuildGraph(tasks)
	if err != nil {
		return nil, err
	}

	if flofile.Strict {
		if err := g.CheckInputsProduced(); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func internStrings(strs []string) []domain.InternedString {
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}
