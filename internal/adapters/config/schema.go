package config

import "gopkg.in/yaml.v3"

// Flofile represents the structure of the flo.yaml configuration file.
// Tasks are a list so declaration order is preserved; it is the stable
// scheduling tie-break.
type Flofile struct {
	Version string    `yaml:"version"`
	Strict  bool      `yaml:"strict"`
	Tasks   []TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in the configuration.
type TaskDTO struct {
	Name        string            `yaml:"name"`
	Creates     StringList        `yaml:"creates"`
	Depends     StringList        `yaml:"depends"`
	Command     Command           `yaml:"command"`
	Environment map[string]string `yaml:"environment"`
}

// StringList accepts either a single scalar or a sequence of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*s = StringList{single}
		return nil
	}

	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*s = StringList(list)
	return nil
}

// Command accepts either a shell command string or an argument list.
// A scalar is wrapped as ["sh", "-c", scalar].
type Command []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Command) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*c = Command{"sh", "-c", single}
		return nil
	}

	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*c = Command(list)
	return nil
}
