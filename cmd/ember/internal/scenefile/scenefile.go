// Package scenefile decodes declarative scene YAML into templates.
//
// A scene file is one node description, nested to any depth:
//
//	name: title
//	type: group
//	children:
//	  - name: ship
//	    type: transform
//	    config:
//	      position: [0, 0, 0]
//	    children:
//	      - name: hull
//	        type: sprite
//	        config:
//	          texture: ship.png
//
// The file format belongs to the CLI; the runtime core only ever sees
// the resulting template values.
package scenefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-ember/ember/pkg/template"
)

// nodeSpec mirrors one YAML node description.
type nodeSpec struct {
	Name     string         `yaml:"name"`
	Type     string         `yaml:"type,omitempty"`
	Config   map[string]any `yaml:"config,omitempty"`
	Children []nodeSpec     `yaml:"children,omitempty"`
}

// Load reads and parses the scene file at path.
func Load(path string) (*template.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	tmpl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tmpl, nil
}

// Parse decodes scene YAML into a template tree.
func Parse(data []byte) (*template.Template, error) {
	var spec nodeSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	return build(spec, "")
}

func build(spec nodeSpec, parentPath string) (*template.Template, error) {
	if spec.Name == "" {
		at := parentPath
		if at == "" {
			at = "(root)"
		}
		return nil, fmt.Errorf("node under %s has no name", at)
	}
	path := spec.Name
	if parentPath != "" {
		path = parentPath + "/" + spec.Name
	}

	subs := make([]*template.Template, 0, len(spec.Children))
	seen := make(map[string]bool, len(spec.Children))
	for _, child := range spec.Children {
		if seen[child.Name] {
			return nil, fmt.Errorf("duplicate child name %q under %s", child.Name, path)
		}
		seen[child.Name] = true
		sub, err := build(child, path)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return template.New(spec.Name, spec.Type, spec.Config, subs...), nil
}
