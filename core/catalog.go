package core

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCatalog is the catalog file read when none is given.
var DefaultCatalog = "models.json"

// ModelDescriptor describes one selectable model.
type ModelDescriptor struct {
	// Key is the short catalog key, unique within a catalog.
	Key          string `yaml:"-"`
	Name         string `yaml:"name"`
	ID           string `yaml:"id"`
	Tokens       int    `yaml:"tokens"`
	TrainingData string `yaml:"trainingData"`
	Description  string `yaml:"description"`
}

func (m ModelDescriptor) String() string {
	return fmt.Sprintf("%-20s %-30s tokens: %d", m.Key, m.ID, m.Tokens)
}

// Catalog is the ordered set of available models.  Order is the order
// of the catalog file and determines the 1-based index shown to the
// operator.  A Catalog is never modified after it is loaded.
type Catalog struct {
	models []ModelDescriptor
}

// LoadCatalog reads and parses the catalog file at path.  The file
// may be JSON or YAML.
func LoadCatalog(path string) (catalog *Catalog, err error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	catalog, err = ParseCatalog(buf)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return
}

// ParseCatalog parses a catalog mapping key -> {name, id, tokens,
// trainingData, description}.  We walk the yaml node tree rather than
// decoding into a map so that the file's key order survives.
func ParseCatalog(buf []byte) (catalog *Catalog, err error) {
	var doc yaml.Node
	err = yaml.Unmarshal(buf, &doc)
	if err != nil {
		return
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty catalog")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: catalog must be a mapping of model keys to models", root.Line)
	}
	catalog = &Catalog{}
	seen := make(map[string]bool)
	// mapping node content alternates key, value
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		key := keyNode.Value
		if seen[key] {
			return nil, fmt.Errorf("line %d: duplicate model key %q", keyNode.Line, key)
		}
		seen[key] = true
		if valNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: model %q must be a mapping", valNode.Line, key)
		}
		var m ModelDescriptor
		err = valNode.Decode(&m)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", key, err)
		}
		if m.ID == "" {
			return nil, fmt.Errorf("line %d: model %q has no id", valNode.Line, key)
		}
		m.Key = key
		catalog.models = append(catalog.models, m)
	}
	if len(catalog.models) == 0 {
		return nil, errors.New("catalog has no models")
	}
	return
}

// Len returns the number of models in the catalog.
func (c *Catalog) Len() int {
	return len(c.models)
}

// Models returns the models in catalog order.
func (c *Catalog) Models() []ModelDescriptor {
	return append([]ModelDescriptor(nil), c.models...)
}

// Choose interprets answer as a 1-based index into the catalog.
func (c *Catalog) Choose(answer string) (m ModelDescriptor, err error) {
	i, convErr := strconv.Atoi(strings.TrimSpace(answer))
	if convErr != nil || i < 1 || i > len(c.models) {
		err = &ValidationError{Field: "model choice", Value: answer}
		return
	}
	m = c.models[i-1]
	return
}

// FindID returns the first model whose API identifier is id.
func (c *Catalog) FindID(id string) (m ModelDescriptor, ok bool) {
	for _, m = range c.models {
		if m.ID == id {
			return m, true
		}
	}
	return ModelDescriptor{}, false
}
