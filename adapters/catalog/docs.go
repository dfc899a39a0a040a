package catalog

import (
	_ "embed"

	"distviz/internal/errors"

	"gopkg.in/yaml.v3"
)

//go:embed docs.yaml
var docsYAML []byte

type docEntry struct {
	Doc string `yaml:"doc"`
}

// loadDocs decodes the embedded documentation table keyed by family name
func loadDocs(raw []byte) (map[string]string, error) {
	entries := map[string]docEntry{}
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrap(err, "failed to decode distribution documentation")
	}

	docs := make(map[string]string, len(entries))
	for name, e := range entries {
		docs[name] = e.Doc
	}
	return docs, nil
}
