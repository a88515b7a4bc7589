package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"go-storefront/models"
)

// FileSource reads the catalog from a YAML document on disk. JSON documents
// are accepted as well since they parse as YAML.
//
//	categories:
//	  - id: figures
//	    name: Figures & Collectibles
//	products:
//	  - id: "1"
//	    name: Naruto Uzumaki Figure
//	    price: "59.99"
//	    category: figures
//	    images: [https://example.com/naruto.jpg]
type FileSource struct {
	Path string
}

type catalogFile struct {
	Categories []models.Category `yaml:"categories"`
	Products   []models.Product  `yaml:"products"`
}

// NewFileSource creates a source reading the file at path
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load parses the catalog file
func (s *FileSource) Load(context.Context) ([]models.Product, []models.Category, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog file: %w", err)
	}

	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse catalog file %s: %w", s.Path, err)
	}
	return doc.Products, doc.Categories, nil
}
