package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/windoze95/cardapio-api/internal/menu"
	"gopkg.in/yaml.v3"
)

// MenuFile is the YAML layout of a menu:
//
//	items:
//	  - name: carne
//	    price: 15
//	    category: salgados
type MenuFile struct {
	Items []menu.Entry `yaml:"items"`
}

// LoadMenuFile reads and parses a YAML menu from path.
func LoadMenuFile(path string) ([]menu.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	return ParseMenu(data)
}

// ParseMenu decodes a YAML menu. Unknown fields are rejected.
func ParseMenu(data []byte) ([]menu.Entry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f MenuFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, menu.ErrEmptyMenu
		}
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, menu.ErrEmptyMenu
	}
	return f.Items, nil
}
