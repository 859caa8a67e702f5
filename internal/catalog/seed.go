// Loads the initial book collection.

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Seed is a book loaded at startup.
type Seed struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	// Year is a number or a numeric string.
	Year any `yaml:"year"`
}

// SeedFile is the YAML document accepted by LoadSeeds.
type SeedFile struct {
	Books []Seed `yaml:"books"`
}

// DefaultSeeds returns the records a new catalog starts with.
func DefaultSeeds() []Seed {
	return []Seed{
		{ID: "1", Title: "The Lord of the Rings", Author: "J.R.R. Tolkien", Year: 1954},
		{ID: "2", Title: "Pride and Prejudice", Author: "Jane Austen", Year: 1813},
	}
}

// LoadSeeds reads seeds from a YAML file.
// The path is provided by the operator on the command line.
func LoadSeeds(path string) ([]Seed, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: operator-supplied seed path
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i := range f.Books {
		if err := f.Books[i].validate(); err != nil {
			return nil, fmt.Errorf("invalid seed file: book %d: %w", i, err)
		}
	}
	return f.Books, nil
}

func (s *Seed) validate() error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	for _, r := range s.ID {
		if r < '0' || r > '9' {
			return fmt.Errorf("id %q must be a decimal integer", s.ID)
		}
	}
	if _, err := strconv.ParseInt(s.ID, 10, 64); err != nil {
		return fmt.Errorf("id %q: %w", s.ID, err)
	}
	in, err := s.input()
	if err != nil {
		return err
	}
	return in.Validate()
}

func (s *Seed) input() (*Input, error) {
	var year json.RawMessage
	if s.Year != nil {
		b, err := json.Marshal(s.Year)
		if err != nil {
			return nil, fmt.Errorf("year: %w", err)
		}
		year = b
	}
	return &Input{Title: s.Title, Author: s.Author, Year: year}, nil
}
