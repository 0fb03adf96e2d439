// Package inventory reads the list of collectible tokens a player holds and
// derives the number of lives they start with.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultKeyword is the collection name matched against token names.
const DefaultKeyword = "meowdy"

// ErrNoPath is returned when Load is called without a file.
var ErrNoPath = errors.New("inventory: no file given")

// Token is one held token.
type Token struct {
	Name   string `yaml:"name"`
	URI    string `yaml:"uri,omitempty"`
	Amount int    `yaml:"amount"`
}

// Inventory is the decoded inventory file.
type Inventory struct {
	Owner  string  `yaml:"owner,omitempty"`
	Tokens []Token `yaml:"tokens"`
}

// Load reads and parses an inventory file.
func Load(path string) (*Inventory, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inventory: read %s: %w", path, err)
	}
	inv, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("inventory: %s: %w", path, err)
	}
	return inv, nil
}

// Parse decodes inventory YAML.
func Parse(data []byte) (*Inventory, error) {
	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	for i, t := range inv.Tokens {
		if t.Amount < 0 {
			return nil, fmt.Errorf("token %d (%q): negative amount %d", i, t.Name, t.Amount)
		}
	}
	return &inv, nil
}

// Count returns how many held tokens (amount > 0) have a name containing
// keyword, case-insensitively. An empty keyword uses DefaultKeyword.
func (inv *Inventory) Count(keyword string) int {
	if inv == nil {
		return 0
	}
	if keyword == "" {
		keyword = DefaultKeyword
	}
	keyword = strings.ToLower(keyword)

	n := 0
	for _, t := range inv.Tokens {
		if t.Amount > 0 && strings.Contains(strings.ToLower(t.Name), keyword) {
			n++
		}
	}
	return n
}

// LifeCount loads path and counts matching tokens. The result is the raw
// count; the engine turns a zero count into a single life.
func LifeCount(path, keyword string) (int, error) {
	inv, err := Load(path)
	if err != nil {
		return 0, err
	}
	return inv.Count(keyword), nil
}
