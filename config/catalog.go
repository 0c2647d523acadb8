package config

import "strings"

// CatalogEntry maps a short, user-facing key to the backend model identifier.
type CatalogEntry struct {
	Key  string `toml:"key"`
	Name string `toml:"name"`
}

// Catalog is the ordered, static list of selectable models.
type Catalog struct {
	entries []CatalogEntry
	index   map[string]int
}

var defaultCatalogEntries = []CatalogEntry{
	{Key: "llama3.1", Name: "llama3.1"},
	{Key: "llama3.1_70b", Name: "llama3.1:70b"},
	{Key: "llama3.1_405b", Name: "llama3.1:405b"},
	{Key: "phi3_mini", Name: "phi3"},
	{Key: "phi3_medium", Name: "phi3:medium"},
	{Key: "gemma2", Name: "gemma2"},
	{Key: "gemma2_27b", Name: "gemma2:27b"},
	{Key: "mistral", Name: "mistral"},
	{Key: "moondream2", Name: "moondream"},
	{Key: "neural_chat", Name: "neural-chat"},
	{Key: "starling", Name: "starling-lm"},
	{Key: "codellama", Name: "codellama"},
	{Key: "llama2_uncensored", Name: "llama2-uncensored"},
	{Key: "llava", Name: "llava"},
	{Key: "solar", Name: "solar"},
	{Key: "mario", Name: "mario"},
}

func DefaultCatalog() *Catalog {
	return NewCatalog(defaultCatalogEntries)
}

// NewCatalog builds a catalog preserving entry order.
// Blank keys are skipped, a repeated key keeps its first position but takes the later name,
// and a blank name falls back to the key.
func NewCatalog(entries []CatalogEntry) *Catalog {
	c := &Catalog{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		key := strings.TrimSpace(e.Key)
		if key == "" {
			continue
		}
		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = key
		}
		if i, exists := c.index[key]; exists {
			c.entries[i].Name = name
			continue
		}
		c.index[key] = len(c.entries)
		c.entries = append(c.entries, CatalogEntry{Key: key, Name: name})
	}
	return c
}

// Lookup returns the backend model identifier for key.
func (c *Catalog) Lookup(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	i, ok := c.index[key]
	if !ok {
		return "", false
	}
	return c.entries[i].Name, true
}

func (c *Catalog) Contains(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

// Keys returns catalog keys in display order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Key
	}
	return keys
}

func (c *Catalog) Entries() []CatalogEntry {
	if c == nil {
		return nil
	}
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
