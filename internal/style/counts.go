package style

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Counts is a frequency table that remembers the order keys were first seen.
// The zero value is an empty table.
type Counts struct {
	keys   []string
	values map[string]int
}

// Entry is one row of a Counts table.
type Entry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Inc adds one to key and returns the new count.
func (c *Counts) Inc(key string) int {
	c.set(key, c.Get(key)+1)
	return c.values[key]
}

func (c *Counts) set(key string, n int) {
	if c.values == nil {
		c.values = make(map[string]int)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = n
}

// Get returns the count for key, zero when absent.
func (c Counts) Get(key string) int {
	return c.values[key]
}

// Len returns the number of distinct keys.
func (c Counts) Len() int {
	return len(c.keys)
}

// Entries returns the rows in insertion order.
func (c Counts) Entries() []Entry {
	out := make([]Entry, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, Entry{Value: k, Count: c.values[k]})
	}
	return out
}

// Top returns the most frequent key. Ties go to the key inserted first.
func (c Counts) Top() (Entry, bool) {
	var (
		best  Entry
		found bool
	)
	for _, k := range c.keys {
		if n := c.values[k]; !found || n > best.Count {
			best = Entry{Value: k, Count: n}
			found = true
		}
	}
	return best, found
}

// MarshalJSON encodes the table as an object whose members follow insertion order.
func (c Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", c.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of integer counts, keeping member order.
func (c *Counts) UnmarshalJSON(data []byte) error {
	out := Counts{}
	err := decodeOrderedObject(data, func(key string, dec *json.Decoder) error {
		var n int
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("count for %q: %w", key, err)
		}
		out.set(key, n)
		return nil
	})
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// NestedCounts groups Counts tables under an outer key, such as lens choices
// per shot type. Outer keys keep insertion order too.
type NestedCounts struct {
	keys   []string
	tables map[string]*Counts
}

// Inc adds one to inner within outer and returns the new count.
func (n *NestedCounts) Inc(outer, inner string) int {
	return n.table(outer).Inc(inner)
}

func (n *NestedCounts) table(outer string) *Counts {
	if n.tables == nil {
		n.tables = make(map[string]*Counts)
	}
	t, ok := n.tables[outer]
	if !ok {
		t = &Counts{}
		n.tables[outer] = t
		n.keys = append(n.keys, outer)
	}
	return t
}

// Get returns the table for outer, or an empty table.
func (n NestedCounts) Get(outer string) Counts {
	if t, ok := n.tables[outer]; ok {
		return *t
	}
	return Counts{}
}

// Keys returns the outer keys in insertion order.
func (n NestedCounts) Keys() []string {
	return append([]string(nil), n.keys...)
}

// Len returns the number of outer keys.
func (n NestedCounts) Len() int {
	return len(n.keys)
}

func (n NestedCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		inner, err := n.tables[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(inner)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (n *NestedCounts) UnmarshalJSON(data []byte) error {
	out := NestedCounts{}
	err := decodeOrderedObject(data, func(key string, dec *json.Decoder) error {
		var inner Counts
		if err := dec.Decode(&inner); err != nil {
			return fmt.Errorf("table %q: %w", key, err)
		}
		t := out.table(key)
		*t = inner
		return nil
	})
	if err != nil {
		return err
	}
	*n = out
	return nil
}

// decodeOrderedObject walks the members of a JSON object in document order,
// handing each key and the positioned decoder to member. null decodes as an
// empty object.
func decodeOrderedObject(data []byte, member func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := member(key, dec); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
