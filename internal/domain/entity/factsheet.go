package entity

import (
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Fact is one info card row.
type Fact struct {
	Key   string
	Value string
}

// FactSheet is the ordered key/value snapshot of an info card. Keys keep the
// position of their first occurrence; a repeated key overwrites the value.
type FactSheet struct {
	facts []Fact
	index map[string]int
}

func NewFactSheet() *FactSheet {
	return &FactSheet{index: make(map[string]int)}
}

func (s *FactSheet) Set(key, value string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if pos, ok := s.index[key]; ok {
		s.facts[pos].Value = value
		return
	}
	s.index[key] = len(s.facts)
	s.facts = append(s.facts, Fact{Key: key, Value: value})
}

func (s *FactSheet) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	pos, ok := s.index[key]
	if !ok {
		return "", false
	}
	return s.facts[pos].Value, true
}

// First returns the first non-empty value among keys, in the given order.
func (s *FactSheet) First(keys ...string) (string, string) {
	for _, key := range keys {
		if v, ok := s.Get(key); ok && strings.TrimSpace(v) != "" {
			return key, v
		}
	}
	return "", ""
}

func (s *FactSheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.facts)
}

func (s *FactSheet) IsEmpty() bool {
	return s.Len() == 0
}

func (s *FactSheet) Facts() []Fact {
	if s == nil {
		return nil
	}
	return append([]Fact(nil), s.facts...)
}

func (s *FactSheet) Clone() *FactSheet {
	out := NewFactSheet()
	if s == nil {
		return out
	}
	for _, f := range s.facts {
		out.Set(f.Key, f.Value)
	}
	return out
}

// MarshalJSON writes the facts as one object in card order.
func (s *FactSheet) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigDefault.BorrowStream(nil)
	defer jsoniter.ConfigDefault.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, f := range s.Facts() {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(f.Key)
		stream.WriteString(f.Value)
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

func (s *FactSheet) UnmarshalJSON(raw []byte) error {
	*s = FactSheet{index: make(map[string]int)}
	iter := jsoniter.ConfigDefault.BorrowIterator(raw)
	defer jsoniter.ConfigDefault.ReturnIterator(iter)
	iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
		s.Set(key, it.ReadString())
		return true
	})
	if iter.Error != nil && iter.Error != io.EOF {
		return iter.Error
	}
	return nil
}
