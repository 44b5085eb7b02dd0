package fits

import (
	"fmt"

	"github.com/robert-malhotra/go-fits/internal/block"
)

// Header is an insertion-ordered store of header cards. Keys are unique
// except for the repeatable COMMENT and HISTORY pseudo-keys; iteration
// always reproduces insertion order, which is what makes re-serialization
// deterministic. A side index gives O(1) lookup for the unique keys.
type Header struct {
	cards []Card
	index map[string]int
}

// NewHeader creates an empty header.
func NewHeader() *Header {
	return &Header{index: make(map[string]int)}
}

// Len returns the number of stored cards, counting each COMMENT/HISTORY
// occurrence. The synthetic END card is never stored.
func (h *Header) Len() int {
	return len(h.cards)
}

// Cards returns the stored cards in insertion order. The slice is shared;
// callers must not modify it.
func (h *Header) Cards() []Card {
	return h.cards
}

// Get returns the value stored for key. The second result is false when the
// key is absent. The synthetic END marker never has a value.
func (h *Header) Get(key string) (any, bool) {
	key = normalizeKey(key)
	if key == keyEnd {
		return nil, false
	}
	i, ok := h.index[key]
	if !ok {
		return nil, false
	}
	return h.cards[i].Value, true
}

// GetInt returns the value for key as an int.
func (h *Header) GetInt(key string) (int, bool) {
	v, ok := h.Get(key)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

// GetFloat returns the value for key as a float64.
func (h *Header) GetFloat(key string) (float64, bool) {
	v, ok := h.Get(key)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

// GetString returns the value for key as a string.
func (h *Header) GetString(key string) (string, bool) {
	v, ok := h.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetBool returns the value for key as a bool.
func (h *Header) GetBool(key string) (bool, bool) {
	v, ok := h.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Set stores a value (and, when given, a comment) for key. An existing key
// keeps its position in iteration order and only its value and comment
// change; a new key is appended. COMMENT and HISTORY must go through
// AddComment and AddHistory, and the synthetic END marker cannot be stored:
// both are rejected with ErrInvalidOperation.
func (h *Header) Set(key string, value any, comment ...string) error {
	key = normalizeKey(key)
	switch key {
	case KeyComment, KeyHistory:
		return fmt.Errorf("%w: %s cards must be added with AddComment/AddHistory", ErrInvalidOperation, key)
	case keyEnd:
		return fmt.Errorf("%w: END is appended automatically during serialization", ErrInvalidOperation)
	case "":
		return fmt.Errorf("%w: empty keyword", ErrInvalidOperation)
	}

	value = normalizeValue(value)
	if i, ok := h.index[key]; ok {
		h.cards[i].Value = value
		if len(comment) > 0 {
			h.cards[i].Comment = comment[0]
		}
		return nil
	}

	c := Card{Key: key, Value: value}
	if len(comment) > 0 {
		c.Comment = comment[0]
	}
	h.index[key] = len(h.cards)
	h.cards = append(h.cards, c)
	return nil
}

// AddComment appends a COMMENT card. Duplicates are allowed.
func (h *Header) AddComment(text string) {
	h.cards = append(h.cards, Card{Key: KeyComment, Comment: text})
}

// AddHistory appends a HISTORY card. Duplicates are allowed.
func (h *Header) AddHistory(text string) {
	h.cards = append(h.cards, Card{Key: KeyHistory, Comment: text})
}

// Remove deletes key from the header. Removing an absent key is a no-op.
func (h *Header) Remove(key string) {
	key = normalizeKey(key)
	i, ok := h.index[key]
	if !ok {
		return
	}
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	h.rebuildIndex()
}

// rebuildIndex recomputes the key->position index after a removal shifted
// card positions.
func (h *Header) rebuildIndex() {
	h.index = make(map[string]int, len(h.cards))
	for i, c := range h.cards {
		if !c.IsCommentary() {
			h.index[c.Key] = i
		}
	}
}

// Keys returns all card keys in insertion order, including each repeated
// COMMENT/HISTORY occurrence.
func (h *Header) Keys() []string {
	keys := make([]string, len(h.cards))
	for i, c := range h.cards {
		keys[i] = c.Key
	}
	return keys
}

// Records renders the header as 80-character card images in insertion
// order, followed by exactly one END record and blank records filling the
// last 36-card block.
func (h *Header) Records() []string {
	records := make([]string, 0, len(h.cards)+1)
	for _, c := range h.cards {
		records = append(records, c.Record())
	}
	records = append(records, endRecord())
	for len(records)%block.CardsPerBlock != 0 {
		records = append(records, blankRecord())
	}
	return records
}

// normalizeValue folds equivalent value types into the canonical card value
// set: int, float64, string, bool or nil.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case int8:
		return int(x)
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int(x)
	case uint8:
		return int(x)
	case uint16:
		return int(x)
	case uint32:
		return int(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}
