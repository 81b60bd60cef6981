package components

// SlotSpec describes one named child container of a component type.
type SlotSpec struct {
	Key         string `yaml:"-" json:"-"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Slots is an ordered mapping of slot key to SlotSpec. The position of a slot
// in this list is its ordinal index in node paths.
type Slots []SlotSpec

func slotKey(s SlotSpec) string { return s.Key }

// Keys returns the slot keys in declaration order.
func (s Slots) Keys() []string {
	keys := make([]string, len(s))
	for i, slot := range s {
		keys[i] = slot.Key
	}
	return keys
}

// Index returns the ordinal position of key, or -1.
func (s Slots) Index(key string) int {
	for i, slot := range s {
		if slot.Key == key {
			return i
		}
	}
	return -1
}

// Get returns the slot with the given key.
func (s Slots) Get(key string) (SlotSpec, bool) {
	if i := s.Index(key); i >= 0 {
		return s[i], true
	}
	return SlotSpec{}, false
}

// Has reports whether key is declared.
func (s Slots) Has(key string) bool {
	return s.Index(key) >= 0
}

// Clone returns a copy of s.
func (s Slots) Clone() Slots {
	if s == nil {
		return nil
	}
	return append(Slots(nil), s...)
}

// MarshalYAML renders slots as an ordered mapping.
func (s Slots) MarshalYAML() (any, error) {
	return orderedYAML(s, slotKey), nil
}

// UnmarshalYAML reads an ordered mapping or the "No slots" marker.
func (s *Slots) UnmarshalYAML(unmarshal func(any) error) error {
	items, err := decodeOrdered(unmarshal, func(slot *SlotSpec, key string) {
		slot.Key = key
		if slot.Name == "" {
			slot.Name = key
		}
	})
	if err != nil {
		return err
	}
	*s = items
	return nil
}

// MarshalJSON renders slots as an ordered JSON object.
func (s Slots) MarshalJSON() ([]byte, error) {
	return orderedJSON(s, slotKey)
}
