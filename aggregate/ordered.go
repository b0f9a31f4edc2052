package aggregate

// orderedMap is a lookup-or-create index that remembers first-insertion order.
type orderedMap[V any] struct {
	keys   []string
	values map[string]*V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{values: make(map[string]*V)}
}

func (m *orderedMap[V]) getOrCreate(key string, create func() *V) *V {
	if value, ok := m.values[key]; ok {
		return value
	}
	value := create()
	m.keys = append(m.keys, key)
	m.values[key] = value
	return value
}

func (m *orderedMap[V]) list() []V {
	out := make([]V, 0, len(m.keys))
	for _, key := range m.keys {
		out = append(out, *m.values[key])
	}
	return out
}
