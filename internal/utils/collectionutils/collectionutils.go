package collectionutils

// Associate transforms a slice into a map by applying the transform function
// to each item. Later items overwrite earlier ones on key collision.
func Associate[T any, K comparable, V any](items []T, transform func(T) (K, V)) map[K]V {
	m := make(map[K]V, len(items))
	for _, item := range items {
		k, v := transform(item)
		m[k] = v
	}

	return m
}

// GetOrDefault returns the value for key, or defaultValue when the key is
// absent.
func GetOrDefault[K comparable, T any](m map[K]T, key K, defaultValue T) T {
	v, ok := m[key]
	if !ok {
		return defaultValue
	}
	return v
}
