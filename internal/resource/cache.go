// Package resource provides a reference-counted name to content store.
// The cache is owned by a single engine and is not safe for concurrent use.
package resource

// Cache maps names to content and tracks how many holders reference each name.
// A name has content iff its reference count is positive.
type Cache struct {
	content map[string]string
	refs    map[string]int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		content: make(map[string]string),
		refs:    make(map[string]int),
	}
}

// Load retains name. The first load stores content; later loads only bump
// the count and ignore their content argument.
func (c *Cache) Load(name, content string) {
	if _, ok := c.refs[name]; !ok {
		c.refs[name] = 1
		c.content[name] = content
		return
	}
	c.refs[name]++
}

// Get returns the stored content, or "" when name is not loaded.
func (c *Cache) Get(name string) string {
	return c.content[name]
}

// Release drops one reference. When the count reaches zero both entries
// are evicted. Releasing an unknown name is a no-op.
func (c *Cache) Release(name string) {
	n, ok := c.refs[name]
	if !ok {
		return
	}
	n--
	if n <= 0 {
		delete(c.refs, name)
		delete(c.content, name)
		return
	}
	c.refs[name] = n
}

// Refs returns the current reference count for name.
func (c *Cache) Refs(name string) int {
	return c.refs[name]
}

// Len returns the number of loaded names.
func (c *Cache) Len() int {
	return len(c.content)
}
