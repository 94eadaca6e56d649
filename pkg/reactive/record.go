package reactive

import (
	"reflect"
	"sync"
)

// Record is a reactive container over a plain map[string]any.
// Reading a key while a listener is tracking records a dependency edge;
// writing a key notifies the listeners that previously read it. The Record
// identity stays stable for its whole life, so dependents keep working
// across bulk updates of the backing data.
type Record struct {
	id uint64

	mu sync.RWMutex

	// data is the backing record.
	data map[string]any

	// subs holds the per-key subscriber sets. Created lazily: a key gains
	// a set the first time it is read under tracking or written.
	subs map[string]*subscribers

	// nested caches wrappers for nested map values, keyed by the record
	// key they were read through. A cached wrapper is only reused while
	// the backing map at that key is still the identical map.
	nested map[string]*Record
}

// Wrap creates a reactive Record over the given backing map.
// A nil map is treated as empty. The map is used directly, not copied;
// callers hand ownership to the Record.
func Wrap(data map[string]any) *Record {
	if data == nil {
		data = make(map[string]any)
	}
	return &Record{
		id:   nextID(),
		data: data,
	}
}

// ID returns the unique identifier for this record.
func (r *Record) ID() uint64 {
	return r.id
}

// Get returns the value stored at key and subscribes the current listener.
// A missing key reads as nil, and the subscription is still recorded, so
// a later write (or ApplyPartial add) of that key notifies the reader.
//
// Nested map[string]any values are returned wrapped in a *Record. The
// wrapper is cached, so repeated reads of an unchanged nested value return
// the same *Record, which keeps identity comparisons stable.
func (r *Record) Get(key string) any {
	r.mu.RLock()
	value, ok := r.data[key]
	r.mu.RUnlock()

	// Track after releasing the value lock, as subscribing may allocate.
	if l := CurrentListener(); l != nil {
		r.track(key, l)
	}

	if !ok {
		return nil
	}
	if m, isMap := value.(map[string]any); isMap {
		return r.wrapNested(key, m)
	}
	return value
}

// Peek returns the value at key without subscribing and without wrapping.
func (r *Record) Peek(key string) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data[key]
}

// Has reports whether key is present, subscribing the current listener.
func (r *Record) Has(key string) bool {
	r.mu.RLock()
	_, ok := r.data[key]
	r.mu.RUnlock()

	if l := CurrentListener(); l != nil {
		r.track(key, l)
	}
	return ok
}

// Set stores value at key and notifies the key's subscribers.
// Writing a value identical to the current one never notifies.
func (r *Record) Set(key string, value any) {
	r.mu.Lock()
	old, existed := r.data[key]
	if existed && identical(old, value) {
		r.mu.Unlock()
		return
	}
	r.data[key] = value
	// The cached nested wrapper, if any, no longer matches the stored value.
	delete(r.nested, key)
	set := r.subs[key]
	r.mu.Unlock()

	if set != nil {
		set.notify()
	}
}

// Delete removes key from the record and notifies its subscribers.
// Deleting an absent key is a no-op.
func (r *Record) Delete(key string) {
	r.mu.Lock()
	if _, existed := r.data[key]; !existed {
		r.mu.Unlock()
		return
	}
	delete(r.data, key)
	delete(r.nested, key)
	set := r.subs[key]
	r.mu.Unlock()

	if set != nil {
		set.notify()
	}
}

// ApplyPartial reconciles the record against partial: keys present in
// partial whose value differs are written and notified, and keys present
// in the record but absent from partial are deleted and notified. The
// record's identity is unchanged, so existing dependents keep working.
//
// Removal is asymmetric on purpose: shrinking a record never leaves stale
// values readable.
func (r *Record) ApplyPartial(partial map[string]any) {
	r.mu.RLock()
	var stale []string
	for key := range r.data {
		if _, ok := partial[key]; !ok {
			stale = append(stale, key)
		}
	}
	r.mu.RUnlock()

	for key, value := range partial {
		r.Set(key, value)
	}
	for _, key := range stale {
		r.Delete(key)
	}
}

// Keys returns the current key set without subscribing.
func (r *Record) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.data))
	for key := range r.data {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of keys without subscribing.
func (r *Record) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// Snapshot returns a shallow copy of the backing record without
// subscribing. Used by introspection tooling.
func (r *Record) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]any, len(r.data))
	for key, value := range r.data {
		out[key] = value
	}
	return out
}

// track records a dependency edge from the current listener to key.
func (r *Record) track(key string, l Listener) {
	r.mu.Lock()
	if r.subs == nil {
		r.subs = make(map[string]*subscribers)
	}
	set := r.subs[key]
	if set == nil {
		set = &subscribers{}
		r.subs[key] = set
	}
	set.subscribe(l)
	r.mu.Unlock()

	if t, ok := l.(edgeTracker); ok {
		t.addSource(set)
	}
}

// wrapNested returns the cached wrapper for the nested map at key,
// creating it when the cached one is missing or backed by a different map.
// The cache is per key, not per map: the same map stored under two keys
// of one record gets two distinct wrappers, each tracking its own key.
func (r *Record) wrapNested(key string, m map[string]any) *Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.nested[key]; ok && sameMap(cached.data, m) {
		return cached
	}
	wrapper := Wrap(m)
	if r.nested == nil {
		r.nested = make(map[string]*Record)
	}
	r.nested[key] = wrapper
	return wrapper
}

// sameMap reports whether two maps are the identical map value.
func sameMap(a, b map[string]any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// identical reports whether two values are the same by strict identity.
// Comparable values use ==; reference kinds (maps, slices, funcs,
// channels, pointers) compare by identity; everything else reports false,
// which means the write always notifies.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra := reflect.ValueOf(a)
	rb := reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Pointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Len() == rb.Len() && ra.Pointer() == rb.Pointer()
	default:
		if ra.Comparable() {
			return a == b
		}
		return false
	}
}
