package subscription

import "sync"

// Registry owns a scoped set of unsubscribe handles. Everything tracked
// during one contact-list refresh (presence watches, message watches) is
// released together by Close before the next refresh opens new handles, so
// listener-replacement can never leak.
type Registry struct {
	mutex   sync.Mutex
	cancels []func()
	closed  bool
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Track registers an unsubscribe handle. If the registry is already closed
// the handle is released immediately.
func (r *Registry) Track(cancel func()) {
	if cancel == nil {
		return
	}

	r.mutex.Lock()
	if r.closed {
		r.mutex.Unlock()
		cancel()
		return
	}
	r.cancels = append(r.cancels, cancel)
	r.mutex.Unlock()
}

// Len reports the number of live handles.
func (r *Registry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.cancels)
}

// Close releases every tracked handle. Safe to call more than once; the
// registry rejects new handles afterwards.
func (r *Registry) Close() {
	r.mutex.Lock()
	cancels := r.cancels
	r.cancels = nil
	r.closed = true
	r.mutex.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Reset releases every tracked handle but keeps the registry usable, for
// reuse across contact-list refreshes.
func (r *Registry) Reset() {
	r.mutex.Lock()
	cancels := r.cancels
	r.cancels = nil
	r.mutex.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}
