package zello

import "errors"

// ImageHandle is an opaque reference into the host's image cache.
type ImageHandle uint64

// ImageCache is the reference-counted image collaborator. The engine
// only routes handles between the host and the cache; decoding, GPU
// upload, and eviction live entirely on the other side.
type ImageCache interface {
	// Register decodes and stores image data, returning its handle with
	// an initial reference.
	Register(data []byte) (ImageHandle, error)

	// Acquire adds a reference. It reports false for unknown handles.
	Acquire(h ImageHandle) bool

	// Release drops a reference. It reports false for unknown handles.
	Release(h ImageHandle) bool
}

// ErrNoImageCache is returned when no image collaborator was attached.
var ErrNoImageCache = errors.New("zello: no image cache configured")

// RegisterImage routes image data to the attached image cache.
func (e *Engine) RegisterImage(data []byte) (ImageHandle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.images == nil {
		return 0, e.fail(ErrNoImageCache)
	}
	return e.images.Register(data)
}

// ReleaseImage drops one reference on the handle.
func (e *Engine) ReleaseImage(h ImageHandle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.images == nil {
		return false
	}
	return e.images.Release(h)
}
