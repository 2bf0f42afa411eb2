// Package zello is the native text backend of a cross-language GUI
// toolkit: per-widget editable text state (cursor, selection, IME
// composition) coupled to a shaping/layout provider that answers precise
// pixel-position queries.
//
// # Overview
//
// A host application drives the Engine with discrete events keyed by
// opaque 64-bit widget ids, then queries caret and selection geometry for
// rendering:
//
//	import "github.com/futurepaul/zello"
//
//	provider := text.NewGoTextProvider()
//	provider.RegisterFont(fontBytes)
//
//	eng := zello.NewEngine(provider)
//	eng.ApplyEvent(1, zello.InsertTextEvent("Hello"))
//	x, _ := eng.CaretX(1, 16, 2.0) // logical pixels at 2x scale
//
// # Architecture
//
// The library is organized into:
//   - zello: the Engine, event surface, and collaborator interfaces
//   - textinput: boundary utilities, per-widget state, the id-keyed manager
//   - text: the Provider capability, a go-text/typesetting implementation,
//     and the measurement bridge
//   - text/cache: sharded LRU cache for geometry query results
//   - capi: buffer marshaling for a C-ABI shim
//
// GPU surface setup, scene drawing, the image cache, and the
// accessibility tree are external collaborators; zello only produces
// geometry for them and consumes their capability interfaces.
package zello
