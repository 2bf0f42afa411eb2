// Package text provides the shaping and measurement layer behind text
// widgets: a narrow layout provider capability, a HarfBuzz-backed provider
// built on go-text/typesetting, and the stateless measurement bridge that
// turns byte offsets into caret pixel positions and back.
//
// Layout providers work in physical pixels: callers scale widths by the
// surface's device scale before shaping (hinting fidelity) and divide
// results by the same scale on the way out. The bridge in measure.go does
// this conversion and is the only place it happens.
package text
