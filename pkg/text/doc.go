// Package text describes styled text and measures it for layout.
//
// A string is styled by a list of [Span] values, each applying
// [FontAttributes] to a byte range. [NewLayout] turns a string and its spans
// into a [Layout], which implements layout.Measurer so a text widget can be
// placed in the layout tree as a measured leaf.
//
// Measurement uses a fixed-metric face from golang.org/x/image scaled to the
// span's font size. Native bindings that shape text themselves return their
// own measurer instead.
package text
