// Package buffer provides the mutable text buffer the search engine
// operates on.
//
// A Buffer is a flat character sequence addressed by byte offsets, with a
// line index maintained alongside the text for offset/point conversion.
// All methods are thread-safe. The search engine itself only depends on the
// narrow read/replace surface (Len, Text, TextRange, Replace); Buffer is
// the default implementation a host can use when it does not bring its own.
package buffer
