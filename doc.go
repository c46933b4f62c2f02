// Package precursor provides position-preserving cursors over byte and
// character data, a bounded sliding-window buffer for streaming sources,
// and a small backtracking regular-expression engine built directly on
// those cursors.
//
// A ByteCursor walks a byte resource one byte, or many, at a time without
// copying; a char package CharCursor does the same over decoded
// characters, tracking line and column as it goes. Both contracts are
// satisfied either by an in-memory array cursor or, via the flatdata
// package, by a cursor backed by a block-evicting streaming buffer, so
// the same regex and reader code works whether the source is a string
// already in memory or a large file read incrementally.
//
// See the char, char/utf8, char/regex, seek, flatdata, flatdata/lines
// and flatdata/fields packages for details.
package precursor
