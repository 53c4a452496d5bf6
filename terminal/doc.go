// Package terminal adapts a tcell screen to the explorer loop.
//
// Screen is at once the input source (keys decoded through an input.KeyTable,
// resize notifications), the frame sink (one glyph per classified cell) and the
// status overlay (a boxed text block drawn over the top-left corner on present).
//
// A reader goroutine owns tcell.PollEvent and forwards decoded events on a
// buffered channel; every other method must be called from the loop goroutine.
package terminal
