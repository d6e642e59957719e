// Package gnuplot registers the "window" display mode, which draws the
// waveform in a gnuplot window.
//
// The glot package behind it looks gnuplot up on PATH at init and panics
// when it is missing, so this package is only compiled with the gnuplot
// build tag:
//
//	go build -tags gnuplot ./cmd/waveplot
package gnuplot
