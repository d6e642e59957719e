//go:build gnuplot

package main

import _ "github.com/HamletTheHamster/waveplot/internal/display/gnuplot"
