// Package viz renders simulation results for the terminal.
//
//   - [BandChart]: median and confidence band as an ASCII line chart
//   - [PathsPlot]: a Braille plot of individual sample paths
//   - [Report]: a styled panel with the run parameters and the terminal
//     distribution
//
// Output is plain strings; callers decide where to print them.
package viz
