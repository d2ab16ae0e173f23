// Package spectrum renders a continuous approximation of an atomic emission
// spectrum from a sparse set of discrete lines.
//
// Each line is broadened into a Gaussian, the summed intensity is normalized
// against its maximum over the visible range, and the result modulates a
// fixed violet-to-red hue ramp on top of a constant continuum. The output is
// a [Raster]: every row of a column carries the same colour, so the work is a
// one-dimensional map from column to RGB.
//
// Rendering is a pure function of its inputs. Columns are evaluated in
// parallel; the intensity maximum is reduced before any colour is produced.
package spectrum
