// Package frame reads and writes the ASCII output frames of a 1D
// finite-volume solver.
//
// # File Layout
//
// Each output time is stored as a pair of files in the output directory:
//
//	fort.t0003   header: time, meqn, ngrids, naux, ndim
//	fort.q0003   one block per grid: grid header followed by mx rows of q
//
// Header lines have the form "<value> <name>", for example:
//
//	6.25000000E-02    time
//	  3                 meqn
//
// Data rows hold the meqn conserved quantities of one cell. Rows may wrap
// (the solver writes at most four values per line) and values may use the
// Fortran exponent forms "1.0D+00" or "1.0-100".
//
// # Usage
//
//	nums, err := frame.List("_output")
//	for _, n := range nums {
//	    f, err := frame.Read("_output", n)
//	    x, rho, err := f.Series(0)
//	}
//
// [Watcher] follows a directory while the solver is running and reports
// frames as soon as both files of a pair exist.
package frame
