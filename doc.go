// Package detlog computes the determinant of dense square matrices in log
// form and prints it in scientific notation without overflow.
//
// A determinant of a 2000×2000 random matrix easily exceeds 1e+308; its
// logarithm does not. detlog never forms det(A) as a float64: it carries
// (sign, log|det|) from the LU pivots to the final decimal rendering.
//
// Pipeline (strictly linear, leaf-first):
//
//	matrix/    — Dense row-major storage, Release hand-off, validators
//	lu/        — in-place LU with partial pivoting and a 1-based pivot record
//	logdet/    — sign and Σ log|u_ii| from the factorization
//	scinote/   — mantissa in [1, 10) and decimal exponent from the log form
//
// Around it:
//
//	csvmatrix/ — delimited-text loader/writer and random matrix generator
//	config/    — DETLOG_* environment settings
//	logging/   — zap logger for the CLI
//	cmd/detlog — the command-line driver
//
// Quick start:
//
//	m, _ := csvmatrix.LoadFile("matrix.csv")
//	lf, _ := logdet.Of(m) // m is consumed
//	fmt.Println(lf.Sign, lf.LogAbs, scinote.Format(lf))
package detlog
