// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/opencad/kernel/diag"
)

// pivotTol is the threshold below which a pivot is treated as zero --
// the column is then rank-deficient rather than merely small, mirroring
// how shp.Shape.CalcAtIp treats la.MatInv's failure as a degenerate
// Jacobian rather than a numerically noisy one.
const pivotTol = 1e-12

// rankReveal solves jac*dx = fb in a least-squares sense for a dense,
// possibly rectangular and possibly rank-deficient jac (m equations by n
// unknowns), writing the solution into dx and returning the numerically
// observed rank.
//
// gosl/la has no dense rank-revealing QR: la.MatInv targets square
// full-rank inverses, la.LinSol targets sparse direct factorization via
// la.Triplet. Neither shape fits a rectangular, possibly-singular
// Jacobian, so this generalizes the column-pivoted Gauss-Jordan pattern
// shp.Shape.CalcAtIp already applies (via la.MatInv) for a square system
// to a rectangular one: form the normal equations jac^T*jac*dx = jac^T*fb
// (square, n x n), then eliminate with partial column pivoting, skipping
// -- rather than failing on -- any column whose pivot falls below
// pivotTol. The number of columns actually eliminated is the rank.
func rankReveal(jac [][]float64, fb []float64, dx []float64) (rank int, res diag.Result) {
	m := len(fb)
	n := len(dx)
	if m == 0 || n == 0 {
		return 0, diag.OK
	}

	ata := la.MatAlloc(n, n)
	atb := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var s float64
			for k := 0; k < m; k++ {
				s += jac[k][i] * jac[k][j]
			}
			ata[i][j] = s
		}
		var s float64
		for k := 0; k < m; k++ {
			s += jac[k][i] * fb[k]
		}
		atb[i] = s
	}

	// augmented column-pivoted Gauss-Jordan elimination on [ata | atb]
	colOrder := make([]int, n)
	for i := range colOrder {
		colOrder[i] = i
	}
	used := make([]bool, n)

	for pivotRow := 0; pivotRow < n; pivotRow++ {
		// find the largest-magnitude entry in this row among unused columns
		bestCol := -1
		bestVal := 0.0
		for c := 0; c < n; c++ {
			if used[c] {
				continue
			}
			v := math.Abs(ata[pivotRow][c])
			if v > bestVal {
				bestVal = v
				bestCol = c
			}
		}
		if bestCol < 0 || bestVal < pivotTol {
			continue // this row contributes no new independent direction
		}
		used[bestCol] = true
		rank++

		pivot := ata[pivotRow][bestCol]
		for k := 0; k < n; k++ {
			ata[pivotRow][k] /= pivot
		}
		atb[pivotRow] /= pivot

		for r := 0; r < n; r++ {
			if r == pivotRow {
				continue
			}
			factor := ata[r][bestCol]
			if factor == 0 {
				continue
			}
			for k := 0; k < n; k++ {
				ata[r][k] -= factor * ata[pivotRow][k]
			}
			atb[r] -= factor * atb[pivotRow]
		}
	}

	for i := range dx {
		dx[i] = 0
	}
	if rank < n {
		return rank, diag.Errorf(diag.Singular,
			"Jacobian normal-equations matrix is rank-deficient (rank %d of %d)", rank, n)
	}

	// each row r that found a pivot column determines that column's value
	// directly since the matrix is now row-reduced to (numerically) the
	// identity restricted to the used columns.
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if math.Abs(ata[r][c]-1) < 1e-6 {
				dx[c] = atb[r]
				break
			}
		}
	}

	return rank, diag.OK
}
