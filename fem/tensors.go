// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements a total Lagrangian finite element solver for large
// displacement / small strain elasticity: Green-Lagrange strains with a
// St.Venant-Kirchhoff material, Newton-Raphson iterations and essential
// boundary conditions applied with Lagrange multipliers
package fem

import (
	"github.com/cpmech/gosl/la"
)

// small dense tensor operations on ndim x ndim matrices. all operations are
// written out with named arguments instead of a generic einsum so every
// contraction in the element routines can be read directly

// TensIdent returns the ndim x ndim identity
func TensIdent(ndim int) (I [][]float64) {
	I = la.MatAlloc(ndim, ndim)
	for i := 0; i < ndim; i++ {
		I[i][i] = 1.0
	}
	return
}

// TensTr returns the trace of A
func TensTr(A [][]float64) (tr float64) {
	for i := 0; i < len(A); i++ {
		tr += A[i][i]
	}
	return
}

// TensMul computes C = A·B
func TensMul(C, A, B [][]float64) {
	n := len(A)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			C[i][j] = 0.0
			for k := 0; k < n; k++ {
				C[i][j] += A[i][k] * B[k][j]
			}
		}
	}
}

// TensMulTrA computes C = Aᵀ·B
func TensMulTrA(C, A, B [][]float64) {
	n := len(A)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			C[i][j] = 0.0
			for k := 0; k < n; k++ {
				C[i][j] += A[k][i] * B[k][j]
			}
		}
	}
}

// TensMulTrB computes C = A·Bᵀ
func TensMulTrB(C, A, B [][]float64) {
	n := len(A)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			C[i][j] = 0.0
			for k := 0; k < n; k++ {
				C[i][j] += A[i][k] * B[j][k]
			}
		}
	}
}

// DefGrad computes the deformation gradient F = I + ∂u/∂X from the nodal
// displacements u [nverts][ndim] and the reference gradients G [nverts][ndim]
func DefGrad(F [][]float64, u, G [][]float64) {
	ndim := len(F)
	for i := 0; i < ndim; i++ {
		for j := 0; j < ndim; j++ {
			F[i][j] = 0.0
			if i == j {
				F[i][j] = 1.0
			}
			for a := 0; a < len(G); a++ {
				F[i][j] += u[a][i] * G[a][j]
			}
		}
	}
}

// GreenStrain computes the Green-Lagrange strain E = (FᵀF - I) / 2
func GreenStrain(E, F [][]float64) {
	ndim := len(F)
	TensMulTrA(E, F, F)
	for i := 0; i < ndim; i++ {
		for j := 0; j < ndim; j++ {
			if i == j {
				E[i][j] -= 1.0
			}
			E[i][j] /= 2.0
		}
	}
}

// StVenantStress computes the second Piola-Kirchhoff stress of the
// St.Venant-Kirchhoff material: S = λ tr(E) I + 2 μ E
func StVenantStress(S, E [][]float64, λ, μ float64) {
	ndim := len(E)
	trE := TensTr(E)
	for i := 0; i < ndim; i++ {
		for j := 0; j < ndim; j++ {
			S[i][j] = 2.0 * μ * E[i][j]
			if i == j {
				S[i][j] += λ * trE
			}
		}
	}
}

// LameParams returns λ and μ from Young's modulus and Poisson's ratio. For
// plane stress (thin in-plane models) λ must be replaced by λ* as returned
// by LamePlaneStress
func LameParams(young, nu float64) (λ, μ float64) {
	λ = young * nu / ((1.0 + nu) * (1.0 - 2.0*nu))
	μ = young / (2.0 * (1.0 + nu))
	return
}

// LamePlaneStress returns the effective λ* enforcing σzz = 0 through the
// (free) out-of-plane thickness
func LamePlaneStress(λ, μ float64) float64 {
	return 2.0 * λ * μ / (λ + 2.0*μ)
}
