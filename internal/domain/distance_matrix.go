package domain

import "fmt"

// DistanceMatrix holds walking minutes between attractions, indexed by attraction id.
// A valid matrix is square, symmetric, non-negative and has a zero diagonal.
type DistanceMatrix [][]int

// NewDistanceMatrixFromUpperTriangle builds a symmetric matrix from the published
// flat distance list, where row i holds the distances from i to i+1..n-1.
func NewDistanceMatrixFromUpperTriangle(n int, rows [][]int) (DistanceMatrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("distance matrix: negative size %d", n)
	}

	want := n - 1
	if want < 0 {
		want = 0
	}
	if len(rows) != want {
		return nil, fmt.Errorf("distance matrix: expected %d triangle rows, got %d", want, len(rows))
	}

	m := make(DistanceMatrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}

	for i, row := range rows {
		if len(row) != n-i-1 {
			return nil, fmt.Errorf("distance matrix: triangle row %d has %d entries, want %d", i, len(row), n-i-1)
		}
		for j, d := range row {
			m[i][i+j+1] = d
			m[i+j+1][i] = d
		}
	}

	if err := m.Validate(n); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks that the matrix is n×n, symmetric, non-negative and has a zero diagonal.
func (m DistanceMatrix) Validate(n int) error {
	if len(m) != n {
		return fmt.Errorf("distance matrix: has %d rows, want %d", len(m), n)
	}

	for i := range m {
		if len(m[i]) != n {
			return fmt.Errorf("distance matrix: row %d has %d entries, want %d", i, len(m[i]), n)
		}
	}

	for i := 0; i < n; i++ {
		if m[i][i] != 0 {
			return fmt.Errorf("distance matrix: diagonal entry %d is %d, want 0", i, m[i][i])
		}
		for j := i + 1; j < n; j++ {
			if m[i][j] < 0 {
				return fmt.Errorf("distance matrix: negative entry (%d,%d)=%d", i, j, m[i][j])
			}
			if m[i][j] != m[j][i] {
				return fmt.Errorf("distance matrix: asymmetric entry (%d,%d)=%d vs (%d,%d)=%d", i, j, m[i][j], j, i, m[j][i])
			}
		}
	}

	return nil
}

// Travel returns the walking minutes from one attraction to another.
// Moving to the same attraction costs nothing.
func (m DistanceMatrix) Travel(from, to int) int {
	if from == to {
		return 0
	}
	return m[from][to]
}
