package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDistanceMatrixFromUpperTriangle(t *testing.T) {
	m, err := NewDistanceMatrixFromUpperTriangle(4, [][]int{
		{5, 10, 15},
		{5, 10},
		{20},
	})
	require.NoError(t, err)

	want := DistanceMatrix{
		{0, 5, 10, 15},
		{5, 0, 5, 10},
		{10, 5, 0, 20},
		{15, 10, 20, 0},
	}
	require.Equal(t, want, m)
	require.Equal(t, 0, m.Travel(2, 2))
	require.Equal(t, 20, m.Travel(3, 2))
}

func TestNewDistanceMatrixFromUpperTriangleRejectsBadShape(t *testing.T) {
	_, err := NewDistanceMatrixFromUpperTriangle(3, [][]int{{1, 2}})
	require.Error(t, err)

	_, err = NewDistanceMatrixFromUpperTriangle(3, [][]int{{1}, {2}})
	require.Error(t, err)

	_, err = NewDistanceMatrixFromUpperTriangle(2, [][]int{{-1}})
	require.Error(t, err)
}

func TestDistanceMatrixValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       DistanceMatrix
		n       int
		wantErr bool
	}{
		{name: "valid", m: DistanceMatrix{{0, 3}, {3, 0}}, n: 2},
		{name: "empty", m: DistanceMatrix{}, n: 0},
		{name: "wrong rows", m: DistanceMatrix{{0, 3}, {3, 0}}, n: 3, wantErr: true},
		{name: "ragged", m: DistanceMatrix{{0, 3}, {3}}, n: 2, wantErr: true},
		{name: "asymmetric", m: DistanceMatrix{{0, 3}, {4, 0}}, n: 2, wantErr: true},
		{name: "negative", m: DistanceMatrix{{0, -3}, {-3, 0}}, n: 2, wantErr: true},
		{name: "diagonal", m: DistanceMatrix{{1, 3}, {3, 0}}, n: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate(tt.n)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
