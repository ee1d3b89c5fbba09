package services

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{
			name: "identical_vector_is_one",
			a:    []float64{0.5, -0.3, 0.8},
			b:    []float64{0.5, -0.3, 0.8},
			want: 1,
		},
		{
			name: "opposite_vector_is_minus_one",
			a:    []float64{0.5, -0.3},
			b:    []float64{-0.5, 0.3},
			want: -1,
		},
		{
			name: "empty_vectors",
			a:    []float64{},
			b:    []float64{},
			want: 0,
		},
		{
			name: "mismatched_lengths",
			a:    []float64{1, 0},
			b:    []float64{1},
			want: 0,
		},
		{
			name: "zero_magnitude",
			a:    []float64{0, 0},
			b:    []float64{1, 1},
			want: 0,
		},
		{
			name: "orthogonal_vectors",
			a:    []float64{1, 0},
			b:    []float64{0, 1},
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("CosineSimilarity(%v, %v)=%v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestClassifyAgreement(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.85, AgreementStrong},
		{0.8, AgreementStrong},
		{0.6, AgreementPartial},
		{0.5, AgreementPartial},
		{0.1, AgreementOrthogonal},
		{-0.1, AgreementOrthogonal},
		{-0.2, AgreementOrthogonal},
		{-0.3, OppositionPartial},
		{-0.5, OppositionPartial},
		{-0.9, OppositionStrong},
	}

	for _, tc := range cases {
		if got := ClassifyAgreement(tc.score); got != tc.want {
			t.Errorf("ClassifyAgreement(%v)=%q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestClassifyConsensus(t *testing.T) {
	cases := []struct {
		stdDev float64
		want   string
	}{
		{0, ConsensusHigh},
		{0.29, ConsensusHigh},
		{0.3, ConsensusModerate},
		{0.59, ConsensusModerate},
		{0.6, ConsensusLow},
		{1.2, ConsensusLow},
	}

	for _, tc := range cases {
		if got := classifyConsensus(tc.stdDev); got != tc.want {
			t.Errorf("classifyConsensus(%v)=%q, want %q", tc.stdDev, got, tc.want)
		}
	}
}
