package cfr

import (
	"math"
	"testing"
)

func TestDiscountParams_GetDiscountFactors(t *testing.T) {
	cases := []struct {
		name   string
		params DiscountParams
		iter   int
		pos    float32
		neg    float32
		sum    float32
	}{
		{"vanilla", DiscountParams{}, 10, 1, 1, 1},
		{"linear averaging", DiscountParams{LinearWeighting: true}, 3, 1, 1, 0.75},
		{"regret matching plus", DiscountParams{UseRegretMatchingPlus: true}, 5, 1, 0, 1},
		{"alpha", DiscountParams{DiscountAlpha: 1.5}, 4, 8.0 / 9.0, 1, 1},
		{"beta", DiscountParams{DiscountBeta: 0.5}, 4, 1, 2.0 / 3.0, 1},
		{"gamma", DiscountParams{DiscountGamma: 2.0}, 3, 1, 1, 0.5625},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos, neg, sum := tc.params.GetDiscountFactors(tc.iter)
			if !close32(pos, tc.pos) || !close32(neg, tc.neg) || !close32(sum, tc.sum) {
				t.Errorf("got (%v, %v, %v), want (%v, %v, %v)",
					pos, neg, sum, tc.pos, tc.neg, tc.sum)
			}
		})
	}
}

func close32(x, y float32) bool {
	return math.Abs(float64(x-y)) < 1e-6
}
