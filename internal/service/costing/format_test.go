package costing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedRoundsBinaryValue(t *testing.T) {
	cases := map[float64]string{
		1.005:     "1.00",
		2.675:     "2.67",
		1.045:     "1.04",
		0.125:     "0.13",
		-2.675:    "-2.67",
		165:       "165.00",
		4833.3333: "4833.33",
		5187.5:    "5187.50",
	}

	for in, want := range cases {
		require.Equal(t, want, fixed(in), "fixed(%v)", in)
	}
}
