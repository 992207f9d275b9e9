package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatFloat(t *testing.T) {
	require.Equal(t, 7.44, FormatFloat(7.4399999999999995, 3))
	require.Equal(t, 1.2, FormatFloat(1.23456, 1))
	require.True(t, math.IsNaN(FormatFloat(math.NaN(), 3)))
	require.True(t, math.IsInf(FormatFloat(math.Inf(1), 3), 1))

	// out of range for the requested decimals
	require.Equal(t, 1e20, FormatFloat(1e20, 9))
	require.Equal(t, 1e300, FormatFloat(1e300, 9))
	require.Equal(t, 14.88, FormatFloat(14.879999999999999, 9))
}

func TestSetupLogger(t *testing.T) {
	require.NoError(t, SetupLogger("debug", true))
	require.NoError(t, SetupLogger("info", false))
	require.Error(t, SetupLogger("loud", false))
}
