package region

import (
	"testing"

	"github.com/anvilgo/anvil/errs"
	"github.com/stretchr/testify/require"
)

func TestParseFilename_Valid(t *testing.T) {
	x, z, err := ParseFilename("r.3.-7.mca")
	require.NoError(t, err)
	require.Equal(t, 3, x)
	require.Equal(t, -7, z)
}

func TestParseFilename_Invalid(t *testing.T) {
	cases := []string{
		"r.3.mca",
		"region.3.7.mca",
		"r.3.7.mcr",
		"r.a.7.mca",
		"not-a-region-file",
	}

	for _, name := range cases {
		_, _, err := ParseFilename(name)
		require.ErrorIsf(t, err, errs.ErrInvalidFilename, "name=%s", name)
	}
}

func TestFilename_RoundTrip(t *testing.T) {
	name := Filename(-2, 5)
	require.Equal(t, "r.-2.5.mca", name)

	x, z, err := ParseFilename(name)
	require.NoError(t, err)
	require.Equal(t, -2, x)
	require.Equal(t, 5, z)
}
