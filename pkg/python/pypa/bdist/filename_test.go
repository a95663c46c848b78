package bdist_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/wheelhouse/pkg/python/pep425"
	"github.com/datawire/wheelhouse/pkg/python/pypa/bdist"
	"github.com/datawire/wheelhouse/pkg/testutil"
)

func TestParseFilename(t *testing.T) {
	t.Parallel()
	testcases := map[string]*bdist.FileNameData{
		"flash_attn-2.5.0-cp312-cp312-linux_x86_64.whl": {
			Distribution:     "flash_attn",
			Version:          "2.5.0",
			CompatibilityTag: pep425.Tag{Python: "cp312", ABI: "cp312", Platform: "linux_x86_64"},
		},
		"distribution-1.0-py27-none-any.whl": {
			Distribution:     "distribution",
			Version:          "1.0",
			CompatibilityTag: pep425.Tag{Python: "py27", ABI: "none", Platform: "any"},
		},
		"six-1.16.0-py2.py3-none-any.whl": {
			Distribution:     "six",
			Version:          "1.16.0",
			CompatibilityTag: pep425.Tag{Python: "py2.py3", ABI: "none", Platform: "any"},
		},

		// too few fields
		"bad.whl":           nil,
		"not-a-wheel.txt":   nil,
		"a-1.0-cp312.whl":   nil,
		"":                  nil,
		"flash_attn.whl":    nil,
		"a-1.0-x-y-z":       nil, // no suffix
		"a-1.0-x-y-z.WHL":   nil, // suffix is case-sensitive
		"a-1.0-x-y-z.whl.x": nil,
		// the optional six-field build-tag form is not accepted
		"flash_attn-2.5.0-1-cp312-cp312-linux_x86_64.whl": nil,
		// empty fields
		"a--x-y-z.whl":     nil,
		"a-1.0-x-y-.whl":   nil,
		"-1.0-x-y-z.whl":   nil,
		"a-1.0--none-.whl": nil,
	}
	for filename, expected := range testcases {
		filename := filename
		expected := expected
		t.Run(filename, func(t *testing.T) {
			t.Parallel()
			actual, err := bdist.ParseFilename(filename)
			if expected == nil {
				assert.ErrorIs(t, err, bdist.ErrMalformedFilename)
				assert.Nil(t, actual)
			} else {
				require.NoError(t, err)
				assert.Equal(t, expected, actual)
			}
		})
	}
}

// safeField generates a non-empty dash-free field value.
func safeField(rnd *rand.Rand) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789._"
	buf := make([]byte, 1+rnd.Intn(12))
	for i := range buf {
		buf[i] = alphabet[rnd.Intn(len(alphabet))]
	}
	return string(buf)
}

func TestFilenameRoundTrip(t *testing.T) {
	t.Parallel()
	testutil.QuickCheck(t,
		func(distribution, version, python, abi, platform string) bool {
			data := bdist.FileNameData{
				Distribution: distribution,
				Version:      version,
				CompatibilityTag: pep425.Tag{
					Python:   python,
					ABI:      abi,
					Platform: platform,
				},
			}
			parsed, err := bdist.ParseFilename(bdist.GenerateFilename(data))
			return err == nil && *parsed == data
		},
		testutil.QuickConfig{
			Values: func(values []reflect.Value, rnd *rand.Rand) {
				for i := range values {
					values[i] = reflect.ValueOf(safeField(rnd))
				}
			},
		},
		[]interface{}{"flash_attn", "2.5.0", "cp312", "cp312", "linux_x86_64"},
		[]interface{}{"six", "1.16.0", "py2.py3", "none", "any"},
		[]interface{}{".", ".", ".", ".", "."},
	)
}
