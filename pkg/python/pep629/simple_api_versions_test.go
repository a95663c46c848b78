package pep629_test

import (
	"strings"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/datawire/wheelhouse/pkg/python/pep629"
)

func parseDoc(t *testing.T, meta string) *html.Node {
	t.Helper()
	page := "<!DOCTYPE html><html><head>" + meta + "<title>x</title></head><body></body></html>"
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestGetVersion(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		InputMeta string
		OutputVal string
		OutputErr bool
	}{
		"declared":   {`<meta name="pypi:repository-version" content="1.0"/>`, "1.0", false},
		"newer":      {`<meta name="pypi:repository-version" content="1.1"/>`, "1.1", false},
		"absent":     {``, "1.0", false},
		"other-meta": {`<meta name="generator" content="wheelhouse"/>`, "1.0", false},
		"garbage":    {`<meta name="pypi:repository-version" content="bogus"/>`, "", true},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ver, err := pep629.GetVersion(parseDoc(t, tcData.InputMeta))
			if tcData.OutputErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tcData.OutputVal, ver)
			}
		})
	}
}

func TestHTMLVersionCheck(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)

	assert.NoError(t, pep629.HTMLVersionCheck(ctx,
		parseDoc(t, `<meta name="pypi:repository-version" content="1.0"/>`)))
	// a newer minor version is compatible (with a warning)
	assert.NoError(t, pep629.HTMLVersionCheck(ctx,
		parseDoc(t, `<meta name="pypi:repository-version" content="1.5"/>`)))
	// a newer major version is not
	assert.Error(t, pep629.HTMLVersionCheck(ctx,
		parseDoc(t, `<meta name="pypi:repository-version" content="2.0"/>`)))
}
