package pep503_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/wheelhouse/pkg/python/pep503"
	"github.com/datawire/wheelhouse/pkg/python/pep629"
	"github.com/datawire/wheelhouse/pkg/simpleindex"
)

// TestClientRoundTrip generates an index tree, serves it over HTTP, and crawls
// it back: everything the generator indexed must come back out of the crawl,
// with every file link pointing at the configured download URL.
func TestClientRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	const baseURL = "https://example.com/dl"
	tmpdir := t.TempDir()
	cfg := simpleindex.Config{
		WheelsDir: filepath.Join(tmpdir, "wheels"),
		OutputDir: filepath.Join(tmpdir, "simple"),
		BaseURL:   baseURL,
	}
	require.NoError(t, os.MkdirAll(cfg.WheelsDir, 0o777))
	for _, filename := range []string{
		"flash_attn-2.5.0-cp312-cp312-linux_x86_64.whl",
		"flash_attn-2.5.6-cp313-cp313-linux_x86_64.whl",
		"xformers-0.0.23-cp312-cp312-linux_x86_64.whl",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(cfg.WheelsDir, filename), nil, 0o666))
	}
	summary, err := simpleindex.Generate(ctx, cfg)
	require.NoError(t, err)

	server := httptest.NewServer(http.FileServer(http.Dir(cfg.OutputDir)))
	defer server.Close()

	client := pep503.Client{
		BaseURL:  server.URL,
		HTMLHook: pep629.HTMLVersionCheck,
	}

	pkgLinks, err := client.ListPackages(ctx)
	require.NoError(t, err)
	pkgnames := make([]string, 0, len(pkgLinks))
	for _, pkgLink := range pkgLinks {
		pkgnames = append(pkgnames, pkgLink.Text)
	}
	assert.Equal(t, []string{"flash-attn", "xformers"}, pkgnames)

	for _, pkgLink := range pkgLinks {
		fileLinks, err := pkgLink.ListFiles(ctx)
		require.NoError(t, err)
		filenames := make([]string, 0, len(fileLinks))
		for _, fileLink := range fileLinks {
			filenames = append(filenames, fileLink.Text)
			assert.Equal(t, baseURL+"/"+fileLink.Text, fileLink.HRef)
		}
		assert.Equal(t, summary.Packages[pkgLink.Text], filenames)
	}

	// Going straight to a project page by (un-normalized) name skips the
	// root page but lands in the same place.
	fileLinks, err := client.ListPackageFiles(ctx, "Flash_Attn")
	require.NoError(t, err)
	assert.Len(t, fileLinks, 2)

	_, err = client.ListPackageFiles(ctx, "flash attn")
	assert.Error(t, err)
}

func TestClientRepositoryVersion(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
  <head>
    <meta name="pypi:repository-version" content="2.0"/>
    <title>Simple index</title>
  </head>
  <body>
  </body>
</html>
`))
	}))
	defer server.Close()

	client := pep503.Client{
		BaseURL:  server.URL,
		HTMLHook: pep629.HTMLVersionCheck,
	}
	_, err := client.ListPackages(ctx)
	assert.Error(t, err)
}

func TestClientHTTPError(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := pep503.Client{
		BaseURL: server.URL,
	}
	_, err := client.ListPackages(ctx)
	var httpErr *pep503.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}
