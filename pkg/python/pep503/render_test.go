package pep503_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datawire/wheelhouse/pkg/python/pep503"
	"github.com/datawire/wheelhouse/pkg/testutil"
)

func TestRenderProjectPage(t *testing.T) {
	t.Parallel()
	expected := "<!DOCTYPE html>\n" +
		"<html>\n" +
		"<head>\n" +
		"  <meta name=\"pypi:repository-version\" content=\"1.0\"/>\n" +
		"  <title>Links for flash-attn</title>\n" +
		"</head>\n" +
		"<body>\n" +
		"  <h1>Links for flash-attn</h1>\n" +
		"  <a href=\"https://example.com/dl/flash_attn-2.5.0-cp312-cp312-linux_x86_64.whl\">flash_attn-2.5.0-cp312-cp312-linux_x86_64.whl</a><br/>\n" +
		"  <a href=\"https://example.com/dl/flash_attn-2.5.6-cp313-cp313-linux_x86_64.whl\">flash_attn-2.5.6-cp313-cp313-linux_x86_64.whl</a><br/>\n" +
		"</body>\n" +
		"</html>\n"

	// Input order must not matter, trailing slashes on the base URL must
	// not double up, and duplicates must collapse.
	inputs := [][]string{
		{
			"flash_attn-2.5.0-cp312-cp312-linux_x86_64.whl",
			"flash_attn-2.5.6-cp313-cp313-linux_x86_64.whl",
		},
		{
			"flash_attn-2.5.6-cp313-cp313-linux_x86_64.whl",
			"flash_attn-2.5.0-cp312-cp312-linux_x86_64.whl",
		},
		{
			"flash_attn-2.5.0-cp312-cp312-linux_x86_64.whl",
			"flash_attn-2.5.6-cp313-cp313-linux_x86_64.whl",
			"flash_attn-2.5.0-cp312-cp312-linux_x86_64.whl",
		},
	}
	for _, baseURL := range []string{"https://example.com/dl", "https://example.com/dl/", "https://example.com/dl//"} {
		for _, filenames := range inputs {
			actual := pep503.RenderProjectPage("flash-attn", filenames, baseURL)
			testutil.AssertEqualText(t, expected, actual)
		}
	}
}

func TestRenderProjectPageEscaping(t *testing.T) {
	t.Parallel()
	page := pep503.RenderProjectPage("demo",
		[]string{"demo-1.0-py3-none-any.whl"},
		"https://example.com/dl?a=1&b=2")
	assert.Contains(t, page, `href="https://example.com/dl?a=1&amp;b=2/demo-1.0-py3-none-any.whl"`)
	assert.NotContains(t, page, "b=2/demo-1.0-py3-none-any.whl\"&")
}

func TestRenderRootPage(t *testing.T) {
	t.Parallel()
	expected := "<!DOCTYPE html>\n" +
		"<html>\n" +
		"<head>\n" +
		"  <meta name=\"pypi:repository-version\" content=\"1.0\"/>\n" +
		"  <title>Simple Index</title>\n" +
		"</head>\n" +
		"<body>\n" +
		"  <h1>Simple Index</h1>\n" +
		"  <a href=\"flash-attn/\">flash-attn</a><br/>\n" +
		"  <a href=\"xformers/\">xformers</a><br/>\n" +
		"</body>\n" +
		"</html>\n"

	// Raw distribution names are normalized, re-sorted, and deduplicated.
	inputs := [][]string{
		{"flash-attn", "xformers"},
		{"xformers", "flash-attn"},
		{"Flash_Attn", "xformers", "flash.attn"},
	}
	for _, pkgnames := range inputs {
		testutil.AssertEqualText(t, expected, pep503.RenderRootPage(pkgnames))
	}
}

func TestRenderRootPageEmpty(t *testing.T) {
	t.Parallel()
	page := pep503.RenderRootPage(nil)
	assert.Contains(t, page, "<title>Simple Index</title>")
	assert.NotContains(t, page, "<a ")
}
