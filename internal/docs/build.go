package docs

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// BuildResult contains the compiled JS and CSS of the viewer.
type BuildResult struct {
	JS  string
	CSS string
}

// BuildAssets compiles the embedded viewer script and stylesheet with
// esbuild, minifying both when minify is set.
func BuildAssets(minify bool) (*BuildResult, error) {
	js, err := buildAsset("static/app.js", api.LoaderJS, minify)
	if err != nil {
		return nil, err
	}
	css, err := buildAsset("static/style.css", api.LoaderCSS, minify)
	if err != nil {
		return nil, err
	}
	return &BuildResult{JS: js, CSS: css}, nil
}

func buildAsset(name string, loader api.Loader, minify bool) (string, error) {
	src, err := staticFiles.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	buildOpts := api.BuildOptions{
		Stdin: &api.StdinOptions{
			Contents:   string(src),
			Sourcefile: name,
			Loader:     loader,
		},
		Write:    false, // Keep in memory for injection
		Platform: api.PlatformBrowser,
		Target:   api.ES2020,
		LogLevel: api.LogLevelWarning,
	}
	if loader == api.LoaderJS {
		buildOpts.Format = api.FormatIIFE
	}

	if minify {
		buildOpts.MinifyWhitespace = true
		buildOpts.MinifyIdentifiers = true
		buildOpts.MinifySyntax = true
	}

	result := api.Build(buildOpts)

	if len(result.Errors) > 0 {
		var errMsg strings.Builder
		for _, e := range result.Errors {
			line, col := 0, 0
			if e.Location != nil {
				line, col = e.Location.Line, e.Location.Column
			}
			fmt.Fprintf(&errMsg, "%s:%d:%d: %s\n", name, line, col, e.Text)
		}
		return "", fmt.Errorf("esbuild errors:\n%s", errMsg.String())
	}

	if len(result.OutputFiles) == 0 {
		return "", fmt.Errorf("no output generated for %s", name)
	}
	return string(result.OutputFiles[0].Contents), nil
}
