// Command minify writes minified copies of the templates and static assets to
// dist/, which the server prefers in production. A single file can be
// minified with -input, -output and -type.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

var mediaTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
}

func main() {
	var (
		srcDir     = flag.String("src", ".", "Project root containing templates/ and static/")
		outDir     = flag.String("out", "dist", "Output directory")
		inputFile  = flag.String("input", "", "Single input file path")
		outputFile = flag.String("output", "", "Single output file path")
		fileType   = flag.String("type", "", "Single file type (css, js or html)")
	)
	flag.Parse()

	m := newMinifier()

	if *inputFile != "" || *outputFile != "" {
		if *inputFile == "" || *outputFile == "" || *fileType == "" {
			log.Fatal().Msg("usage: minify -input=<file> -output=<file> -type=<css|js|html>")
		}
		mediaType, ok := mediaTypes["."+strings.ToLower(*fileType)]
		if !ok {
			log.Fatal().Str("type", *fileType).Msg("unsupported file type (supported: css, js, html)")
		}
		if _, err := minifyFile(m, *inputFile, *outputFile, mediaType); err != nil {
			log.Fatal().Err(err).Str("input", *inputFile).Msg("minify failed")
		}
		fmt.Printf("Successfully minified %s -> %s\n", *inputFile, *outputFile)
		return
	}

	total := 0
	for _, dir := range []string{"templates", "static"} {
		n, err := minifyTree(m, filepath.Join(*srcDir, dir), filepath.Join(*outDir, dir))
		if err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("minify failed")
		}
		total += n
	}
	fmt.Printf("Minified %d files into %s\n", total, *outDir)
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{
		TemplateDelims:   html.GoTemplateDelims,
		KeepDocumentTags: true,
		KeepEndTags:      true,
	})
	m.AddFunc("application/javascript", js.Minify)
	return m
}

// minifyTree minifies every supported file under src into dst and copies
// everything else unchanged. It returns the number of files minified.
func minifyTree(m *minify.M, src, dst string) (int, error) {
	count := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return copyFile(path, target)
		}
		ratio, err := minifyFile(m, path, target, mediaType)
		if err != nil {
			return err
		}
		log.Info().Str("file", path).Float64("reduction_pct", ratio).Msg("minified")
		count++
		return nil
	})
	return count, err
}

// minifyFile minifies one file and returns the size reduction in percent.
func minifyFile(m *minify.M, srcPath, dstPath, mediaType string) (float64, error) {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return 0, err
	}
	minified, err := m.Bytes(mediaType, src)
	if err != nil {
		return 0, fmt.Errorf("minify %s: %w", srcPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(dstPath, minified, 0644); err != nil {
		return 0, err
	}
	if len(src) == 0 {
		return 0, nil
	}
	return float64(len(src)-len(minified)) / float64(len(src)) * 100, nil
}

func copyFile(srcPath, dstPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(dstPath, data, 0644)
}
