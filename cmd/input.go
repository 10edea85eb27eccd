package cmd

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Input opens a file or every regular file in a directory (in name order)
// as one stream. Files ending in .gz are decompressed.
func Input(inputPath string) (reader io.Reader, closeall func(), err error) {
	stat, err := os.Stat(inputPath)
	if err != nil {
		return nil, nil, err
	}
	if stat.IsDir() {
		return InputDir(inputPath)
	}
	return InputFile(inputPath)
}

func InputFile(inputPath string) (reader io.Reader, closeall func(), err error) {
	freader, err := os.Open(inputPath)
	if err != nil {
		return nil, nil, err
	}
	if strings.HasSuffix(inputPath, ".gz") {
		greader, err := gzip.NewReader(freader)
		if err != nil {
			freader.Close()
			return nil, nil, err
		}
		return greader, func() {
			greader.Close()
			freader.Close()
		}, nil
	}
	return freader, func() {
		freader.Close()
	}, nil
}

func InputDir(inputDir string) (reader io.Reader, closeall func(), err error) {
	var readers []io.Reader
	var closers []func()
	closeAll := func() {
		for _, closer := range closers {
			closer()
		}
	}
	dir, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, nil, err
	}
	for _, entry := range dir {
		if entry.IsDir() {
			continue
		}
		creader, closer, err := InputFile(filepath.Join(inputDir, entry.Name()))
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		readers = append(readers, creader)
		closers = append(closers, closer)
	}
	return io.MultiReader(readers...), closeAll, nil
}

// Output creates path, or returns stdout when path is "" or "-".
func Output(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
