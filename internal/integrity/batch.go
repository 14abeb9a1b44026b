package integrity

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// ValidateDirectory validates every .svg container in containersDir. When
// originalsDir is non-empty, candidate originals are paired by filename stem.
// Files are processed on up to workers goroutines (0 picks a default) but the
// result is always ordered by filename; one file's failure never aborts the
// batch.
func (v Validator) ValidateDirectory(ctx context.Context, containersDir, originalsDir string, workers int) (BatchResult, error) {
	result := BatchResult{Reports: make(map[string]Report)}

	entries, err := os.ReadDir(containersDir)
	if err != nil {
		return result, fmt.Errorf("read containers directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".svg") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	result.Files = files

	originals, err := indexOriginals(originalsDir)
	if err != nil {
		return result, err
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	reports := make([]Report, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				reports[idx] = v.validateFile(
					filepath.Join(containersDir, files[idx]),
					originals[stem(files[idx])],
				)
			}
		}()
	}

	for idx := range files {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return result, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	for idx, name := range files {
		report := reports[idx]
		report.Path = name
		result.Reports[name] = report
		result.Totals.Processed++
		if report.DataIntegrityValid {
			result.Totals.Valid++
		}
		if len(report.Errors) > 0 {
			result.Totals.Errored++
		}
	}
	return result, nil
}

// validateFile reads one container (and its optional original) and validates
// it. Read failures become report errors so the batch keeps going.
func (v Validator) validateFile(containerPath, originalPath string) Report {
	document, err := os.ReadFile(containerPath)
	if err != nil {
		var report Report
		report.addError(fmt.Sprintf("read container: %v", err))
		return report
	}

	var original []byte
	if originalPath != "" {
		original, err = os.ReadFile(originalPath)
		if err != nil {
			var report Report
			report.addError(fmt.Sprintf("read original: %v", err))
			return report
		}
	}
	return v.Validate(string(document), original)
}

// indexOriginals maps filename stems to candidate original paths. With
// multiple files sharing a stem the lexically first wins.
func indexOriginals(dir string) (map[string]string, error) {
	index := make(map[string]string)
	if dir == "" {
		return index, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read originals directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		key := stem(name)
		if _, exists := index[key]; !exists {
			index[key] = filepath.Join(dir, name)
		}
	}
	return index, nil
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
