package analyzer

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ScanOptions controls a project structure scan.
type ScanOptions struct {
	// ExcludePatterns are merged with DefaultExcludePatterns and matched
	// as name globs during descent.
	ExcludePatterns []string
	// MaxDepth limits recursion: entries at depth >= MaxDepth are not
	// recorded (depth 0 is the root's direct children). Negative means
	// unlimited.
	MaxDepth int
}

// ScanProject recursively enumerates a directory tree and returns its
// structure. Permission and stat failures are logged and skipped;
// only a missing or non-directory root is fatal.
func ScanProject(ctx context.Context, rootPath string, opts ScanOptions) (*ProjectScanResult, error) {
	if err := validateRoot(rootPath); err != nil {
		return nil, err
	}
	patterns := MergeExcludes(opts.ExcludePatterns)

	files, err := scanDir(ctx, rootPath, patterns, opts.MaxDepth, 0)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []FileRecord{}
	}

	result := &ProjectScanResult{
		RootPath:       rootPath,
		Files:          files,
		FileExtensions: make(map[string]int),
		ScannedAt:      time.Now(),
	}
	for _, f := range files {
		if f.IsDirectory {
			result.TotalDirectories++
			continue
		}
		result.TotalFiles++
		if f.Extension != "" {
			result.FileExtensions[f.Extension]++
		}
	}
	return result, nil
}

// scanDir returns the records for one directory's entries, each
// directory immediately followed by its recursive contents. A depth at
// or beyond the limit cuts the branch.
func scanDir(ctx context.Context, dir string, patterns []string, maxDepth, depth int) ([]FileRecord, error) {
	if maxDepth >= 0 && depth >= maxDepth {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Warning: cannot read directory %s: %v", dir, err)
		return nil, nil
	}

	var records []FileRecord
	for _, entry := range entries {
		if excludeByName(entry.Name(), patterns) {
			continue
		}

		full := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			log.Printf("Warning: cannot stat %s: %v", full, err)
			continue
		}

		rec := FileRecord{
			Path:        full,
			IsDirectory: entry.IsDir(),
		}
		if !entry.IsDir() {
			rec.Size = info.Size()
			if ext := strings.ToLower(filepath.Ext(entry.Name())); ext != "" {
				rec.Extension = ext
			}
		}
		mod := info.ModTime()
		rec.ModifiedAt = &mod
		records = append(records, rec)

		if entry.IsDir() {
			sub, err := scanDir(ctx, full, patterns, maxDepth, depth+1)
			if err != nil {
				return nil, err
			}
			records = append(records, sub...)
		}
	}
	return records, nil
}
