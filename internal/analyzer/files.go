package analyzer

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
)

// sourceFile pairs a source file's absolute path with its path relative
// to the scan root, which is what exclusion matching and result records
// use.
type sourceFile struct {
	abs string
	rel string
}

// pythonFiles enumerates every .py file under root in deterministic
// lexical order, applying the relative-path exclusion mode. Unreadable
// subtrees are logged and skipped.
func pythonFiles(ctx context.Context, root string, patterns []string) ([]sourceFile, error) {
	var files []sourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			log.Printf("Warning: cannot access %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			// Not relatable to the root: always excluded.
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if excludeByRelPath(rel, patterns) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".py") {
			files = append(files, sourceFile{abs: path, rel: rel})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
