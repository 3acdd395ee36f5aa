// Package analyzer implements the static analysis passes over Python
// projects: directory scanning, dependency checking, documentation
// coverage, SRP fact extraction, and naming fact extraction. Every
// analyzer is a synchronous, read-only, single-pass computation that
// returns one immutable result record.
package analyzer

import "time"

// FileRecord describes one filesystem entry found by a project scan.
type FileRecord struct {
	Path string `json:"path"`
	// Size is the file size in bytes; always 0 for directories.
	Size int64 `json:"size"`
	// Extension is the lower-cased extension including the leading dot,
	// omitted for directories and extension-less files.
	Extension   string     `json:"extension,omitempty"`
	IsDirectory bool       `json:"is_directory"`
	ModifiedAt  *time.Time `json:"modified_at,omitempty"`
}

// ProjectScanResult is the aggregate outcome of one directory scan.
// Files preserves traversal order: each directory's record precedes its
// children's records.
type ProjectScanResult struct {
	RootPath         string         `json:"root_path"`
	TotalFiles       int            `json:"total_files"`
	TotalDirectories int            `json:"total_directories"`
	Files            []FileRecord   `json:"files"`
	FileExtensions   map[string]int `json:"file_extensions"`
	ScannedAt        time.Time      `json:"scanned_at"`
}

// DependencyCheckResult partitions a project's declared dependencies.
// Every declared package lands in exactly one of: confirmed used (not
// listed separately), UnusedDependencies, or PackagesWithoutMetadata.
type DependencyCheckResult struct {
	ProjectPath          string   `json:"project_path"`
	DeclaredDependencies []string `json:"declared_dependencies"`
	UsedDependencies     []string `json:"used_dependencies"`
	UnusedDependencies   []string `json:"unused_dependencies"`
	// PackagesWithoutMetadata are declared packages whose import names
	// could not be resolved from installed-distribution metadata; the
	// caller must classify them with curated name-mapping knowledge.
	PackagesWithoutMetadata []string  `json:"packages_without_metadata"`
	CheckedAt               time.Time `json:"checked_at"`
}

// MissingDocstring identifies one undocumented class or function.
type MissingDocstring struct {
	ItemType   string `json:"item_type"` // "class" or "function"
	Name       string `json:"name"`
	FilePath   string `json:"file_path"`
	LineNumber int    `json:"line_number"`
	Signature  string `json:"signature"`
}

// DocumentationAnalysisResult is the outcome of a docstring coverage
// pass. CoveragePercentage is 100.0 when no items were found.
type DocumentationAnalysisResult struct {
	ProjectPath        string             `json:"project_path"`
	FilesAnalyzed      int                `json:"files_analyzed"`
	TotalItems         int                `json:"total_items"`
	DocumentedItems    int                `json:"documented_items"`
	CoveragePercentage float64            `json:"coverage_percentage"`
	MissingDocstrings  []MissingDocstring `json:"missing_docstrings"`
	AnalyzedAt         time.Time          `json:"analyzed_at"`
}

// CodeItem is the per-symbol fact bundle used for single-responsibility
// review. For classes, CallsFunctions lists the public method names and
// ParametersCount is 0.
type CodeItem struct {
	ItemType        string   `json:"item_type"` // "class" or "function"
	Name            string   `json:"name"`
	FilePath        string   `json:"file_path"`
	LineNumber      int      `json:"line_number"`
	Signature       string   `json:"signature"`
	FullCode        string   `json:"full_code"`
	ParametersCount int      `json:"parameters_count"`
	LengthLines     int      `json:"length_lines"`
	CallsFunctions  []string `json:"calls_functions"`
	UsesImports     []string `json:"uses_imports"`
	Docstring       string   `json:"docstring,omitempty"`
}

// SRPAnalysisResult is the outcome of an SRP fact-extraction pass,
// truncated at the caller-supplied item cap across the whole project.
type SRPAnalysisResult struct {
	ProjectPath   string     `json:"project_path"`
	FilesAnalyzed int        `json:"files_analyzed"`
	TotalItems    int        `json:"total_items"`
	CodeItems     []CodeItem `json:"code_items"`
	AnalyzedAt    time.Time  `json:"analyzed_at"`
}

// NamingItem is the per-identifier fact bundle used for naming-quality
// review.
type NamingItem struct {
	ItemType    string `json:"item_type"` // variable, function, class, parameter
	Name        string `json:"name"`
	FilePath    string `json:"file_path"`
	LineNumber  int    `json:"line_number"`
	ContextCode string `json:"context_code"`
	TypeHint    string `json:"type_hint,omitempty"`
	Docstring   string `json:"docstring,omitempty"`
	Scope       string `json:"scope"` // local, function, method, parameter, class
}

// NamingAnalysisResult is the outcome of a naming fact-extraction pass.
type NamingAnalysisResult struct {
	ProjectPath   string       `json:"project_path"`
	FilesAnalyzed int          `json:"files_analyzed"`
	TotalItems    int          `json:"total_items"`
	NamingItems   []NamingItem `json:"naming_items"`
	AnalyzedAt    time.Time    `json:"analyzed_at"`
}
