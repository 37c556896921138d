package reader

import (
	"path/filepath"
	"strings"
)

// Format identifies how a file is decoded
type Format int

const (
	FormatDelimited Format = iota
	FormatParquet
)

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return FormatParquet
	}
	return FormatDelimited
}

// DelimiterFor returns the delimiter to use for path: tab for .tsv and
// .tab files, otherwise fallback.
func DelimiterFor(path string, fallback rune) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return '\t'
	default:
		return fallback
	}
}

// Open loads path as parquet or delimited text depending on its extension.
//
// A zero delimiter means: tab for .tsv files, comma otherwise.
func Open(path string, delimiter rune) (*Table, error) {
	if DetectFormat(path) == FormatParquet {
		return LoadParquet(path)
	}
	if delimiter == 0 {
		delimiter = DelimiterFor(path, ',')
	}
	return LoadDelimited(path, delimiter)
}
