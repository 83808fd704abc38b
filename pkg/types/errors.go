// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// FileAccessError reports a PDF that could not be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("reading PDF %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError reports a classified record whose date or time fields cannot be
// turned into timestamps. Source and Chunk locate the record in its PDF.
type ParseError struct {
	Source string
	Chunk  int
	Field  Field
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s %q in %s chunk %d: %v",
		e.Field.Column(), e.Value, e.Source, e.Chunk, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageError reports a failed connection, schema, or insert operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
