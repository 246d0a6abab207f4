// Package codegen implements the code-generation back-end: it lowers a
// checked semantic.Target into a linear list of target-dialect assembly
// instructions and serializes it as a ".mlog" text file.
package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/calestialgem/hlml/lang/semantic"
)

// ErrMissingEntrypoint is returned when the target's own source has no
// entrypoint (spec.md §7).
var ErrMissingEntrypoint = errors.New("there is no entrypoint in the target!")

// OutputWriteError wraps a failure to write the compiled artifact, carrying
// the destination path as the error's subject (spec.md §7).
type OutputWriteError struct {
	Path  string
	Cause error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("could not write to the output file!: %s: %s", e.Path, e.Cause)
}

func (e *OutputWriteError) Unwrap() error { return e.Cause }

// Build lowers target to its instruction stream and writes it to
// "{artifactsDir}/{target.Name}.mlog", returning the path written.
// Subject identifies the compilation for diagnostics (it is not otherwise
// interpreted). No output file is created if Build returns an error
// (spec.md §5, §7): the program is fully built in memory first.
func Build(subject, artifactsDir string, target *semantic.Target) (string, error) {
	_ = subject // carried for diagnostic context only, per spec.md §6.3

	src, ok := target.Sources[target.Name]
	if !ok || src.Entrypoint == nil {
		return "", ErrMissingEntrypoint
	}

	e := newEmitter(target)
	e.run(src)

	var buf bytes.Buffer
	if err := e.prog.Serialize(&buf); err != nil {
		return "", &OutputWriteError{Path: artifactsDir, Cause: err}
	}

	path := filepath.Join(artifactsDir, target.Name+".mlog")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", &OutputWriteError{Path: path, Cause: err}
	}
	return path, nil
}
