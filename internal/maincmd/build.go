package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/calestialgem/hlml/internal/demo"
	"github.com/calestialgem/hlml/lang/codegen"
)

// Builtins lists every built-in procedure id the back-end knows how to
// lower, one per line.
func (c *Cmd) Builtins(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, id := range codegen.BuiltinIDs() {
		fmt.Fprintln(stdio.Stdout, id)
	}
	return nil
}

// Build lowers the named demo target (the stand-in for the out-of-scope
// front-end, see internal/demo) to a ".mlog" file under the configured
// artifacts directory.
func (c *Cmd) Build(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := LoadEnvConfig()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	artifactsDir := cfg.ArtifactsDir
	if c.ArtifactsDir != "" {
		artifactsDir = c.ArtifactsDir
	}

	subject := args[0]
	build, ok := demo.Targets[subject]
	if !ok {
		err := fmt.Errorf("unknown target: %s", subject)
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	path, err := codegen.Build(subject, artifactsDir, build())
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	fmt.Fprintln(stdio.Stdout, path)
	return nil
}
