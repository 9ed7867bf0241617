package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/scrapec/internal/compiler"
	"github.com/vk/scrapec/internal/ctxlog"
	"github.com/vk/scrapec/internal/ir"
	"github.com/vk/scrapec/internal/project"
)

// Run loads the input project, compiles it and writes the compiled document.
// The output file is created only after compilation and encoding succeed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	p, err := project.Load(ctx, a.config.InputPath, project.Options{RawJSON: a.config.RawJSON})
	if err != nil {
		return err
	}

	doc, err := compiler.Compile(ctx, p, a.config.Sprite, a.registry)
	if err != nil {
		return err
	}

	digest, err := ir.Digest(doc)
	if err != nil {
		return err
	}

	output := ir.OutputPath(a.config.InputPath, a.config.OutputPath)
	if err := writeDocument(output, doc, ir.EncodeOptions{
		Indent:    a.config.Indent,
		Canonical: a.config.Canonical,
	}); err != nil {
		return err
	}

	a.logger.Info("Compilation finished.",
		"output", output,
		"blocks", len(doc.Blocks),
		"ids", doc.IDs,
		"digest", digest,
	)

	a.logger.Debug("App.Run method finished.")
	return nil
}

// writeDocument encodes doc into a temporary file beside output and renames it
// into place, so a failed write never leaves a partial document behind.
func writeDocument(output string, doc *ir.Document, opts ir.EncodeOptions) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(output), ".scrape-*")
	if err != nil {
		return fmt.Errorf("write output %q: %w", output, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = ir.Encode(tmp, doc, opts); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("write output %q: %w", output, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write output %q: %w", output, err)
	}
	if err = os.Rename(tmp.Name(), output); err != nil {
		return fmt.Errorf("write output %q: %w", output, err)
	}
	return nil
}
