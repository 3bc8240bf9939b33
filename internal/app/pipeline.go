package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/capture"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/collect"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/generate"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/manifest"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/scan"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/signature"
)

// ErrNoInterface is returned when the scanned sources declare no interface.
var ErrNoInterface = errors.New("no interface found: annotate an interface method with //cmdgen:interface or set interface.name")

// Init scans paths for the interface and captures its signature.
func (a *App) Init(ctx context.Context, paths []string) (*scan.Interface, error) {
	ctx = a.withLogger(ctx)
	res, err := a.scan(ctx, paths)
	if err != nil {
		return nil, err
	}
	if err := a.capture(ctx, res); err != nil {
		return nil, err
	}
	return res.Interface, nil
}

// Collect scans paths for commands and collects all of them.
func (a *App) Collect(ctx context.Context, paths []string) ([]*collect.Result, error) {
	ctx = a.withLogger(ctx)
	res, err := a.scan(ctx, paths)
	if err != nil {
		return nil, err
	}
	return a.collect(ctx, res)
}

// Generate writes the dispatch file from the manifest store. paths are only
// scanned when the package or interface name is not configured.
func (a *App) Generate(ctx context.Context, paths []string) error {
	ctx = a.withLogger(ctx)
	var res *scan.Result
	if a.config.Dispatch.Package == "" || a.config.Interface.Name == "" {
		var err error
		if res, err = a.scan(ctx, paths); err != nil {
			return err
		}
	}
	return a.generate(ctx, res)
}

// Build runs capture, collection and generation over one scan of paths.
func (a *App) Build(ctx context.Context, paths []string) error {
	ctx = a.withLogger(ctx)
	res, err := a.scan(ctx, paths)
	if err != nil {
		return err
	}
	if err := a.capture(ctx, res); err != nil {
		return err
	}
	if _, err := a.collect(ctx, res); err != nil {
		return err
	}
	return a.generate(ctx, res)
}

func (a *App) scan(ctx context.Context, paths []string) (*scan.Result, error) {
	if len(paths) == 0 {
		paths = []string{a.config.Root}
	}
	res, err := scan.Paths(ctx, paths, scan.Options{
		Interface: a.config.Interface.Name,
		Method:    a.config.Interface.Method,
		SkipSuffixes: []string{
			filepath.Base(a.config.Dispatch.Output),
			filepath.Base(a.config.Collect.RetainedOutput),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sources: %w", err)
	}
	a.logger.Debug("Sources scanned.", "paths", paths, "interface", res.Interface != nil, "commands", len(res.Commands))
	return res, nil
}

func (a *App) capture(ctx context.Context, res *scan.Result) error {
	if res.Interface == nil {
		return ErrNoInterface
	}
	rec, err := capture.New(a.store).CaptureMethod(ctx, res.Interface.Method)
	if err != nil {
		return err
	}
	a.logger.Info("Interface captured.",
		"interface", res.Interface.TypeName,
		"method", res.Interface.Method.Name,
		"signature", rec.Raw,
		"origin", res.Interface.Origin,
	)
	return nil
}

func (a *App) collect(ctx context.Context, res *scan.Result) ([]*collect.Result, error) {
	if len(res.Commands) == 0 {
		a.logger.Warn("No command declarations found.")
	}
	cfg := a.config.Collect
	stage := collect.New(a.store, collect.Options{
		RetainOriginal: cfg.RetainOriginal,
		Strictness:     a.config.Strictness(),
		Workers:        cfg.Workers,
	})
	results, err := stage.CollectAll(ctx, res.Commands)
	if err != nil {
		return nil, err
	}

	if cfg.RetainOriginal {
		if err := a.writeRetained(ctx, res, results); err != nil {
			return nil, err
		}
	} else if err := os.Remove(cfg.RetainedOutput); err == nil {
		a.logger.Info("Removed retained declarations.", "path", cfg.RetainedOutput)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove %s: %w", cfg.RetainedOutput, err)
	}

	keys := make([]string, len(results))
	for i, r := range results {
		keys[i] = r.Key
	}
	a.logger.Info("Commands collected.", "count", len(results), "keys", keys)
	return results, nil
}

// writeRetained writes the original declarations so that the program can
// still call the handlers directly. In strict mode a handler whose name the
// generated file also declares is rejected before anything is written.
func (a *App) writeRetained(ctx context.Context, res *scan.Result, results []*collect.Result) error {
	path := a.config.Collect.RetainedOutput
	if len(results) == 0 {
		return nil
	}
	pkg := a.config.Dispatch.Package
	if pkg == "" && res.Interface != nil {
		pkg = res.Interface.Package
	}
	if pkg == "" {
		pkg = res.Package
	}
	if pkg == "" {
		return fmt.Errorf("cannot write %s: %w", path, ErrNoInterface)
	}

	seen := make(map[string]bool)
	var specs []string
	decls := make([]string, len(results))
	funcs := make([]string, len(results))
	for i, r := range results {
		decls[i] = r.Retained
		parsed, err := signature.ParseDecl(r.Retained)
		if err != nil {
			return fmt.Errorf("command %q: %w", r.Record.Name, err)
		}
		funcs[i] = parsed.Name()
		for _, spec := range res.Commands[i].Imports {
			if !seen[spec] {
				seen[spec] = true
				specs = append(specs, spec)
			}
		}
	}

	if a.config.Strictness() == manifest.Strict {
		if err := generate.New(a.store).CheckRetained(ctx, a.dispatchOptions(res), funcs); err != nil {
			return err
		}
	}

	out, err := generate.Retained(pkg, path, specs, decls)
	if err != nil {
		return err
	}
	if err := generate.WriteAtomic(path, out); err != nil {
		return err
	}
	a.logger.Info("Retained declarations written.", "path", path, "count", len(decls))
	return nil
}

// dispatchOptions merges the configured dispatch settings with what the scan
// found.
func (a *App) dispatchOptions(res *scan.Result) generate.Options {
	opts := generate.Options{
		Package:    a.config.Dispatch.Package,
		Interface:  a.config.Interface.Name,
		Method:     a.config.Interface.Method,
		Dispatch:   a.config.Dispatch.Type,
		Default:    a.config.Dispatch.Default,
		Strictness: a.config.Strictness(),
	}
	if res != nil && res.Interface != nil {
		if opts.Package == "" {
			opts.Package = res.Interface.Package
		}
		if opts.Interface == "" {
			opts.Interface = res.Interface.TypeName
		}
		opts.Method = res.Interface.Method.Name
	}
	return opts
}

func (a *App) generate(ctx context.Context, res *scan.Result) error {
	opts := a.dispatchOptions(res)
	if opts.Package == "" || opts.Interface == "" {
		return ErrNoInterface
	}

	path := a.config.Dispatch.Output
	if err := generate.New(a.store).WriteFile(ctx, path, opts); err != nil {
		return err
	}
	a.logger.Info("Dispatch file generated.", "path", path, "type", opts.Dispatch, "default", opts.Default)
	return nil
}
