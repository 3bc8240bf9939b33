// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The dapper-alco-boost Authors
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/ctxlog"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// hclFile is the decoding target for a configuration file. Attributes are
// pointers so that absent ones keep their defaults.
type hclFile struct {
	Manifest  *hclManifest  `hcl:"manifest,block"`
	Interface *hclInterface `hcl:"interface,block"`
	Dispatch  *hclDispatch  `hcl:"dispatch,block"`
	Collect   *hclCollect   `hcl:"collect,block"`
	Log       *hclLog       `hcl:"log,block"`
}

type hclManifest struct {
	Dir *string `hcl:"dir,optional"`
}

type hclInterface struct {
	Name   *string `hcl:"name,optional"`
	Method *string `hcl:"method,optional"`
}

type hclDispatch struct {
	Package *string `hcl:"package,optional"`
	Type    *string `hcl:"type,optional"`
	Default *string `hcl:"default,optional"`
	Output  *string `hcl:"output,optional"`
}

type hclCollect struct {
	RetainOriginal *bool   `hcl:"retain_original,optional"`
	RetainedOutput *string `hcl:"retained_output,optional"`
	Strictness     *string `hcl:"strictness,optional"`
	Workers        *int    `hcl:"workers,optional"`
}

type hclLog struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// Load reads the configuration file at path on top of Default. Relative
// paths in the file are resolved against its directory. When path does not
// exist and required is false, the defaults are returned. environ
// is exposed to expressions as the `env` object, in os.Environ form.
func Load(ctx context.Context, path string, required bool, environ []string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := Default()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !required {
		logger.Debug("No configuration file found, using defaults.", "path", path)
		return model, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, newEvalContext(environ), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}
	parsed.applyTo(model)
	model.resolvePaths(filepath.Dir(path))

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	logger.Debug("Configuration loaded.", "path", path)
	return model, nil
}

func newEvalContext(environ []string) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"coalesce": stdlib.CoalesceFunc,
			"getenv":   getenvFunc(env),
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
		},
	}
}

// getenvFunc returns getenv(name, [default]), which unlike env.NAME does
// not fail for unset variables.
func getenvFunc(env map[string]cty.Value) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
		},
		VarParam: &function.Parameter{Name: "default", Type: cty.String},
		Type:     function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if len(args) > 2 {
				return cty.NilVal, fmt.Errorf("getenv takes at most 2 arguments, got %d", len(args))
			}
			if v, ok := env[args[0].AsString()]; ok {
				return v, nil
			}
			if len(args) == 2 {
				return args[1], nil
			}
			return cty.StringVal(""), nil
		},
	})
}

func (f *hclFile) applyTo(m *Model) {
	if b := f.Manifest; b != nil {
		set(&m.Manifest.Dir, b.Dir)
	}
	if b := f.Interface; b != nil {
		set(&m.Interface.Name, b.Name)
		set(&m.Interface.Method, b.Method)
	}
	if b := f.Dispatch; b != nil {
		set(&m.Dispatch.Package, b.Package)
		set(&m.Dispatch.Type, b.Type)
		set(&m.Dispatch.Default, b.Default)
		set(&m.Dispatch.Output, b.Output)
	}
	if b := f.Collect; b != nil {
		set(&m.Collect.RetainOriginal, b.RetainOriginal)
		set(&m.Collect.RetainedOutput, b.RetainedOutput)
		set(&m.Collect.Strictness, b.Strictness)
		set(&m.Collect.Workers, b.Workers)
	}
	if b := f.Log; b != nil {
		set(&m.Log.Level, b.Level)
		set(&m.Log.Format, b.Format)
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
