// Package capture implements the interface capture stage: it records the
// canonical signature that every command handler must match.
package capture

import (
	"context"
	"fmt"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/ctxlog"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/manifest"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/signature"
)

// Stage captures the interface signature into a manifest store.
type Stage struct {
	store manifest.Store
}

// New returns a capture stage writing to store.
func New(store manifest.Store) *Stage {
	return &Stage{store: store}
}

// Capture records the signature of a single interface method spec, e.g.
// "Execute(ctx context.Context) error". Any previous record is replaced.
func (s *Stage) Capture(ctx context.Context, methodSrc string) (*manifest.InterfaceRecord, error) {
	m, err := signature.ParseMethod(methodSrc)
	if err != nil {
		return nil, err
	}
	return s.CaptureMethod(ctx, m)
}

// CaptureFromInterface records the signature of method in a full
// "type X interface { ... }" declaration. An empty method selects the
// interface's only method.
func (s *Stage) CaptureFromInterface(ctx context.Context, ifaceSrc, method string) (*manifest.InterfaceRecord, error) {
	m, err := signature.ParseInterface(ifaceSrc, method)
	if err != nil {
		return nil, err
	}
	return s.CaptureMethod(ctx, m)
}

// CaptureMethod records the signature of an already parsed method.
func (s *Stage) CaptureMethod(ctx context.Context, m *signature.Method) (*manifest.InterfaceRecord, error) {
	rec := &manifest.InterfaceRecord{Raw: signature.Canonical(m.Type)}
	if err := s.store.PutInterface(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store interface signature: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Interface signature captured.", "method", m.Name, "signature", rec.Raw)
	return rec, nil
}
