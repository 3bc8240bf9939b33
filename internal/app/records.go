package app

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/manifest"
)

// List prints the captured signature and every stored command.
func (a *App) List(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	iface, err := a.store.GetInterface(ctx)
	switch {
	case errors.Is(err, manifest.ErrNotFound):
		fmt.Fprintln(a.outW, "interface: (none)")
	case err != nil:
		return err
	default:
		fmt.Fprintf(a.outW, "interface: %s\n", iface.Raw)
	}

	keys, err := a.store.CommandKeys(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.outW, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tCODE\tNAME")
	for _, key := range keys {
		rec, err := a.store.GetCommand(ctx, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", key, rec.Code, rec.Name)
	}
	return tw.Flush()
}

// Clean deletes every stored command record and returns how many were
// removed. The interface signature is kept.
func (a *App) Clean(ctx context.Context) (int, error) {
	ctx = a.withLogger(ctx)
	keys, err := a.store.CommandKeys(ctx)
	if err != nil {
		return 0, err
	}
	for _, key := range keys {
		if err := a.store.DeleteCommand(ctx, key); err != nil && !errors.Is(err, manifest.ErrNotFound) {
			return 0, err
		}
	}
	a.logger.Info("Command records removed.", "count", len(keys))
	return len(keys), nil
}
