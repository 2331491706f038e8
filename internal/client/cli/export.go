package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Export downloads the price history CSV for the named catalog vegetable and
// writes it to the current directory under the server-provided filename.
func (a *App) Export(ctx context.Context, name string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to export.")
		return nil
	}

	items, err := a.client.ListCatalog(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		if !strings.EqualFold(item.Name, name) {
			continue
		}
		export, err := a.client.ExportCSV(ctx, item)
		if err != nil {
			return err
		}
		if err := os.WriteFile(export.Filename, export.Data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Wrote %s (%d bytes)\n", export.Filename, len(export.Data))
		return nil
	}

	return fmt.Errorf("no catalog vegetable named %q", name)
}
