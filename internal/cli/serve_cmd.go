package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultAddr = ":8787"

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sync server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.ServeFunc == nil {
				return fmt.Errorf("sync server is not configured")
			}
			return app.ServeFunc(addr)
		},
	}

	fallback := os.Getenv("POMOPLAN_ADDR")
	if fallback == "" {
		fallback = defaultAddr
	}
	cmd.Flags().StringVar(&addr, "addr", fallback, "Listen address")

	return cmd
}
