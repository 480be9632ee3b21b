package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/agentbrief/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the live preview server",
	Long: `Serve exposes the derivation engine over HTTP:

  POST /api/derive      answers JSON in, result and document out (?enhance=true to use the LLM)
  GET  /api/skills      the skill pack catalog
  GET  /ws/preview      websocket; send answers, receive a partial derivation per message`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := server.Options{Logger: logger}
		if cfg.LLM.Enhance {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			opts.Enhancer = newEnhancer(ctx, true, s.EventRepo())
		}

		fmt.Fprintf(os.Stderr, "Preview server listening on http://%s\n", addr)
		return server.New(addr, server.NewHandler(opts), logger).Run(ctx, 5*time.Second)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:7878)")
}
