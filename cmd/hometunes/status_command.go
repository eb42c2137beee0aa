package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hometunes/internal/preflight"
)

func newStatusCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon and host readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			w := newStatusWriter(cmd.OutOrStdout())

			w.section("Daemon")
			printDaemonStatus(cmd.Context(), cmdCtx, w)

			w.blank()
			w.section("Host checks")
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				state := stateOK
				if !result.Passed {
					state = stateFail
				}
				w.check(result.Name, state, result.Detail)
			}

			w.blank()
			w.section("External tools")
			for _, status := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
				state := stateOK
				detail := status.Command
				if !status.Available {
					state = stateFail
					if status.Optional {
						state = stateWarn
					}
					detail = status.Detail
				}
				w.check(status.Name, state, detail)
			}

			return nil
		},
	}
}

func printDaemonStatus(ctx context.Context, cmdCtx *commandContext, w *statusWriter) {
	client, err := cmdCtx.apiClient()
	if err != nil {
		w.check("Server", stateFail, err.Error())
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health, err := client.Health(checkCtx)
	if err != nil {
		w.check("Server", stateFail,
			fmt.Sprintf("unreachable at %s (is hometunesd running?)", cmdCtx.serverAddress()))
		return
	}
	w.check("Server", stateOK,
		fmt.Sprintf("%s (version %s)", cmdCtx.serverAddress(), health.Version))
}
