package main

import (
	"skyfisher-backend/cmd/skyfisher-cli/commands"
	"skyfisher-backend/lib/serviceutil"
	"skyfisher-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "skyfisher-cli")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(ctx)
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
