package main

import (
	"context"
	"os/signal"
	"syscall"

	"postos/cmd"
	"postos/infra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	loadingEnv := infra.NewConfig()
	loadingEnv.InitializeLogging()
	container := infra.NewContainerDI(ctx, loadingEnv)

	cmd.StartAPI(ctx, container)
}
