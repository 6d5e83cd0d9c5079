package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-tree-sync/internal/client"
	"github.com/MKhiriev/go-tree-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	code := client.Execute(ctx, client.NewRootCommand(info), os.Args[1:])

	stop()
	os.Exit(code)
}
