package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fpawel/hexfloat/internal/app"
	"github.com/fpawel/hexfloat/internal/config"
	"github.com/fpawel/hexfloat/internal/pkg"
	"github.com/powerman/structlog"
)

func main() {
	pkg.InitLog()

	configFilename := config.DefaultFilename()
	if len(os.Args) > 1 {
		configFilename = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := app.Main(ctx, configFilename)
	stop()
	if err != nil {
		pkg.PrintMerryStacktrace(log, err)
		log.Fatal(err)
	}
}

var log = structlog.New()
