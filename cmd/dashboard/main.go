// Терминальный дашборд займов. Подключается к HTTP API сервера,
// восстанавливает сессию из сохранённого токена и запускает цикл команд.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/magabrotheeeer/loan-dashboard/internal/dashboard/cli"
	"github.com/magabrotheeeer/loan-dashboard/internal/dashboard/gateway"
	"github.com/magabrotheeeer/loan-dashboard/internal/dashboard/session"
)

func main() {
	var (
		addr      string
		tokenFile string
	)
	flag.StringVar(&addr, "addr", "http://localhost:8080", "loan dashboard server address")
	flag.StringVar(&tokenFile, "token-file", defaultTokenFile(), "path to the saved session token")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gw := gateway.New(addr)
	sess := session.New(gw, tokenFile)
	app := cli.NewApp(gw, sess)

	if err := app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".loan-dashboard", "token")
}
