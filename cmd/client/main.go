package main

import (
	"context"
	"log"
	"os"

	"github.com/gatehouse-dev/gatehouse/internal/client/cli"
	"github.com/gatehouse-dev/gatehouse/internal/client/client"
	"github.com/gatehouse-dev/gatehouse/internal/client/config"
)

// command picks the subcommand out of os.Args, leaving flag parsing to the
// config package.
func command(args []string) []string {
	for _, a := range args {
		switch a {
		case "register", "login", "ping":
			return []string{a}
		}
	}
	return nil
}

func main() {

	cfg := config.LoadConfig()

	svc, err := client.NewGRPCClient(cfg.ServerEndpointAddr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer svc.Close()

	app := cli.NewApp(svc, os.Stdin, os.Stdout, cfg.RequestTimeout)

	if err := app.Run(context.Background(), command(os.Args[1:])); err != nil {
		log.Fatalf("%v", err)
	}
}
