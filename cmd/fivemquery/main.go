package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Adda-Baaj/fivem-status/internal/config"
	"github.com/Adda-Baaj/fivem-status/internal/logger"
	"github.com/Adda-Baaj/fivem-status/pkg/fivem"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fivemquery failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	host := pflag.StringP("host", "H", "", "server host or IP")
	port := pflag.IntP("port", "p", 30120, "server HTTP port")
	timeout := pflag.Duration("timeout", fivem.DefaultTimeout, "per-request timeout")
	probe := pflag.Bool("probe", false, "log the background connectivity probe result")
	players := pflag.Bool("players", false, "also print the connected players")
	logLevel := pflag.String("log-level", "warn", "log level (debug, info, warn, error)")
	pflag.Parse()

	log, err := logger.Init(&config.Config{AppName: "fivemquery", LogLevel: *logLevel})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	opts := []fivem.Option{fivem.WithTimeout(*timeout), fivem.WithLogger(log)}
	if !*probe {
		opts = append(opts, fivem.WithoutProbe())
	}
	client, err := fivem.New(fivem.Config{Host: *host, Port: *port}, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 4*(*timeout))
	defer cancel()

	name, err := client.ServerName(ctx)
	if err != nil {
		return err
	}
	mapName, err := client.MapName(ctx)
	if err != nil {
		return err
	}
	count, err := client.PlayerCount(ctx)
	if err != nil {
		return err
	}
	maxPlayers, err := client.MaxPlayers(ctx)
	if err != nil {
		return err
	}
	onesync, err := client.OneSync(ctx)
	if err != nil {
		return err
	}
	discord, err := client.Discord(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("address:  %s\n", client.ServerAddress())
	fmt.Printf("name:     %s\n", name)
	fmt.Printf("map:      %s\n", mapName)
	fmt.Printf("players:  %s/%s\n", count, maxPlayers)
	fmt.Printf("onesync:  %s\n", onesync)
	fmt.Printf("discord:  %s\n", discord)

	if *players {
		list, err := client.Players(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			return fmt.Errorf("encode players: %w", err)
		}
	}

	if *probe {
		select {
		case <-client.ProbeDone():
		case <-time.After(*timeout):
		}
	}
	return nil
}
