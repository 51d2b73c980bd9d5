package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/foodboard/internal/api"
	"github.com/jask/foodboard/internal/config"
	"github.com/jask/foodboard/internal/logging"
	"github.com/jask/foodboard/internal/service"
	"github.com/jask/foodboard/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "init-config" {
		if err := config.Save(cfg); err != nil {
			log.Fatalf("save config: %v", err)
		}
		fmt.Println("config written")
		return
	}

	logger, closer, err := logging.OpenFile(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer closer.Close()

	client, err := api.New(cfg.API.BaseURL, api.WithTimeout(cfg.API.Timeout))
	if err != nil {
		log.Fatalf("api client: %v", err)
	}
	logger.Info(ctx, "starting dashboard", "base_url", client.BaseURL())

	dash := service.NewDashboard(client, logger)

	p := tea.NewProgram(tui.New(ctx, cfg, dash, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
