package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"cme-be/internal/bootstrap"
	"cme-be/internal/config"
	"cme-be/internal/dto"
	"cme-be/internal/pkg/serverutils"
	"cme-be/internal/service"
	"cme-be/pkg/database"

	"github.com/spf13/cobra"
)

var (
	clientsFile string
	resetMdbs   bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import MDB master data and API clients",
	Long: `seed imports the MDB master data found in the crawler directory and
creates the API clients listed in a JSON file. Existing clients are kept.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&clientsFile, "clients", "clients.json", "JSON array of {\"name\", \"secret\"} API clients")
	rootCmd.Flags().BoolVar(&resetMdbs, "reset-mdbs", false, "delete all persons before importing the master data")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSeed(ctx context.Context) error {
	cfg := config.Load()
	// The seed never publishes events.
	cfg.App.NatsURL = ""

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	defer container.Close()

	log.Println("Seeding MDB master data...")
	var res *dto.ImportMdbsResponse
	if resetMdbs {
		res, err = container.MdbService.InitCollection(ctx)
	} else {
		res, err = container.MdbService.ImportFromCrawler(ctx)
	}
	if err != nil {
		return fmt.Errorf("mdb import: %w", err)
	}
	log.Printf("Imported %d persons", res.Imported)

	log.Println("Seeding API clients...")
	clients, err := readClients(clientsFile)
	if err != nil {
		return err
	}
	created, err := seedClients(ctx, container.AuthService, clients)
	if err != nil {
		return err
	}

	log.Printf("Seeding completed! %d clients created", created)
	return nil
}

func seedClients(ctx context.Context, auth service.IAuthService, clients []dto.CreateClientRequest) (int, error) {
	created := 0
	for _, c := range clients {
		if err := serverutils.ValidateStruct(&c); err != nil {
			log.Printf("Skipping client %q: %v", c.Name, err)
			continue
		}
		if _, err := auth.CreateClient(ctx, &c); err != nil {
			if errors.Is(err, service.ErrClientExists) {
				log.Printf("Client '%s' already exists, skipping...", c.Name)
				continue
			}
			return created, fmt.Errorf("create client %q: %w", c.Name, err)
		}
		log.Printf("Created client: %s", c.Name)
		created++
	}
	return created, nil
}

func readClients(path string) ([]dto.CreateClientRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Info: %s not found, no clients seeded", path)
			return nil, nil
		}
		return nil, err
	}
	var clients []dto.CreateClientRequest
	if err := json.Unmarshal(data, &clients); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return clients, nil
}
