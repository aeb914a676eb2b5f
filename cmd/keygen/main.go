// cmd/keygen/main.go

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"trendpulse/internal/adapter/sheets"
	"trendpulse/internal/config"
	"trendpulse/internal/domain/trend"
	"trendpulse/internal/logging"
)

func main() {
	app := &cli.App{
		Name:  "keygen",
		Usage: "create Trend Pulse API keys",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "env file holding SHEET_ID and GOOGLE_SERVICE_ACCOUNT_JSON",
				Value:   ".env.local",
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Commands: []*cli.Command{
			newCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "keygen: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "generate a key and optionally append it to the key tab",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "app", Usage: "application name", Required: true},
			&cli.StringFlag{Name: "email", Usage: "owner email", Required: true},
			&cli.BoolFlag{Name: "inactive", Usage: "store the key as inactive"},
			&cli.BoolFlag{Name: "append", Usage: "append the key row to the spreadsheet"},
		},
		Action: func(c *cli.Context) error {
			key := trend.APIKey{
				Key:        newKey(),
				AppName:    c.String("app"),
				OwnerEmail: c.String("email"),
				Active:     !c.Bool("inactive"),
			}

			if c.Bool("append") {
				if err := appendKey(c, key); err != nil {
					return err
				}
			}

			fmt.Fprintln(c.App.Writer, key.Key)
			return nil
		},
	}
}

// newKey returns a 32 character hex key
func newKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func appendKey(c *cli.Context, key trend.APIKey) error {
	if err := config.LoadEnvFile(c.String("env-file")); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: "console", Writer: os.Stderr})

	client := sheets.NewClient(
		sheets.Config{
			CredentialsJSON: cfg.Sheets.CredentialsJSON,
			SheetID:         cfg.Sheets.SheetID,
			KeysTab:         cfg.Sheets.KeysTab,
		},
		sheets.Connect,
		logger,
	)

	if err := client.AppendAPIKey(c.Context, key); err != nil {
		return err
	}

	logger.Info().Str("app", key.AppName).Str("tab", cfg.Sheets.KeysTab).Msg("API key appended")
	return nil
}
