// EmbedChat - embeddable chat widget host.
//
// Environment variables:
//   EMBEDCHAT_CONFIG_JSON   - Full config JSON (alternative to config file)
//   EMBEDCHAT_API_KEY       - Tenant API key (overrides config)
//   EMBEDCHAT_API_BASE_URL  - Backend base URL (overrides config)

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/widgetlabs/embedchat/pkg/config"
	"github.com/widgetlabs/embedchat/pkg/logger"
	"github.com/widgetlabs/embedchat/pkg/server"
	"github.com/widgetlabs/embedchat/pkg/theme"
)

var configPath string

func loadAndValidate() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger.SetLevel(cfg.Log.Level)
	if cfg.Log.JSON {
		logger.UseJSON()
	}
	return cfg, nil
}

var rootCmd = &cobra.Command{
	Use:   "embedchat",
	Short: "Embeddable chat widget host",
	Long:  "EmbedChat hosts a chat widget that stays in sync with its backend configuration and theme.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the widget host server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadAndValidate()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		srv := server.New(cfg)
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("starting server: %w", err)
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		logger.InfoCF("main", "shutting down", nil)
		return srv.Stop(context.Background())
	},
}

var paletteCmd = &cobra.Command{
	Use:   "palette [hex-color]",
	Short: "Derive a widget palette from a brand color",
	Long:  "Prints the full widget palette derived from the given primary color, or the default palette when the color is unusable.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var p theme.Palette
		if len(args) == 0 {
			p = theme.DefaultPalette()
		} else {
			p = theme.DerivePalette(&theme.ExtractedTheme{
				Colors: map[string]string{"primary": args[0]},
			})
		}
		out, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config and the API key against the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadAndValidate()
		if err != nil {
			return err
		}
		srv := server.New(cfg)
		if err := srv.Widget().Client().ValidateKey(cmd.Context()); err != nil {
			return fmt.Errorf("api key check failed: %w", err)
		}
		fmt.Println("config ok, api key valid")
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "path to config file")
	rootCmd.AddCommand(serveCmd, paletteCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
