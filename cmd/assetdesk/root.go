package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/charlesng35/assetdesk/internal/app"
	"github.com/charlesng35/assetdesk/internal/permissions"
	"github.com/charlesng35/assetdesk/pkg/logger"
)

// cli carries what every command needs once the root pre-run has finished.
type cli struct {
	out        io.Writer
	configPath string
	envFile    string
	output     string
	logLevel   string

	// loadConfig is replaced in tests.
	loadConfig func(path string) (*app.Config, error)

	cfg    *app.Config
	client *app.Client
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out, loadConfig: app.LoadConfigFrom}
	return c.rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "assetdesk",
		Short:         "Operate the equipment management back office from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			_ = logger.Sync()
			return c.client.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "Path to configuration directory or file")
	flags.StringVar(&c.envFile, "env-file", ".env", "Optional dotenv file loaded before configuration")
	flags.StringVarP(&c.output, "output", "o", "text", "Output format: text|json|yaml")
	flags.StringVar(&c.logLevel, "log-level", "warn", "Log level written to stderr")

	root.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.sessionCmd(),
		c.prefsCmd(),
		c.usersCmd(),
		c.rolesCmd(),
		c.permissionsCmd(),
		c.policiesCmd(),
		c.equipmentCmd(),
		c.warehouseCmd(),
		c.assignmentsCmd(),
		c.auditsCmd(),
		c.maintenancesCmd(),
		c.liquidationsCmd(),
	)
	return root
}

func (c *cli) setup(ctx context.Context) error {
	if err := parseFormat(c.output); err != nil {
		return err
	}
	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", c.envFile, err)
		}
	}

	cfg, err := c.loadConfig(c.configPath)
	if err != nil {
		return err
	}
	if _, err := app.ApplyRuntimeDefaults(cfg); err != nil {
		return err
	}
	if err := app.ConfigureLogging(c.logLevel); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	client, err := app.NewClient(ctx, cfg, nil)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.client = client

	logger.WithModule("cli").Debug("client ready",
		zap.String("auth_url", cfg.Services.AuthURL),
		zap.String("equipment_url", cfg.Services.EquipmentURL),
		zap.String("storage", cfg.Storage.Driver),
	)
	return nil
}

// require fails unless the stored user holds perm.
func (c *cli) require(perm string) error {
	user := c.client.State.Auth.User()
	if user == nil {
		return errors.New("not signed in; run `assetdesk login` first")
	}
	if !permissions.IsAuthorized(user, permissions.Require(perm)) {
		return fmt.Errorf("%s is missing permission %s", user.Email, perm)
	}
	return nil
}

func (c *cli) printer() printer {
	return printer{w: c.out, format: strings.ToLower(c.output)}
}
