package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/charlesng35/assetdesk/internal/app/maintenance"
	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/state"
	apperrors "github.com/charlesng35/assetdesk/pkg/errors"
)

func (c *cli) loginCmd() *cobra.Command {
	var req models.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("ASSETDESK_PASSWORD")
			}
			user, err := c.client.API.Auth.SignIn(cmd.Context(), req)
			if err != nil {
				return err
			}
			return c.printUser(user)
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password (env ASSETDESK_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and clear local state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.client.API.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(c.out, "signed out")
			return err
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user, reloading the profile from the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.client.Tokens.IsAuthenticated(cmd.Context()) {
				return errors.New("not signed in; run `assetdesk login` first")
			}
			user, err := c.client.API.Auth.RevalidateProfile(cmd.Context())
			if err != nil {
				return err
			}
			return c.printUser(user)
		},
	}
}

func (c *cli) printUser(user *models.AuthenticatedUser) error {
	return printFields(c.printer(), user, [][2]string{
		{"id", user.ID},
		{"name", user.FullName()},
		{"email", user.Email},
		{"roles", orDash(strings.Join(user.RoleNames(), ","))},
		{"permissions", fmt.Sprintf("%d", len(user.Permissions))},
	})
}

func (c *cli) sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session upkeep",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Keep the stored session fresh until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			keeper := maintenance.NewKeeper(
				c.client.Tokens,
				c.client.Equipment,
				c.client.API.Auth,
				maintenance.WithKeepalive(c.cfg.Session.Keepalive),
				maintenance.WithProfileRefresh(c.cfg.Session.ProfileRefresh),
			)
			if err := keeper.RunOnce(cmd.Context()); err != nil {
				return err
			}
			if err := keeper.Start(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "keeping session fresh; press Ctrl+C to stop")
			select {
			case <-cmd.Context().Done():
				<-keeper.Stop().Done()
				return nil
			case <-keeper.Done():
				<-keeper.Stop().Done()
				return apperrors.ErrSessionExpired
			}
		},
	})
	return cmd
}

func (c *cli) prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change dashboard layout preferences",
		RunE: func(*cobra.Command, []string) error {
			snap := c.client.State.UI.Snapshot()
			return printFields(c.printer(), snap, [][2]string{
				{"theme", string(snap.ThemeMode)},
				{"sidebar", fmt.Sprintf("%t", snap.SidebarOpen)},
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:       "theme <light|dark>",
		Short:     "Set the theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(state.ThemeLight), string(state.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := state.ThemeMode(strings.ToLower(args[0]))
			if mode != state.ThemeLight && mode != state.ThemeDark {
				return fmt.Errorf("unknown theme %q", args[0])
			}
			if err := c.client.State.UI.SetThemeMode(cmd.Context(), mode); err != nil {
				return err
			}
			_, err := fmt.Fprintf(c.out, "theme set to %s\n", mode)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "sidebar",
		Short: "Toggle whether the sidebar starts open",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.client.State.UI.ToggleSidebar(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintf(c.out, "sidebar open: %t\n", c.client.State.UI.SidebarOpen())
			return err
		},
	})
	return cmd
}
