package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/charlesng35/assetdesk/internal/api"
	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/permissions"
)

func (c *cli) usersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage user accounts"}

	var filter api.UserFilter
	var active bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourceUsers, "read")); err != nil {
				return err
			}
			filter.IsActive = optionalBool(cmd, "active", active)
			page, err := c.client.API.Users.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printPage(c.printer(), page, []string{"ID", "EMAIL", "NAME", "ACTIVE"}, func(u models.User) []string {
				return []string{u.ID, u.Email, u.FirstName + " " + u.LastName, strconv.FormatBool(u.IsActive)}
			})
		},
	}
	listFlags(list, &filter.ListParams)
	list.Flags().BoolVar(&active, "active", true, "Only active (true) or inactive (false) users")
	list.Flags().StringVar(&filter.RoleID, "role", "", "Filter by role id")

	cmd.AddCommand(list)
	return cmd
}

func (c *cli) rolesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "roles", Short: "Manage roles"}

	var filter api.RoleFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourceRoles, "read")); err != nil {
				return err
			}
			page, err := c.client.API.Roles.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printPage(c.printer(), page, []string{"ID", "NAME", "ACTIVE", "PERMISSIONS"}, func(r models.Role) []string {
				return []string{r.RoleID, r.Name, strconv.FormatBool(r.IsActive), strconv.Itoa(len(r.Permissions))}
			})
		},
	}
	listFlags(list, &filter.ListParams)

	cmd.AddCommand(list)
	return cmd
}

func (c *cli) permissionsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "permissions", Short: "Inspect the permission catalog"}

	var filter api.PermissionFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List permissions known to the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourcePermissions, "read")); err != nil {
				return err
			}
			page, err := c.client.API.Permissions.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printPage(c.printer(), page, []string{"ID", "PERMISSION", "DESCRIPTION"}, func(p models.Permission) []string {
				return []string{p.PermissionID, p.Canonical(), orDash(p.Description)}
			})
		},
	}
	listFlags(list, &filter.ListParams)
	list.Flags().StringVar(&filter.Resource, "resource", "", "Filter by resource")

	catalog := &cobra.Command{
		Use:   "catalog",
		Short: "List the permissions this client knows how to gate on",
		RunE: func(*cobra.Command, []string) error {
			all := permissions.GetAll()
			ids := make([]string, 0, len(all))
			for id := range all {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			return c.printer().value(all, func(w io.Writer) error {
				rows := make([][]string, 0, len(ids))
				for _, id := range ids {
					rows = append(rows, []string{id, orDash(strings.Join(all[id].DependsOn, ","))})
				}
				return table(w, []string{"PERMISSION", "DEPENDS ON"}, rows)
			})
		},
	}

	cmd.AddCommand(list, catalog)
	return cmd
}

func (c *cli) policiesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "policies", Short: "Manage access policies"}

	var filter api.PolicyFilter
	var effect string
	list := &cobra.Command{
		Use:   "list",
		Short: "List policies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourcePolicies, "read")); err != nil {
				return err
			}
			filter.Effect = models.PolicyEffect(effect)
			page, err := c.client.API.Policies.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printPage(c.printer(), page, []string{"ID", "NAME", "TARGET", "EFFECT", "PRIORITY"}, func(p models.Policy) []string {
				return []string{p.PolicyID, p.Name, p.Resource + ":" + p.Action, string(p.Effect), strconv.Itoa(p.Priority)}
			})
		},
	}
	listFlags(list, &filter.ListParams)
	list.Flags().StringVar(&filter.Resource, "resource", "", "Filter by resource")
	list.Flags().StringVar(&effect, "effect", "", "Filter by effect (Allow|Deny)")

	var req models.PolicyRequest
	var createEffect string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a policy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourcePolicies, "create")); err != nil {
				return err
			}
			req.Effect = models.PolicyEffect(createEffect)
			policy, err := c.client.API.Policies.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printFields(c.printer(), policy, [][2]string{
				{"id", policy.PolicyID},
				{"name", policy.Name},
				{"target", policy.Resource + ":" + policy.Action},
				{"effect", string(policy.Effect)},
				{"priority", fmt.Sprintf("%d", policy.Priority)},
			})
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "Policy name")
	create.Flags().StringVar(&req.Description, "description", "", "Description")
	create.Flags().StringVar(&req.Resource, "resource", "", "Resource the policy applies to")
	create.Flags().StringVar(&req.Action, "action", "", "Action the policy applies to")
	create.Flags().StringVar(&createEffect, "effect", string(models.PolicyAllow), "Allow or Deny")
	create.Flags().IntVar(&req.Priority, "priority", 0, "Evaluation priority")
	create.Flags().StringVar(&req.Conditions, "conditions", "", "JSON conditions")
	create.Flags().BoolVar(&req.IsActive, "active", true, "Whether the policy is active")

	cmd.AddCommand(list, create)
	return cmd
}
