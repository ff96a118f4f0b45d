package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/charlesng35/assetdesk/internal/api"
	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/permissions"
)

func (c *cli) assignmentsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "assignments", Short: "Hand out and take back equipment"}

	var filter api.AssignmentFilter
	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List assignments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourceAssignments, "read")); err != nil {
				return err
			}
			filter.Status = models.AssignmentStatus(status)
			page, err := c.client.API.Assignments.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printPage(c.printer(), page, []string{"ID", "EQUIPMENT", "USER", "STATUS", "ACTIONS"}, func(a models.Assignment) []string {
				return []string{a.ID, firstOf(a.EquipmentName, a.EquipmentID), firstOf(a.UserName, a.UserID), string(a.Status), actionsString(a.AllowedActions())}
			})
		},
	}
	listFlags(list, &filter.ListParams)
	list.Flags().StringVar(&status, "status", "", "Filter by status")
	list.Flags().StringVar(&filter.UserID, "user", "", "Filter by user id")
	list.Flags().StringVar(&filter.EquipmentID, "equipment", "", "Filter by equipment id")

	var req models.CreateAssignmentRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Assign a piece of equipment to a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourceAssignments, "create")); err != nil {
				return err
			}
			a, err := c.client.API.Assignments.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return c.printAssignment(a)
		},
	}
	create.Flags().StringVar(&req.EquipmentID, "equipment", "", "Equipment id")
	create.Flags().StringVar(&req.UserID, "user", "", "User id")
	create.Flags().StringVar(&req.Notes, "notes", "", "Notes")

	var ret models.ReturnAssignmentRequest
	returnCmd := &cobra.Command{
		Use:   "return <id>",
		Short: "Record the return of assigned equipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permissions.ID(permissions.ResourceAssignments, "return")); err != nil {
				return err
			}
			a, err := c.client.API.Assignments.Return(cmd.Context(), args[0], ret)
			if err != nil {
				return err
			}
			return c.printAssignment(a)
		},
	}
	returnCmd.Flags().StringVar(&ret.Condition, "condition", "", "Condition on return")
	returnCmd.Flags().StringVar(&ret.ReturnNotes, "notes", "", "Return notes")

	cmd.AddCommand(list, create, returnCmd)
	return cmd
}

func (c *cli) printAssignment(a *models.Assignment) error {
	return printFields(c.printer(), a, [][2]string{
		{"id", a.ID},
		{"equipment", firstOf(a.EquipmentName, a.EquipmentID)},
		{"user", firstOf(a.UserName, a.UserID)},
		{"status", string(a.Status)},
		{"actions", actionsString(a.AllowedActions())},
	})
}

func (c *cli) auditsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "audits", Short: "Review inventory audits"}

	var filter api.AuditFilter
	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List audits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourceAudits, "read")); err != nil {
				return err
			}
			filter.Status = models.AuditStatus(status)
			page, err := c.client.API.Audits.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printPage(c.printer(), page, []string{"ID", "TITLE", "STATUS", "AUDITOR", "ACTIONS"}, func(a models.Audit) []string {
				return []string{a.ID, a.Title, string(a.Status), orDash(a.AuditorName), actionsString(a.AllowedActions())}
			})
		},
	}
	listFlags(list, &filter.ListParams)
	list.Flags().StringVar(&status, "status", "", "Filter by status")
	list.Flags().StringVar(&filter.AuditorID, "auditor", "", "Filter by auditor id")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an audit and its discrepancies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permissions.ID(permissions.ResourceAudits, "read")); err != nil {
				return err
			}
			a, err := c.client.API.Audits.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			discrepancies := 0
			for _, r := range a.Records {
				if r.Discrepancy() {
					discrepancies++
				}
			}
			return printFields(c.printer(), a, [][2]string{
				{"id", a.ID},
				{"title", a.Title},
				{"status", string(a.Status)},
				{"records", strconv.Itoa(len(a.Records))},
				{"discrepancies", strconv.Itoa(discrepancies)},
				{"actions", actionsString(a.AllowedActions())},
			})
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func (c *cli) maintenancesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "maintenances", Aliases: []string{"maint"}, Short: "Work maintenance tickets"}

	var filter api.MaintenanceFilter
	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List maintenance tickets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourceMaintenances, "read")); err != nil {
				return err
			}
			filter.Status = models.MaintenanceStatus(status)
			page, err := c.client.API.Maintenances.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printPage(c.printer(), page, []string{"ID", "EQUIPMENT", "STATUS", "TECHNICIAN", "ACTIONS"}, func(m models.Maintenance) []string {
				return []string{m.ID, firstOf(m.EquipmentName, m.EquipmentID), string(m.Status), orDash(m.TechnicianName), actionsString(m.AllowedActions())}
			})
		},
	}
	listFlags(list, &filter.ListParams)
	list.Flags().StringVar(&status, "status", "", "Filter by status")
	list.Flags().StringVar(&filter.EquipmentID, "equipment", "", "Filter by equipment id")
	list.Flags().StringVar(&filter.TechnicianID, "technician", "", "Filter by technician id")

	var assign models.AssignMaintenanceRequest
	assignCmd := c.maintenanceTransition("assign <id>", "Assign a technician", "assign",
		func(cmd *cobra.Command, id string) (*models.Maintenance, error) {
			return c.client.API.Maintenances.Assign(cmd.Context(), id, assign)
		})
	assignCmd.Flags().StringVar(&assign.TechnicianID, "technician", "", "Technician user id")

	startCmd := c.maintenanceTransition("start <id>", "Start work on a ticket", "start",
		func(cmd *cobra.Command, id string) (*models.Maintenance, error) {
			return c.client.API.Maintenances.Start(cmd.Context(), id)
		})

	var complete models.CompleteMaintenanceRequest
	completeCmd := c.maintenanceTransition("complete <id>", "Close a ticket", "complete",
		func(cmd *cobra.Command, id string) (*models.Maintenance, error) {
			return c.client.API.Maintenances.Complete(cmd.Context(), id, complete)
		})
	completeCmd.Flags().Float64Var(&complete.Cost, "cost", 0, "Repair cost")
	completeCmd.Flags().StringVar(&complete.CompletionNotes, "notes", "", "Completion notes")

	var cancel models.CancelRequest
	cancelCmd := c.maintenanceTransition("cancel <id>", "Cancel a ticket", "cancel",
		func(cmd *cobra.Command, id string) (*models.Maintenance, error) {
			return c.client.API.Maintenances.Cancel(cmd.Context(), id, cancel)
		})
	cancelCmd.Flags().StringVar(&cancel.Reason, "reason", "", "Cancellation reason")

	cmd.AddCommand(list, assignCmd, startCmd, completeCmd, cancelCmd)
	return cmd
}

func (c *cli) maintenanceTransition(use, short, action string, run func(*cobra.Command, string) (*models.Maintenance, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permissions.ID(permissions.ResourceMaintenances, action)); err != nil {
				return err
			}
			m, err := run(cmd, args[0])
			if err != nil {
				return err
			}
			return printFields(c.printer(), m, [][2]string{
				{"id", m.ID},
				{"equipment", firstOf(m.EquipmentName, m.EquipmentID)},
				{"status", string(m.Status)},
				{"technician", orDash(m.TechnicianName)},
				{"actions", actionsString(m.AllowedActions())},
			})
		},
	}
}

func (c *cli) liquidationsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "liquidations", Short: "Decide on equipment disposal requests"}

	var filter api.LiquidationFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List liquidation requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourceLiquidations, "read")); err != nil {
				return err
			}
			page, err := c.client.API.Liquidations.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printPage(c.printer(), page, []string{"ID", "EQUIPMENT", "REASON", "DECISION", "ACTIONS"}, func(l models.Liquidation) []string {
				return []string{l.ID, firstOf(l.EquipmentName, l.EquipmentID), l.Reason, approvalString(l.IsApproved), actionsString(l.AllowedActions())}
			})
		},
	}
	listFlags(list, &filter.ListParams)
	list.Flags().BoolVar(&filter.Pending, "pending", false, "Only requests awaiting a decision")

	var approve models.ApproveLiquidationRequest
	approveCmd := c.liquidationDecision("approve <id>", "Approve a liquidation", "approve",
		func(cmd *cobra.Command, id string) (*models.Liquidation, error) {
			return c.client.API.Liquidations.Approve(cmd.Context(), id, approve)
		})
	approveCmd.Flags().Float64Var(&approve.LiquidationValue, "value", 0, "Realised value")
	approveCmd.Flags().StringVar(&approve.ApprovalNotes, "notes", "", "Approval notes")

	var reject models.RejectLiquidationRequest
	rejectCmd := c.liquidationDecision("reject <id>", "Reject a liquidation", "reject",
		func(cmd *cobra.Command, id string) (*models.Liquidation, error) {
			return c.client.API.Liquidations.Reject(cmd.Context(), id, reject)
		})
	rejectCmd.Flags().StringVar(&reject.Reason, "reason", "", "Rejection reason")

	cmd.AddCommand(list, approveCmd, rejectCmd)
	return cmd
}

func (c *cli) liquidationDecision(use, short, action string, run func(*cobra.Command, string) (*models.Liquidation, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permissions.ID(permissions.ResourceLiquidations, action)); err != nil {
				return err
			}
			l, err := run(cmd, args[0])
			if err != nil {
				return err
			}
			return printFields(c.printer(), l, [][2]string{
				{"id", l.ID},
				{"equipment", firstOf(l.EquipmentName, l.EquipmentID)},
				{"decision", approvalString(l.IsApproved)},
			})
		},
	}
}
