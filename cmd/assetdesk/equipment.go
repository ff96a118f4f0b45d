package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/charlesng35/assetdesk/internal/api"
	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/permissions"
)

func (c *cli) equipmentCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "equipment", Aliases: []string{"eq"}, Short: "Browse and update equipment"}

	var filter api.EquipmentFilter
	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List equipment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourceEquipments, "read")); err != nil {
				return err
			}
			filter.Status = models.EquipmentStatus(status)
			page, err := c.client.API.Equipment.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printPage(c.printer(), page, []string{"ID", "CODE", "NAME", "STATUS", "LOCATION", "ACTIONS"}, func(e models.Equipment) []string {
				return []string{e.ID, e.Code, e.Name, string(e.Status), orDash(e.Location), actionsString(e.AllowedActions())}
			})
		},
	}
	listFlags(list, &filter.ListParams)
	list.Flags().StringVar(&status, "status", "", "Filter by status")
	list.Flags().StringVar(&filter.CategoryID, "category", "", "Filter by category id")
	list.Flags().StringVar(&filter.Location, "location", "", "Filter by location")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one piece of equipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permissions.ID(permissions.ResourceEquipments, "read")); err != nil {
				return err
			}
			eq, err := c.client.API.Equipment.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printEquipment(eq)
		},
	}

	var statusReq models.EquipmentStatusRequest
	var newStatus string
	setStatus := &cobra.Command{
		Use:   "status <id>",
		Short: "Change the status of a piece of equipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permissions.ID(permissions.ResourceEquipments, "change-status")); err != nil {
				return err
			}
			statusReq.Status = models.EquipmentStatus(newStatus)
			eq, err := c.client.API.Equipment.UpdateStatus(cmd.Context(), args[0], statusReq)
			if err != nil {
				return err
			}
			return c.printEquipment(eq)
		},
	}
	setStatus.Flags().StringVar(&newStatus, "to", "", "New status")
	setStatus.Flags().StringVar(&statusReq.Notes, "notes", "", "Notes")
	_ = setStatus.MarkFlagRequired("to")

	cmd.AddCommand(list, get, setStatus)
	return cmd
}

func (c *cli) printEquipment(eq *models.Equipment) error {
	return printFields(c.printer(), eq, [][2]string{
		{"id", eq.ID},
		{"code", eq.Code},
		{"name", eq.Name},
		{"status", string(eq.Status)},
		{"category", orDash(eq.CategoryName)},
		{"serial", orDash(eq.SerialNumber)},
		{"location", orDash(eq.Location)},
		{"price", strconv.FormatFloat(eq.PurchasePrice, 'f', 2, 64)},
		{"actions", actionsString(eq.AllowedActions())},
	})
}

func (c *cli) warehouseCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "warehouse", Short: "Inspect stock and record movements"}

	var items api.WarehouseItemFilter
	var low bool
	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "List stocked items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourceWarehouses, "read")); err != nil {
				return err
			}
			items.LowStock = optionalBool(cmd, "low-stock", low)
			page, err := c.client.API.Warehouse.ListItems(cmd.Context(), items)
			if err != nil {
				return err
			}
			return printPage(c.printer(), page, []string{"ID", "CODE", "NAME", "QTY", "MIN", "LOW"}, func(w models.WarehouseItem) []string {
				return []string{w.ID, w.Code, w.Name, strconv.Itoa(w.Quantity), strconv.Itoa(w.MinimumStock), strconv.FormatBool(w.LowStock())}
			})
		},
	}
	listFlags(itemsCmd, &items.ListParams)
	itemsCmd.Flags().StringVar(&items.Location, "location", "", "Filter by location")
	itemsCmd.Flags().BoolVar(&low, "low-stock", true, "Only items at or below minimum stock")

	var txs api.TransactionFilter
	var txType string
	txCmd := &cobra.Command{
		Use:   "transactions",
		Short: "List stock movements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permissions.ID(permissions.ResourceWarehouses, "read")); err != nil {
				return err
			}
			txs.Type = models.TransactionType(txType)
			page, err := c.client.API.Warehouse.ListTransactions(cmd.Context(), txs)
			if err != nil {
				return err
			}
			return printPage(c.printer(), page, []string{"ID", "ITEM", "TYPE", "QTY", "REFERENCE"}, func(t models.WarehouseTransaction) []string {
				return []string{t.ID, orDash(firstOf(t.ItemName, t.ItemID)), string(t.Type), strconv.Itoa(t.Quantity), orDash(t.Reference)}
			})
		},
	}
	listFlags(txCmd, &txs.ListParams)
	txCmd.Flags().StringVar(&txs.ItemID, "item", "", "Filter by item id")
	txCmd.Flags().StringVar(&txType, "type", "", "Filter by type (Import|Export|Adjustment)")

	var txReq models.WarehouseTransactionRequest
	var recordType string
	record := &cobra.Command{
		Use:   "record <item-id>",
		Short: "Record an import, export or adjustment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txReq.ItemID = args[0]
			txReq.Type = models.TransactionType(recordType)
			if err := c.require(permissions.ID(permissions.ResourceWarehouses, transactionAction(txReq.Type))); err != nil {
				return err
			}
			tx, err := c.client.API.Warehouse.CreateTransaction(cmd.Context(), txReq)
			if err != nil {
				return err
			}
			return printFields(c.printer(), tx, [][2]string{
				{"id", tx.ID},
				{"item", txReq.ItemID},
				{"type", string(tx.Type)},
				{"quantity", fmt.Sprintf("%d", tx.Quantity)},
			})
		},
	}
	record.Flags().StringVar(&recordType, "type", string(models.TransactionImport), "Import|Export|Adjustment")
	record.Flags().IntVar(&txReq.Quantity, "quantity", 0, "Quantity moved")
	record.Flags().StringVar(&txReq.Reference, "reference", "", "External reference")
	record.Flags().StringVar(&txReq.Notes, "notes", "", "Notes")

	cmd.AddCommand(itemsCmd, txCmd, record)
	return cmd
}

// transactionAction maps a stock movement to the permission action gating it.
func transactionAction(t models.TransactionType) string {
	switch t {
	case models.TransactionExport:
		return "export"
	case models.TransactionAdjustment:
		return "adjust"
	default:
		return "import"
	}
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
