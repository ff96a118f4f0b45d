package models

import "time"

// Payloads accepted by the mutation endpoints. Each one is validated before it
// leaves the process.

type CreateUserRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	FirstName   string   `json:"firstName" validate:"required,max=100"`
	LastName    string   `json:"lastName" validate:"required,max=100"`
	PhoneNumber string   `json:"phoneNumber,omitempty" validate:"omitempty,max=32"`
	RoleIDs     []string `json:"roleIds,omitempty"`
}

type UpdateUserRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,max=32"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

type AssignRolesRequest struct {
	RoleIDs []string `json:"roleIds" validate:"required,dive,required"`
}

type SetActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type RoleRequest struct {
	Name          string   `json:"name" validate:"required,max=100"`
	Description   string   `json:"description,omitempty" validate:"omitempty,max=500"`
	IsActive      bool     `json:"isActive"`
	PermissionIDs []string `json:"permissionIds,omitempty"`
}

type AssignPermissionsRequest struct {
	PermissionIDs []string `json:"permissionIds" validate:"required,dive,required"`
}

type CreatePermissionRequest struct {
	Resource    string `json:"resource" validate:"required,max=64"`
	Action      string `json:"action" validate:"required,max=64"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// FullPermission is the canonical string the new permission will be compared by.
func (r CreatePermissionRequest) FullPermission() string {
	return r.Resource + ":" + r.Action
}

type PolicyRequest struct {
	Name        string       `json:"name" validate:"required,max=100"`
	Description string       `json:"description,omitempty" validate:"omitempty,max=500"`
	Resource    string       `json:"resource" validate:"required"`
	Action      string       `json:"action" validate:"required"`
	Effect      PolicyEffect `json:"effect" validate:"required,oneof=Allow Deny"`
	Priority    int          `json:"priority" validate:"gte=0"`
	Conditions  string       `json:"conditions,omitempty" validate:"omitempty,json"`
	IsActive    bool         `json:"isActive"`
}

type EquipmentRequest struct {
	Code          string     `json:"code" validate:"required,max=64"`
	Name          string     `json:"name" validate:"required,max=200"`
	Description   string     `json:"description,omitempty"`
	CategoryID    string     `json:"categoryId,omitempty"`
	SerialNumber  string     `json:"serialNumber,omitempty"`
	Manufacturer  string     `json:"manufacturer,omitempty"`
	Model         string     `json:"model,omitempty"`
	PurchaseDate  *time.Time `json:"purchaseDate,omitempty"`
	PurchasePrice float64    `json:"purchasePrice,omitempty" validate:"gte=0"`
	WarrantyUntil *time.Time `json:"warrantyUntil,omitempty"`
	Location      string     `json:"location,omitempty"`
}

type EquipmentStatusRequest struct {
	Status EquipmentStatus `json:"status" validate:"required,oneof=Available InUse Maintenance Broken Lost Liquidated"`
	Notes  string          `json:"notes,omitempty"`
}

type WarehouseItemRequest struct {
	Code         string  `json:"code" validate:"required,max=64"`
	Name         string  `json:"name" validate:"required,max=200"`
	Description  string  `json:"description,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Quantity     int     `json:"quantity" validate:"gte=0"`
	MinimumStock int     `json:"minimumStock,omitempty" validate:"gte=0"`
	UnitPrice    float64 `json:"unitPrice,omitempty" validate:"gte=0"`
	Location     string  `json:"location,omitempty"`
}

type WarehouseTransactionRequest struct {
	ItemID    string          `json:"itemId" validate:"required"`
	Type      TransactionType `json:"type" validate:"required,oneof=Import Export Adjustment"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

type CreateAssignmentRequest struct {
	EquipmentID      string     `json:"equipmentId" validate:"required"`
	UserID           string     `json:"userId" validate:"required"`
	ExpectedReturnAt *time.Time `json:"expectedReturnAt,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

type ReturnAssignmentRequest struct {
	ReturnNotes string `json:"returnNotes,omitempty"`
	Condition   string `json:"condition" validate:"required"`
}

type CreateAuditRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	AuditorID   string     `json:"auditorId,omitempty"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

type CompleteAuditRequest struct {
	Findings string `json:"findings" validate:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type AuditRecordRequest struct {
	EquipmentID  string          `json:"equipmentId" validate:"required"`
	ActualStatus EquipmentStatus `json:"actualStatus" validate:"required"`
	IsFound      bool            `json:"isFound"`
	Notes        string          `json:"notes,omitempty"`
}

type CreateMaintenanceRequest struct {
	EquipmentID string     `json:"equipmentId" validate:"required"`
	Title       string     `json:"title,omitempty" validate:"omitempty,max=200"`
	Description string     `json:"description" validate:"required"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

type AssignMaintenanceRequest struct {
	TechnicianID string `json:"technicianId" validate:"required"`
}

type CompleteMaintenanceRequest struct {
	Cost            float64 `json:"cost" validate:"gte=0"`
	CompletionNotes string  `json:"completionNotes" validate:"required"`
}

type CreateLiquidationRequest struct {
	EquipmentID    string  `json:"equipmentId" validate:"required"`
	Reason         string  `json:"reason" validate:"required"`
	EstimatedValue float64 `json:"estimatedValue,omitempty" validate:"gte=0"`
}

type ApproveLiquidationRequest struct {
	LiquidationValue float64 `json:"liquidationValue" validate:"gte=0"`
	ApprovalNotes    string  `json:"approvalNotes,omitempty"`
}

type RejectLiquidationRequest struct {
	Reason string `json:"reason" validate:"required"`
}
