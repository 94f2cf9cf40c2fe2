package models

import "time"

// Work-order types.
const (
	TypePreventive = "PM"
	TypeCorrective = "CM"
	TypePredictive = "PdM"
)

// Work-order statuses.
const (
	OrderPending    = "Pending"
	OrderInProgress = "InProgress"
	OrderCompleted  = "Completed"
	OrderCancelled  = "Cancelled"
)

// Work-order priorities.
const (
	PriorityHigh   = "Cao"
	PriorityMedium = "Trung bình"
	PriorityLow    = "Thấp"
)

// PartUsage records one spare part consumed by a work order.
type PartUsage struct {
	PartID string `json:"partId"`
	Qty    int    `json:"qty"`
}

// WorkOrder is a maintenance job. Completion fields (CompletedAt,
// CompletionNotes, LaborHours, PartsUsed, IsCompliant) are written
// atomically by the complete transition and never by update.
type WorkOrder struct {
	ID              string      `json:"id"`
	MachineCode     string      `json:"machineCode"`
	Type            string      `json:"type"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Priority        string      `json:"priority"`
	AssignedTo      string      `json:"assignedTo,omitempty"`
	Status          string      `json:"status"`
	DueDate         time.Time   `json:"dueDate"`
	CreatedAt       time.Time   `json:"createdAt"`
	CompletedAt     *time.Time  `json:"completedAt,omitempty"`
	CompletionNotes string      `json:"completionNotes,omitempty"`
	LaborHours      float64     `json:"laborHours"`
	PartsUsed       []PartUsage `json:"partsUsed,omitempty"`
	IsCompliant     bool        `json:"isCompliant"`
}

// WorkOrderPatch carries the updatable fields of a work order. Nil pointers
// leave the current value untouched.
type WorkOrderPatch struct {
	MachineCode *string    `json:"machineCode,omitempty"`
	Type        *string    `json:"type,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	AssignedTo  *string    `json:"assignedTo,omitempty"`
	Status      *string    `json:"status,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// WorkOrderCompletion is the payload of the complete transition.
type WorkOrderCompletion struct {
	CompletionNotes string      `json:"completionNotes"`
	LaborHours      float64     `json:"laborHours"`
	PartsUsed       []PartUsage `json:"partsUsed"`
}
