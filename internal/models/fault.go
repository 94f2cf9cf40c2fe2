package models

import "time"

// Fault priorities.
const (
	PriorityCritical = "Critical"
	PriorityError    = "Error"
	PriorityWarning  = "Warning"
	PriorityInfo     = "Info"
)

// CategoryCustom is the catch-all category assigned to fault codes that are
// synthesized during alert resolution instead of being curated by hand.
const CategoryCustom = "Tùy chỉnh"

// FaultCode is one entry of the controlled fault vocabulary. Codes are
// upper-cased and trimmed on write; the code is the unique key.
type FaultCode struct {
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SparePart maps a part id to its unit price. Referenced by work-order
// completions for cost rollups.
type SparePart struct {
	PartID    string  `json:"partId"`
	UnitPrice float64 `json:"unitPrice"`
}
