package models

import "time"

// Alert statuses.
const (
	AlertActive       = "Active"
	AlertAcknowledged = "Acknowledged"
	AlertResolved     = "Resolved"
)

// Alert severities.
const (
	SeverityCritical = "Critical"
	SeverityError    = "Error"
	SeverityWarning  = "Warning"
)

// ResolvedInfo is the root-cause payload attached to an alert when it is
// resolved.
type ResolvedInfo struct {
	Cause     string `json:"cause"`
	Action    string `json:"action"`
	FaultCode string `json:"faultCode"`
}

// Alert is a machine anomaly moving through the Active -> Acknowledged ->
// Resolved lifecycle. ResolvedInfo and FaultCode are set iff the alert is
// Resolved; AcknowledgedAt and ResolvedAt are each written exactly once.
type Alert struct {
	ID             string        `json:"id"`
	MachineID      string        `json:"machineId"`
	Severity       string        `json:"severity"`
	Message        string        `json:"message"`
	Timestamp      time.Time     `json:"timestamp"`
	Status         string        `json:"status"`
	AcknowledgedBy string        `json:"acknowledgedBy,omitempty"`
	AcknowledgedAt *time.Time    `json:"acknowledgedAt,omitempty"`
	ResolvedAt     *time.Time    `json:"resolvedAt,omitempty"`
	ResolvedInfo   *ResolvedInfo `json:"resolvedInfo,omitempty"`
	FaultCode      string        `json:"faultCode,omitempty"`
}

// AlertFilters narrows alert listings. Zero values mean "no filter";
// Status "All" is equivalent to empty. From/To form a closed interval,
// both ends inclusive, evaluated at second granularity.
type AlertFilters struct {
	Status    string
	Severity  string
	MachineID string
	From      *time.Time
	To        *time.Time
}

// KnowledgeEntry is one deduplicated root-cause record derived from the
// resolved alerts carrying the same fault code.
type KnowledgeEntry struct {
	FaultCode    string    `json:"faultCode"`
	MachineID    string    `json:"machineId"`
	RootCause    string    `json:"rootCause"`
	ActionTaken  string    `json:"actionTaken"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	LastResolved time.Time `json:"lastResolved"`
	Occurrence   int       `json:"occurrence"`
}
