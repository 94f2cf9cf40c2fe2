package models

// KPISummary is the headline alert dashboard rollup.
type KPISummary struct {
	TotalAlerts       int `json:"totalAlerts"`
	ActiveCount       int `json:"activeCount"`
	AcknowledgedCount int `json:"acknowledgedCount"`
	CriticalCount     int `json:"criticalCount"`
}

// FaultCount ranks a fault code by how many alerts carry it.
type FaultCount struct {
	FaultCode string `json:"faultCode"`
	Count     int    `json:"count"`
}

// MachineCount ranks a machine by alert volume.
type MachineCount struct {
	MachineID string `json:"machineId"`
	Count     int    `json:"count"`
}

// AdvancedKPIs holds the derived alert analytics. MTTA is the mean time to
// acknowledge in hours, over alerts that have an acknowledgement timestamp.
type AdvancedKPIs struct {
	MTTA        float64        `json:"mtta"`
	TopFaults   []FaultCount   `json:"topFaults"`
	TopMachines []MachineCount `json:"topMachines"`
}

// PMComplianceKPI rolls up preventive-maintenance execution. ComplianceRate
// is a percentage and 0 when no PM order has completed.
type PMComplianceKPI struct {
	TotalPMCompleted int     `json:"totalPMCompleted"`
	CompliantCount   int     `json:"compliantCount"`
	ComplianceRate   float64 `json:"complianceRate"`
}

// CostKPI rolls up maintenance spend across completed work orders. CPMH is
// cost per machine-hour against the configured fleet running hours, 0 when
// the fleet total is 0.
type CostKPI struct {
	TotalCost       float64 `json:"totalCost"`
	TotalLaborHours float64 `json:"totalLaborHours"`
	CPMH            float64 `json:"cpmh"`
}
