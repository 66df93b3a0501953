package history

import (
	"time"

	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/domain"
)

// employeeRef identifies the employee a trail belongs to
type employeeRef struct {
	ID         string `json:"id" example:"65a1f0c2e4b0a1b2c3d4e5f6"`  // Employee document id
	EmployeeID string `json:"employeeId" example:"EMP-1705312800000"` // Display id
	FullName   string `json:"fullName" example:"Jane Doe"`            // Name at the time of the request
}

// historyEntry is one record in a trail listing, without its snapshot
type historyEntry struct {
	ID           string               `json:"id" example:"65a1f0c2e4b0a1b2c3d4e5f7"`                   // History record id
	Operation    domain.Operation     `json:"operation" example:"UPDATE" enums:"CREATE,UPDATE,DELETE"` // Kind of mutation
	Changes      []domain.FieldChange `json:"changes"`                                                 // Fields an UPDATE changed, empty otherwise
	Timestamp    time.Time            `json:"timestamp" example:"2024-01-01T12:00:00Z"`                // When the record was written
	ChangedBy    string               `json:"changedBy" example:"hr-admin"`                            // Who made the change
	ChangeReason string               `json:"changeReason" example:"Promotion"`                        // Why the change was made
}

// historyListResponse is one page of an employee's trail, newest first
type historyListResponse struct {
	Employee employeeRef    `json:"employee"`
	History  []historyEntry `json:"history"`
}

func newHistoryListResponse(page *audit.HistoryPage) historyListResponse {
	entries := make([]historyEntry, len(page.Records))
	for i, record := range page.Records {
		changes := record.Changes
		if changes == nil {
			changes = []domain.FieldChange{}
		}
		entries[i] = historyEntry{
			ID:           record.ID.Hex(),
			Operation:    record.Operation,
			Changes:      changes,
			Timestamp:    record.CreatedAt,
			ChangedBy:    record.ChangedBy,
			ChangeReason: record.ChangeReason,
		}
	}

	return historyListResponse{
		Employee: employeeRef{
			ID:         page.Employee.ID.Hex(),
			EmployeeID: page.Employee.EmployeeID,
			FullName:   page.Employee.FullName,
		},
		History: entries,
	}
}

// versionResponse is one side of a comparison
type versionResponse struct {
	ID        string          `json:"id" example:"65a1f0c2e4b0a1b2c3d4e5f7"`    // History record id
	Timestamp time.Time       `json:"timestamp" example:"2024-01-01T12:00:00Z"` // When the record was written
	Snapshot  domain.Snapshot `json:"snapshot" swaggertype:"object"`            // Full employee state after the mutation
}

// compareResponse lists the tracked fields whose values differ between two versions
type compareResponse struct {
	Version1    versionResponse           `json:"version1"`
	Version2    versionResponse           `json:"version2"`
	Differences []audit.VersionDifference `json:"differences"`
}

func newVersionResponse(record *domain.EmployeeHistory) versionResponse {
	return versionResponse{
		ID:        record.ID.Hex(),
		Timestamp: record.CreatedAt,
		Snapshot:  record.Snapshot,
	}
}

func newCompareResponse(c *audit.Comparison) compareResponse {
	differences := c.Differences
	if differences == nil {
		differences = []audit.VersionDifference{}
	}
	return compareResponse{
		Version1:    newVersionResponse(c.Version1),
		Version2:    newVersionResponse(c.Version2),
		Differences: differences,
	}
}

// employeeDetail is the employee embedded in a history detail
type employeeDetail struct {
	EmployeeID string `json:"employeeId" example:"EMP-1705312800000"` // Display id
	FullName   string `json:"fullName" example:"Jane Doe"`            // Current name
	Email      string `json:"email" example:"jane.doe@example.com"`   // Current email
}

// historyDetailResponse is a full history record
type historyDetailResponse struct {
	*domain.EmployeeHistory
	Employee *employeeDetail `json:"employee"`
}

func newHistoryDetailResponse(detail *audit.HistoryDetail) historyDetailResponse {
	resp := historyDetailResponse{EmployeeHistory: detail.Record}
	if detail.Employee != nil {
		resp.Employee = &employeeDetail{
			EmployeeID: detail.Employee.EmployeeID,
			FullName:   detail.Employee.FullName,
			Email:      detail.Employee.Email,
		}
	}
	return resp
}
