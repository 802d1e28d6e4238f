package schemas

import (
	_ "embed"
)

//go:embed report_schema.json
var reportSchema string

// IntelligenceReportSchema returns the JSON Schema the LLM's report output
// must satisfy before it is accepted.
func IntelligenceReportSchema() string {
	return reportSchema
}

// ValidateIntelligenceReport validates a raw JSON document against the
// report schema, rejecting on the first violation.
func ValidateIntelligenceReport(jsonContent string) error {
	return ValidateJSONString(reportSchema, jsonContent)
}
