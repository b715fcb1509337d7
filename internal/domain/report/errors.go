package report

import "errors"

// Sentinel kinds for report errors.
var (
	ErrReportGeneration = errors.New("report generation failed")
)
