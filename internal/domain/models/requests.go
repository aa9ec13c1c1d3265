package models

// Requests for report HTTP endpoints.

type AnalyzeRequest struct {
	NoCharts bool `query:"no_charts" json:"no_charts"`
}

type ReportListRequest struct {
	Limit int `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=100"`
}
