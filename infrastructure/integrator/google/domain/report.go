package domain

// Formas de requisição e resposta dos dois provedores do Google Analytics.
// O primário (GA4 Data API) é orientado a linhas com arrays de valores de
// dimensão/métrica; o legado (Universal Analytics Reporting v4) aninha as
// linhas em reports[0].data.rows.

// DateRange delimita o período consultado (datas relativas ou YYYY-MM-DD)
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Metric é uma métrica GA4 referenciada por nome
type Metric struct {
	Name string `json:"name"`
}

// Dimension é uma dimensão referenciada por nome (GA4 e UA)
type Dimension struct {
	Name string `json:"name"`
}

// OrderBy ordena o relatório por dimensão ou por métrica
type OrderBy struct {
	Dimension *DimensionOrderBy `json:"dimension,omitempty"`
	Metric    *MetricOrderBy    `json:"metric,omitempty"`
	Desc      bool              `json:"desc,omitempty"`
}

type DimensionOrderBy struct {
	DimensionName string `json:"dimensionName"`
}

type MetricOrderBy struct {
	MetricName string `json:"metricName"`
}

// RunReportRequest é o corpo do runReport do GA4
type RunReportRequest struct {
	DateRanges []DateRange `json:"dateRanges"`
	Metrics    []Metric    `json:"metrics"`
	Dimensions []Dimension `json:"dimensions"`
	OrderBys   []OrderBy   `json:"orderBys,omitempty"`
	Limit      int         `json:"limit,omitempty"`
}

// RunReportResponse é a resposta orientada a linhas do GA4
type RunReportResponse struct {
	Rows []RunReportRow `json:"rows"`
}

type RunReportRow struct {
	DimensionValues []RunReportValue `json:"dimensionValues"`
	MetricValues    []RunReportValue `json:"metricValues"`
}

type RunReportValue struct {
	Value string `json:"value"`
}

// MetricExpression é uma métrica UA referenciada por expressão ("ga:...")
type MetricExpression struct {
	Expression string `json:"expression"`
}

// ReportRequest é uma requisição individual do batchGet legado
type ReportRequest struct {
	ViewID     string             `json:"viewId"`
	DateRanges []DateRange        `json:"dateRanges"`
	Metrics    []MetricExpression `json:"metrics"`
	Dimensions []Dimension        `json:"dimensions"`
}

// BatchGetRequest é o corpo do batchGet do Universal Analytics
type BatchGetRequest struct {
	ReportRequests []ReportRequest `json:"reportRequests"`
}

// BatchGetResponse é a resposta aninhada do Universal Analytics
type BatchGetResponse struct {
	Reports []Report `json:"reports"`
}

type Report struct {
	Data ReportData `json:"data"`
}

type ReportData struct {
	Rows []ReportRow `json:"rows"`
}

type ReportRow struct {
	Dimensions []string       `json:"dimensions"`
	Metrics    []ReportMetric `json:"metrics"`
}

type ReportMetric struct {
	Values []string `json:"values"`
}
