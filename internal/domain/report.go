package domain

// Source indica qual provedor de métricas respondeu a consulta.
type Source string

const (
	// SourceGA4 é a API primária (Google Analytics Data API, orientada a linhas)
	SourceGA4 Source = "ga4"
	// SourceUA é a API legada de contingência (Universal Analytics Reporting v4)
	SourceUA Source = "ua"
)

// ReportQuery é uma consulta de relatório já validada, pronta para ser
// enviada ao provedor. O PropertyID aqui já é o identificador efetivo
// (numérico), nunca o alias "G-XXXXXXXXX".
type ReportQuery struct {
	PropertyID string
	StartDate  string
	EndDate    string
	Metrics    []string
	Dimensions []string
}

// ReportRequest é o corpo bruto recebido do portal, antes de qualquer
// validação.
type ReportRequest struct {
	PropertyID string   `json:"propertyId"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Metrics    []string `json:"metrics"`
	Dimensions []string `json:"dimensions"`
}

// AnalyticsOverview agrega os totais do período consultado.
// ReturningUsers = Users - NewUsers, sem truncar em zero: valores negativos
// são aceitos como caso extremo conhecido quando o provedor reporta mais
// usuários novos do que usuários totais.
type AnalyticsOverview struct {
	PageViews          int     `json:"pageViews"`
	Users              int     `json:"users"`
	Sessions           int     `json:"sessions"`
	BounceRate         float64 `json:"bounceRate"`
	AvgSessionDuration float64 `json:"avgSessionDuration"`
	NewUsers           int     `json:"newUsers"`
	ReturningUsers     int     `json:"returningUsers"`
	Events             int     `json:"events"`
}

// TrendPoint é o recorte diário das métricas, ordenado por data crescente.
type TrendPoint struct {
	Date      string `json:"date"`
	PageViews int    `json:"pageViews"`
	Users     int    `json:"users"`
	Sessions  int    `json:"sessions"`
	Events    int    `json:"events"`
}

// TopPage é uma entrada do ranking de páginas mais vistas (top 10).
type TopPage struct {
	Page      string `json:"page"`
	PageViews int    `json:"pageViews"`
}

// CountryBreakdown é uma entrada do recorte de usuários por país (top 10).
type CountryBreakdown struct {
	Country string `json:"country"`
	Users   int    `json:"users"`
}

// DeviceBreakdown é uma entrada do recorte de sessões por dispositivo.
type DeviceBreakdown struct {
	Device   string `json:"device"`
	Sessions int    `json:"sessions"`
}

// Demographics reúne os recortes demográficos complementares.
type Demographics struct {
	Countries []CountryBreakdown `json:"countries"`
	Devices   []DeviceBreakdown  `json:"devices"`
}

// AnalyticsReport é o modelo canônico devolvido ao portal, independente de
// qual provedor respondeu. TopPages e Demographics são opcionais: falhas nas
// buscas complementares degradam para campo ausente, nunca para erro.
type AnalyticsReport struct {
	Overview     AnalyticsOverview `json:"overview"`
	Trend        []TrendPoint      `json:"trend"`
	TopPages     []TopPage         `json:"topPages,omitempty"`
	Demographics *Demographics     `json:"demographics,omitempty"`
	Source       Source            `json:"-"`
}
