package reporting

import (
	"fmt"
	"regexp"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/phoouze/devplaza-analytics-api/internal/domain"
)

const (
	// Limites de sanidade do corpo de requisição
	MaxBodyBytes = 10 * 1024
	maxBodyDepth = 5

	maxMetrics    = 20
	maxDimensions = 10
	maxFieldLen   = 50
)

var (
	numericPropertyPattern = regexp.MustCompile(`^\d{8,15}$`)
	aliasPropertyPattern   = regexp.MustCompile(`(?i)^G-[A-Z0-9]{8,12}$`)
	propertyCharsPattern   = regexp.MustCompile(`[^\w-]`)
	relativeDatePattern    = regexp.MustCompile(`^(today|yesterday|\d+daysAgo)$`)
	absoluteDatePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	fieldNamePattern       = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseRequest decodifica e valida o corpo bruto da requisição, devolvendo
// uma consulta pronta para o integrador. Nenhuma chamada externa acontece
// antes de todas as validações passarem.
func ParseRequest(body []byte) (*domain.ReportRequest, error) {
	if len(body) > MaxBodyBytes {
		return nil, validationError(ErrPayloadTooLarge, fmt.Sprintf("corpo com %d bytes", len(body)))
	}

	if err := checkDepth(body); err != nil {
		return nil, err
	}

	request := &domain.ReportRequest{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, request); err != nil {
			return nil, validationError(ErrInvalidRequestBody, "JSON malformado")
		}
	}

	if err := validateRequest(request); err != nil {
		return nil, err
	}

	return request, nil
}

// checkDepth percorre o JSON bruto e rejeita estruturas mais profundas que
// o limite, antes de qualquer decodificação em structs
func checkDepth(body []byte) error {
	depth := 0
	maxSeen := 0
	inString := false
	escaped := false

	for _, char := range body {
		if escaped {
			escaped = false
			continue
		}
		switch char {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				depth++
				if depth > maxSeen {
					maxSeen = depth
				}
				if maxSeen > maxBodyDepth {
					return validationError(ErrPayloadTooLarge, fmt.Sprintf("profundidade %d acima do limite", maxSeen))
				}
			}
		case '}', ']':
			if !inString {
				depth--
			}
		}
	}

	return nil
}

func validateRequest(request *domain.ReportRequest) error {
	if request.PropertyID != "" {
		if err := validatePropertyID(request.PropertyID); err != nil {
			return err
		}
	}

	if request.StartDate != "" {
		if err := validateDate(request.StartDate); err != nil {
			return err
		}
	}
	if request.EndDate != "" {
		if err := validateDate(request.EndDate); err != nil {
			return err
		}
	}

	if len(request.Metrics) > maxMetrics {
		return validationError(ErrTooManyMetrics, fmt.Sprintf("%d métricas", len(request.Metrics)))
	}
	for _, metric := range request.Metrics {
		if err := validateFieldName(metric, ErrInvalidMetricName); err != nil {
			return err
		}
	}

	if len(request.Dimensions) > maxDimensions {
		return validationError(ErrTooManyDimensions, fmt.Sprintf("%d dimensões", len(request.Dimensions)))
	}
	for _, dimension := range request.Dimensions {
		if err := validateFieldName(dimension, ErrInvalidDimensionName); err != nil {
			return err
		}
	}

	return nil
}

func validatePropertyID(propertyID string) error {
	// Segunda barreira além dos formatos: qualquer caractere fora de
	// [\w-] invalida o identificador antes mesmo do casamento de padrão
	if propertyCharsPattern.ReplaceAllString(propertyID, "") != propertyID {
		return validationError(ErrInvalidPropertyID, "")
	}

	if numericPropertyPattern.MatchString(propertyID) || aliasPropertyPattern.MatchString(propertyID) {
		return nil
	}
	return validationError(ErrInvalidPropertyID, "")
}

// IsAliasPropertyID informa se o identificador é um measurement ID (G-),
// que precisa ser resolvido via configuração antes de consultar o provedor
func IsAliasPropertyID(propertyID string) bool {
	return aliasPropertyPattern.MatchString(propertyID)
}

func validateDate(value string) error {
	if relativeDatePattern.MatchString(value) {
		return nil
	}
	if !absoluteDatePattern.MatchString(value) {
		return validationError(ErrInvalidDateFormat, "")
	}

	// A data absoluta precisa existir de fato no calendário: o parse
	// com ida e volta rejeita 2024-02-30 e similares
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil || parsed.Format("2006-01-02") != value {
		return validationError(ErrInvalidDateFormat, "data inexistente no calendário")
	}

	return nil
}

// validateFieldName casa o valor bruto com o padrão, sem aparas: um nome
// com espaços nas bordas é inválido e não pode seguir ao provedor
func validateFieldName(name string, baseErr error) error {
	if name == "" || len(name) > maxFieldLen || !fieldNamePattern.MatchString(name) {
		return validationError(baseErr, "")
	}
	return nil
}
