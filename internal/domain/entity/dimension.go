package entity

import (
	"sort"
	"strings"
)

// Dimension é um eixo do Cost Explorer usado para filtrar e agrupar.
type Dimension string

const (
	DimensionAZ                Dimension = "AZ"
	DimensionInstanceType      Dimension = "INSTANCE_TYPE"
	DimensionLinkedAccount     Dimension = "LINKED_ACCOUNT"
	DimensionLinkedAccountName Dimension = "LINKED_ACCOUNT_NAME"
	DimensionOperation         Dimension = "OPERATION"
	DimensionPurchaseType      Dimension = "PURCHASE_TYPE"
	DimensionRegion            Dimension = "REGION"
	DimensionService           Dimension = "SERVICE"
	DimensionServiceCode       Dimension = "SERVICE_CODE"
	DimensionUsageType         Dimension = "USAGE_TYPE"
	DimensionUsageTypeGroup    Dimension = "USAGE_TYPE_GROUP"
	DimensionRecordType        Dimension = "RECORD_TYPE"
	DimensionOperatingSystem   Dimension = "OPERATING_SYSTEM"
	DimensionTenancy           Dimension = "TENANCY"
	DimensionPlatform          Dimension = "PLATFORM"
	DimensionDatabaseEngine    Dimension = "DATABASE_ENGINE"
	DimensionInstanceFamily    Dimension = "INSTANCE_TYPE_FAMILY"
	DimensionBillingEntity     Dimension = "BILLING_ENTITY"
	DimensionLegalEntityName   Dimension = "LEGAL_ENTITY_NAME"
	DimensionDeploymentOption  Dimension = "DEPLOYMENT_OPTION"
	DimensionCacheEngine       Dimension = "CACHE_ENGINE"
)

var knownDimensions = map[Dimension]bool{
	DimensionAZ:                true,
	DimensionInstanceType:      true,
	DimensionLinkedAccount:     true,
	DimensionLinkedAccountName: true,
	DimensionOperation:         true,
	DimensionPurchaseType:      true,
	DimensionRegion:            true,
	DimensionService:           true,
	DimensionServiceCode:       true,
	DimensionUsageType:         true,
	DimensionUsageTypeGroup:    true,
	DimensionRecordType:        true,
	DimensionOperatingSystem:   true,
	DimensionTenancy:           true,
	DimensionPlatform:          true,
	DimensionDatabaseEngine:    true,
	DimensionInstanceFamily:    true,
	DimensionBillingEntity:     true,
	DimensionLegalEntityName:   true,
	DimensionDeploymentOption:  true,
	DimensionCacheEngine:       true,
}

// Grafias alternativas que o próprio Cost Explorer não aceita.
var dimensionAliases = map[string]Dimension{
	"AVAILABILITY_ZONE": DimensionAZ,
}

// LookupDimension resolve um token como "usage_type" ou "Usage-Type"
// para uma dimensão do Cost Explorer.
func LookupDimension(name string) (Dimension, bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	if d, ok := dimensionAliases[key]; ok {
		return d, true
	}
	if knownDimensions[Dimension(key)] {
		return Dimension(key), true
	}
	return "", false
}

// KnownDimensions retorna os nomes das dimensões suportadas, em minúsculas e ordenados.
func KnownDimensions() []string {
	names := make([]string, 0, len(knownDimensions))
	for d := range knownDimensions {
		names = append(names, strings.ToLower(string(d)))
	}
	sort.Strings(names)
	return names
}

// DimensionValue é um valor distinto retornado pela listagem de uma dimensão.
type DimensionValue struct {
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}
