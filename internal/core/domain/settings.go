package domain

// SaaSFeaturesKey is the system settings key holding feature toggles.
const SaaSFeaturesKey = "SAAS_FEATURES"

// SaaSFeatures are the toggles stored under SaaSFeaturesKey.
type SaaSFeatures struct {
	Auditoria bool `json:"AUDITORIA"`
}
