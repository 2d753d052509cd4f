package model

// RemittanceStatus represents the lifecycle state of a remittance.
type RemittanceStatus string

const (
	RemittanceStatusPending              RemittanceStatus = "pending"
	RemittanceStatusProcessingValidation RemittanceStatus = "processing_validation"
	RemittanceStatusValidated            RemittanceStatus = "validated"
)
