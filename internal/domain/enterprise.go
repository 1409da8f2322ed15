package domain

import "time"

// EnterpriseConfig is the single-row installation configuration.
type EnterpriseConfig struct {
	ID           string
	CompanyName  string
	SupportEmail string
	LogoURL      string
	Timezone     string
	UpdatedAt    time.Time
}
