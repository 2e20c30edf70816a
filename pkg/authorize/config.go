package authorize

import "github.com/melbooking/melbooking_backend/config"

// Config holds configuration for the authorization system
type Config struct {
	CasbinModelPath string

	// EnableAudit wraps the enforcer with decision and role-change logging.
	EnableAudit bool

	// PolicySyncEnabled attaches a Postgres LISTEN/NOTIFY watcher so policy
	// changes reach every running instance.
	PolicySyncEnabled bool
}

func FromCentralConfig(c config.AuthorizationConfig) Config {
	return Config{
		CasbinModelPath:   c.CasbinModelPath,
		EnableAudit:       c.EnableAudit,
		PolicySyncEnabled: c.PolicySyncEnabled,
	}
}
