//go:generate app-config -input ./app.json -output ./config_structs.go -pkg config --struct BaseConfig -extension overrides.yml
//go:generate config-getters -input ./config_structs.go -output config_getters.go
package config

import (
	"fmt"
	"time"
)

func (b BaseConfig) Validate() error {
	if b.Auth.SigningKey == "" {
		return fmt.Errorf("config: auth.signing_key is required")
	}
	if b.Auth.TokenExpiration < 1 {
		return fmt.Errorf("config: auth.token_expiration must be at least one hour")
	}
	return nil
}

func (p Persistence) GetPingTimeout() time.Duration {
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}

// GetDSN builds the connection string handed to sql.Open. The sqlite
// driver takes the database path as is.
func (p Persistence) GetDSN() string {
	if p.Driver == "sqlite" || p.Driver == "sqlite3" {
		return p.Database
	}
	return fmt.Sprintf("%s/%s", p.Server, p.Database)
}
