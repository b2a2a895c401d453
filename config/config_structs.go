package config

// BaseConfig is the application configuration tree, loaded from
// config/app.json with environment overrides.
type BaseConfig struct {
	App         App         `json:"app" koanf:"app"`
	Auth        Auth        `json:"auth" koanf:"auth"`
	Persistence Persistence `json:"persistence" koanf:"persistence"`
	Server      Server      `json:"server" koanf:"server"`
}

type App struct {
	Name  string `json:"name" koanf:"name"`
	Debug bool   `json:"debug" koanf:"debug"`
}

type Auth struct {
	SigningKey      string   `json:"signing_key" koanf:"signing_key"`
	ContextKey      string   `json:"context_key" koanf:"context_key"`
	TokenExpiration int      `json:"token_expiration" koanf:"token_expiration"`
	TokenLookup     string   `json:"token_lookup" koanf:"token_lookup"`
	AuthScheme      string   `json:"auth_scheme" koanf:"auth_scheme"`
	Issuer          string   `json:"issuer" koanf:"issuer"`
	Audience        []string `json:"audience" koanf:"audience"`
}

type Persistence struct {
	Debug                 bool   `json:"debug" koanf:"debug"`
	Driver                string `json:"driver" koanf:"driver"`
	Server                string `json:"server" koanf:"server"`
	Database              string `json:"database" koanf:"database"`
	PingTimeoutExpression string `json:"ping_timeout" koanf:"ping_timeout"`
}

type Server struct {
	Address string `json:"address" koanf:"address"`
}
