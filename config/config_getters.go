package config

func (b BaseConfig) GetApp() App {
	return b.App
}

func (b BaseConfig) GetAuth() Auth {
	return b.Auth
}

func (b BaseConfig) GetPersistence() Persistence {
	return b.Persistence
}

func (b BaseConfig) GetServer() Server {
	return b.Server
}

func (a App) GetName() string {
	return a.Name
}

func (a App) GetDebug() bool {
	return a.Debug
}

func (a Auth) GetSigningKey() string {
	return a.SigningKey
}

func (a Auth) GetContextKey() string {
	return a.ContextKey
}

func (a Auth) GetTokenExpiration() int {
	return a.TokenExpiration
}

func (a Auth) GetTokenLookup() string {
	return a.TokenLookup
}

func (a Auth) GetAuthScheme() string {
	return a.AuthScheme
}

func (a Auth) GetIssuer() string {
	return a.Issuer
}

func (a Auth) GetAudience() []string {
	return a.Audience
}

func (p Persistence) GetDebug() bool {
	return p.Debug
}

func (p Persistence) GetDriver() string {
	return p.Driver
}

func (p Persistence) GetServer() string {
	return p.Server
}

func (p Persistence) GetDatabase() string {
	return p.Database
}

func (p Persistence) GetOtelIdentifier() string {
	return ""
}

func (s Server) GetAddress() string {
	return s.Address
}
