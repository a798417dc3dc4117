package config

type HTTP struct {
	Port               uint32   `env:"PORT" envDefault:"5000"`
	Swagger            bool     `env:"HTTP_SWAGGER" envDefault:"true"`
	CorsAllowedOrigins []string `env:"HTTP_CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}
