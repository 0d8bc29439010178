package config

import "time"

type Config struct {
	Environment  Environment
	Log          Log
	HTTP         HTTPServer
	DatabasePath string `env:"DATABASE_PATH" envDefault:"shoppingcart.db"`

	Payment  Payment  `envPrefix:"PAYMENT_"`
	Auth     Auth     `envPrefix:"AUTH_"`
	Checkout Checkout `envPrefix:"CHECKOUT_"`
}

type Payment struct {
	BaseApiURL string        `env:"BASE_API_URL"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type Checkout struct {
	ShippingFee   int64         `env:"SHIPPING_FEE" envDefault:"30000"`
	SubmitTimeout time.Duration `env:"SUBMIT_TIMEOUT" envDefault:"30s"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
