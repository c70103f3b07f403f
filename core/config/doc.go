// Package config provides type-safe environment variable loading with
// caching using Go generics. Each configuration type is loaded once and
// cached for subsequent calls.
//
// The package loads a .env file on first use and uses the caarlos0/env
// library for parsing environment variables into struct fields.
//
//	type AppConfig struct {
//		GRPCAddr         string `env:"GRPC_ADDR" envDefault:":50051"`
//		SubscriberBuffer int    `env:"SUBSCRIBER_BUFFER" envDefault:"4"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (useful for startup)
//	config.MustLoad(&cfg)
package config
