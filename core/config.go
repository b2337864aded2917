package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf is the application configuration, loaded once at import time.
var Conf *Config

type (
	ServerConfig struct {
		Host string
		Addr string
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          string
		DisableTLS    bool
	}

	// AdvisorConfig configures the remote model service used for verification
	// and transcript extraction. When disabled, verification runs on the local
	// evaluator only.
	AdvisorConfig struct {
		Enabled     bool
		BaseURL     string
		APIKey      string
		Model       string
		HTTPTimeout time.Duration // zero = transport default
	}

	Config struct {
		Debug    bool
		TestMode bool
		AppName  string
		Env      string
		Build    string
		WorkDir  string

		// SecretKey is shared with the identity provider; bearer tokens are
		// verified against it. This service never issues production tokens.
		SecretKey      []byte
		IdentityIssuer string

		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		Server   ServerConfig
		Database DatabaseConfig
		Advisor  AdvisorConfig
	}
)

func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

func init() {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "TransferMap")
	v.SetDefault("secretKey", "+w2ni=t-9&my45oz7$q02m-dz&u9xh2(h!x)#*c2(#yg4h^$mo")
	v.SetDefault("identityIssuer", "transfermap-identity")
	v.SetDefault("frontendBaseURL", "http://localhost:5173")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("dbEngine", "postgres")
	v.SetDefault("dbName", "transfermap")
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", "5432")
	v.SetDefault("advisorBaseURL", "https://openrouter.ai/api/v1")
	v.SetDefault("advisorModel", "anthropic/claude-opus-4.5")
	v.SetDefault("advisorHTTPTimeout", time.Duration(0))

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	wd := Getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		AppName:          v.GetString("appName"),
		Env:              env,
		Build:            v.GetString("build"),
		WorkDir:          wd,
		SecretKey:        []byte(v.GetString("secretKey")),
		IdentityIssuer:   v.GetString("identityIssuer"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		SendgridAPIKey:   v.GetString("sendgridAPIKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host: v.GetString("serverHost"),
			Addr: v.GetString("serverAddr"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("dbEngine"),
			Name:          v.GetString("dbName"),
			User:          v.GetString("dbUser"),
			Password:      v.GetString("dbPassword"),
			AdminUser:     v.GetString("dbAdminUser"),
			AdminPassword: v.GetString("dbAdminPassword"),
			Host:          v.GetString("dbHost"),
			Port:          v.GetString("dbPort"),
			DisableTLS:    v.GetBool("dbDisableTLS"),
		},
		Advisor: AdvisorConfig{
			Enabled:     v.GetBool("advisorEnabled"),
			BaseURL:     v.GetString("advisorBaseURL"),
			APIKey:      v.GetString("advisorAPIKey"),
			Model:       v.GetString("advisorModel"),
			HTTPTimeout: v.GetDuration("advisorHTTPTimeout"),
		},
	}
}
