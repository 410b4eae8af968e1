package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Menu sources.
const (
	MenuSourceFile     = "file"
	MenuSourceS3       = "s3"
	MenuSourceDatabase = "database"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars `json:"env"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port               string   `env:"PORT" envDefault:"3000"`
	MenuSource         string   `env:"MENU_SOURCE" envDefault:"file"`
	MenuPath           string   `env:"MENU_PATH" envDefault:"configs/menu.yaml"`
	DatabaseUrl        string   `env:"DATABASE_URL" optional:"true"`
	AWSRegion          string   `env:"AWS_REGION" optional:"true"`
	AWSAccessKeyID     string   `env:"AWS_ACCESS_KEY_ID" optional:"true"`
	AWSSecretAccessKey string   `env:"AWS_SECRET_ACCESS_KEY" optional:"true"`
	S3Bucket           string   `env:"S3_BUCKET" optional:"true"`
	MenuS3Key          string   `env:"MENU_S3_KEY" envDefault:"menu.yaml" optional:"true"`
	JwtSecretKey       string   `env:"JWT_SECRET_KEY" optional:"true"`
	OpenAIAPIKey       string   `env:"OPENAI_API_KEY" optional:"true"`
	SkillID            string   `env:"SKILL_ID" optional:"true"`
	PhoneticMatching   bool     `env:"PHONETIC_MATCHING" envDefault:"false" optional:"true"`
	RateLimitRPS       int      `env:"RATE_LIMIT_RPS" envDefault:"10" optional:"true"`
	AllowedOrigins     []string `env:"ALLOWED_ORIGINS" envSeparator:"," optional:"true"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	config.EnvVars.MenuSource = strings.ToLower(strings.TrimSpace(config.EnvVars.MenuSource))
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set
// and that the selected menu source has what it needs.
func (c *Config) CheckConfigEnvFields() error {
	if err := checkFieldsRecursive(reflect.ValueOf(c.EnvVars)); err != nil {
		return err
	}

	e := c.EnvVars
	switch e.MenuSource {
	case MenuSourceFile:
	case MenuSourceS3:
		if e.AWSRegion == "" || e.S3Bucket == "" || e.MenuS3Key == "" {
			return fmt.Errorf("$AWS_REGION, $S3_BUCKET and $MENU_S3_KEY must be set when $MENU_SOURCE is %q", e.MenuSource)
		}
	case MenuSourceDatabase:
		if e.DatabaseUrl == "" {
			return fmt.Errorf("$DATABASE_URL must be set when $MENU_SOURCE is %q", e.MenuSource)
		}
	default:
		return fmt.Errorf("$MENU_SOURCE must be one of file, s3, database; got %q", e.MenuSource)
	}
	if e.RateLimitRPS < 0 {
		return fmt.Errorf("$RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if field.IsZero() {
			return fmt.Errorf("$%s must be set", fieldType.Tag.Get("env"))
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}
