// Package config provides Viper-based configuration loading for the apothecary engine.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/apothecary/internal/game/dice"
)

// DatabaseConfig holds PostgreSQL connection settings for snapshot storage.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// RulesConfig holds the tunable numbers of the progression rules.
type RulesConfig struct {
	// ProfessionChoiceLevel is the level at which a profession may be chosen.
	ProfessionChoiceLevel int `mapstructure:"profession_choice_level"`
	// LevelCap is the maximum player level; it is also the legendary title level.
	LevelCap int `mapstructure:"level_cap"`
	// MasterTitleLevel is the first level that earns a profession's master title.
	MasterTitleLevel int `mapstructure:"master_title_level"`
	// SkillBonusPerLevel scales a skill level into a skill-check bonus.
	SkillBonusPerLevel float64 `mapstructure:"skill_bonus_per_level"`
	// CheckDie is the dice expression rolled by skill checks, e.g. "1d20".
	CheckDie string `mapstructure:"check_die"`
	// QuestCooldownTurns is the base number of turns before a quest template may repeat.
	QuestCooldownTurns int `mapstructure:"quest_cooldown_turns"`
	// ToxicSkills lists the skill IDs scaled by toxicXPMultiplier.
	ToxicSkills []string `mapstructure:"toxic_skills"`
	// ProfessionsDir overrides the embedded profession content when non-empty.
	ProfessionsDir string `mapstructure:"professions_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Rules    RulesConfig    `mapstructure:"rules"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRules(c.Rules); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		errs = append(errs, fmt.Sprintf("database.min_conns must be in [0, max_conns], got %d", d.MinConns))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateRules(r RulesConfig) error {
	var errs []string
	if r.ProfessionChoiceLevel < 2 {
		errs = append(errs, fmt.Sprintf("rules.profession_choice_level must be >= 2, got %d", r.ProfessionChoiceLevel))
	}
	if r.MasterTitleLevel <= r.ProfessionChoiceLevel {
		errs = append(errs, fmt.Sprintf("rules.master_title_level must exceed profession_choice_level, got %d", r.MasterTitleLevel))
	}
	if r.LevelCap <= r.MasterTitleLevel {
		errs = append(errs, fmt.Sprintf("rules.level_cap must exceed master_title_level, got %d", r.LevelCap))
	}
	if r.SkillBonusPerLevel < 0 {
		errs = append(errs, fmt.Sprintf("rules.skill_bonus_per_level must be >= 0, got %g", r.SkillBonusPerLevel))
	}
	if _, err := dice.Parse(r.CheckDie); err != nil {
		errs = append(errs, fmt.Sprintf("rules.check_die is invalid: %v", err))
	}
	if r.QuestCooldownTurns < 0 {
		errs = append(errs, fmt.Sprintf("rules.quest_cooldown_turns must be >= 0, got %d", r.QuestCooldownTurns))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("APOTHECARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration produced by the defaults alone.
//
// Postcondition: Returns a Config that passes Validate.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: defaults fail validation: " + err.Error())
	}
	return cfg
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "apothecary")
	v.SetDefault("database.password", "apothecary")
	v.SetDefault("database.name", "apothecary")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("rules.profession_choice_level", 5)
	v.SetDefault("rules.level_cap", 99)
	v.SetDefault("rules.master_title_level", 50)
	v.SetDefault("rules.skill_bonus_per_level", 0.5)
	v.SetDefault("rules.check_die", "1d20")
	v.SetDefault("rules.quest_cooldown_turns", 10)
	v.SetDefault("rules.toxic_skills", []string{"toxicology"})
	v.SetDefault("rules.professions_dir", "")
}
