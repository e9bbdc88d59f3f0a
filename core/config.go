package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string
		DebugAddress    string
		Host            string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	AttendanceConfig struct {
		// TargetPercent is used when a request does not carry its own target.
		TargetPercent float64
		// ReferenceYear drives leap-year handling of register labels. 0 means the current year.
		ReferenceYear int
	}

	PortalConfig struct {
		ProfileImageURL string // fmt template, %[1]s is the roll number
	}

	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		RollbarToken string
		Server       ServerConfig
		Attendance   AttendanceConfig
		Portal       PortalConfig
	}
)

// NewConfig reads the configuration from the environment, optionally seeded by `config/.env.<env>`.
func NewConfig() *Config {
	conf, err := loadConfig(viper.New(), os.Getenv("ENV"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return conf
}

func loadConfig(v *viper.Viper, env string) (*Config, error) {
	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Samvidha")
	v.SetDefault("build", "develop")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugAddress", ":4000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("attendance.targetPercent", 75.0)
	v.SetDefault("attendance.referenceYear", 0)
	v.SetDefault("portal.profileImageURL", "https://iare-data.s3.ap-south-1.amazonaws.com/uploads/STUDENTS/%[1]s/%[1]s.jpg")

	env = strings.ToUpper(CleanString(env)) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if root, err := Getwd(); err == nil {
		dotEnvPath := filepath.Join(root, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, errors.Wrapf(err, "godotenv(%s)", dotEnvPath)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "os.Stat(%s)", dotEnvPath)
		}
	}
	v.AutomaticEnv()

	conf := Config{
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			DebugAddress:    v.GetString("server.debugAddress"),
			Host:            v.GetString("server.host"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Attendance: AttendanceConfig{
			TargetPercent: v.GetFloat64("attendance.targetPercent"),
			ReferenceYear: v.GetInt("attendance.referenceYear"),
		},
		Portal: PortalConfig{
			ProfileImageURL: v.GetString("portal.profileImageURL"),
		},
	}
	if t := conf.Attendance.TargetPercent; !(t > 0 && t < 100) {
		return nil, errors.Errorf("attendance.targetPercent must be within (0, 100), got %v", t)
	}
	return &conf, nil
}
