package config

import (
	"context"
	"strings"

	"github.com/spf13/viper"
	"github.com/zeromicro/go-zero/core/logc"
)

type App struct {
	Server   Server   `mapstructure:"Server"`
	Database Database `mapstructure:"Database"`
	Redis    Redis    `mapstructure:"Redis"`
	Jwt      Jwt      `mapstructure:"Jwt"`
	Duty     Duty     `mapstructure:"Duty"`
	Audit    Audit    `mapstructure:"Audit"`
	Intake   Intake   `mapstructure:"Intake"`
	Webhook  Webhook  `mapstructure:"Webhook"`
	Smtp     Smtp     `mapstructure:"Smtp"`
	Admin    Admin    `mapstructure:"Admin"`
}

type Server struct {
	Port string `mapstructure:"port"`
	// Mode is gin's mode: debug or release.
	Mode string `mapstructure:"mode"`
}

type Database struct {
	// Driver is mysql or sqlite. For sqlite DBName is the database file.
	Driver  string `mapstructure:"driver"`
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	User    string `mapstructure:"user"`
	Pass    string `mapstructure:"pass"`
	DBName  string `mapstructure:"dbName"`
	Timeout string `mapstructure:"timeout"`
}

type Redis struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Pass string `mapstructure:"pass"`
	DB   int    `mapstructure:"db"`
}

type Jwt struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expireHours"`
}

type Duty struct {
	// MaxShiftHours closes sessions left open longer than this; 0 disables.
	MaxShiftHours int `mapstructure:"maxShiftHours"`
}

type Audit struct {
	RetentionDays int `mapstructure:"retentionDays"`
}

type Intake struct {
	// RequestsPerMinute per client IP on the public complaint form.
	RequestsPerMinute int `mapstructure:"requestsPerMinute"`
}

type Webhook struct {
	DispatchUrl string `mapstructure:"dispatchUrl"`
}

type Smtp struct {
	Enable bool   `mapstructure:"enable"`
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	User   string `mapstructure:"user"`
	Pass   string `mapstructure:"pass"`
	From   string `mapstructure:"from"`
}

// Admin is the account seeded on first boot.
type Admin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.port", "9001")
	v.SetDefault("Server.mode", "release")
	v.SetDefault("Database.driver", "mysql")
	v.SetDefault("Database.port", "3306")
	v.SetDefault("Database.timeout", "10s")
	v.SetDefault("Redis.port", "6379")
	v.SetDefault("Jwt.expireHours", 12)
	v.SetDefault("Duty.maxShiftHours", 12)
	v.SetDefault("Audit.retentionDays", 90)
	v.SetDefault("Intake.requestsPerMinute", 5)
	v.SetDefault("Smtp.port", 587)
	v.SetDefault("Admin.username", "admin")
}

// InitConfig reads config/config.yaml; MDT_* environment variables override
// file values (MDT_DATABASE_HOST for Database.host).
func InitConfig() App {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("MDT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		logc.Errorf(context.Background(), "config file not loaded, using defaults and environment: %s", err.Error())
	}

	var app App
	if err := v.Unmarshal(&app); err != nil {
		panic("config decode failed: " + err.Error())
	}
	return app
}
