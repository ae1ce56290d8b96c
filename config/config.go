package config

import (
	"log"

	"studio-akira-api/models"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Auth   AuthConfig   `mapstructure:"auth"`
	SMTP   SMTPConfig   `mapstructure:"smtp"`
	Site   SiteConfig   `mapstructure:"site"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	// AdminEmail is the reserved administrator address: logins with this
	// email are admitted only when the stored role is admin.
	AdminEmail    string `mapstructure:"admin_email"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Host     string `mapstructure:"host"`
	From     string `mapstructure:"from"`
	Password string `mapstructure:"password"`
}

type SiteConfig struct {
	Name string `mapstructure:"name"`
}

var (
	Cfg *Config
	DB  *gorm.DB

	// JWTSecret used to sign tokens, replaced from config on Load
	JWTSecret = []byte("studio_akira_super_secret_2026")
)

// Load reads an optional config.yaml plus AKIRA_-prefixed environment
// overrides. A missing config file is not an error; defaults apply.
func Load() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	v.AddConfigPath("/etc/studio-akira/")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("db.path", "studio_akira.db")
	v.SetDefault("auth.jwt_secret", string(JWTSecret))
	v.SetDefault("auth.admin_email", "admin@gmail.com")
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("site.name", "studio akira")

	v.SetEnvPrefix("AKIRA")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal("Failed to read config file:", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		log.Fatal("Failed to unmarshal config:", err)
	}

	Cfg = cfg
	JWTSecret = []byte(cfg.Auth.JWTSecret)
	return cfg
}

func InitDB() {
	path := "studio_akira.db"
	if Cfg != nil && Cfg.DB.Path != "" {
		path = Cfg.DB.Path
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.ApprovalRequest{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.ContentDocument{},
		&models.CartSlot{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated successfully")
}
