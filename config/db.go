package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLDSN builds the MySQL DSN from MYSQL_DSN or the MYSQL_* parts.
func MySQLDSN() string {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn != "" {
		return dsn
	}
	user := os.Getenv("MYSQL_USER")
	pass := os.Getenv("MYSQL_PASS")
	host := os.Getenv("MYSQL_HOST")
	port := GetEnv("MYSQL_PORT", "3306")
	db := os.Getenv("MYSQL_DB")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local", user, pass, host, port, db)
}

// NewDB opens the database selected by DB_DRIVER (mysql by default, or sqlite).
func NewDB() (*gorm.DB, error) {
	logMode := logger.Info
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use log.Logger for Printf support
		logger.Config{
			SlowThreshold: time.Second, // Slow SQL threshold
			LogLevel:      logMode,     // Log level
			Colorful:      true,        // Enable color
		},
	)

	var dialector gorm.Dialector
	switch GetEnv("DB_DRIVER", "mysql") {
	case "sqlite":
		dialector = sqlite.Open(GetEnv("SQLITE_PATH", "procurement.db"))
	case "mysql":
		dialector = mysql.Open(MySQLDSN())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", os.Getenv("DB_DRIVER"))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}
