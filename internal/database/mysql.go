package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant/internal/config"
	"restaurant/internal/models"
)

// MySQLDSN builds the driver DSN. An explicit DSN wins; otherwise a Cloud SQL
// instance name selects the unix socket, and host:port is the fallback.
func MySQLDSN(cfg config.MySQL) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	if cfg.InstanceConnectionName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?%s",
			cfg.User,
			cfg.Password,
			cfg.InstanceConnectionName,
			cfg.Database,
			cfg.Params,
		)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.Params,
	)
}

// OpenMySQL returns a gorm DB with pool limits applied.
func OpenMySQL(cfg config.MySQL) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	gdb, err := gorm.Open(mysql.Open(MySQLDSN(cfg)), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return gdb, nil
}

// Migrate applies the relational schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}
