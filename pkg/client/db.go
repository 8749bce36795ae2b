package client

import (
	"context"
	"fmt"

	"mdt/internal/global"
	"mdt/internal/repo"

	"github.com/glebarez/sqlite"
	"github.com/zeromicro/go-zero/core/logc"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DBConfig struct {
	Driver  string
	Host    string
	Port    string
	User    string
	Pass    string
	DBName  string
	Timeout string
}

// NewDBClient opens the database and migrates the application tables.
func NewDBClient(config DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case "", "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=True&loc=Local&timeout=%s",
			config.User,
			config.Pass,
			config.Host,
			config.Port,
			config.DBName,
			config.Timeout)
		dialector = mysql.Open(dsn)
	case "sqlite":
		// immediate transactions make concurrent writers queue on the busy
		// timeout instead of failing the lock upgrade
		dialector = sqlite.Open(config.DBName + "?_pragma=busy_timeout(5000)&_txlock=immediate")
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		logc.Errorf(context.Background(), "failed to connect database: %s", err.Error())
		return nil, err
	}

	if err := db.AutoMigrate(repo.AllModels()...); err != nil {
		logc.Error(context.Background(), err.Error())
		return nil, err
	}

	if global.Config.Server.Mode == "debug" {
		db = db.Debug()
	} else {
		db.Logger = logger.Default.LogMode(logger.Silent)
	}

	return db, nil
}
