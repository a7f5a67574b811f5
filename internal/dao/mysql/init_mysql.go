// Package mysql initializes the database connection and the repository layer.
package mysql

import (
	"fmt"

	"theracare_server/internal/config"
	"theracare_server/internal/dao/mysql/repository"
	"theracare_server/internal/model"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init opens the MySQL connection, migrates the schema and returns the
// repository aggregate. Fatal on connection or migration failure: the server
// cannot run without its system of record.
func Init() *repository.Repositories {
	conf := config.GetConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	// AutoMigrate creates missing tables and columns; it never drops data.
	err = db.AutoMigrate(
		&model.UserInfo{},
		&model.TherapySession{},
		&model.Conversation{},
		&model.ChatMessage{},
		&model.AppointmentRequest{},
		&model.Notification{},
	)
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	return repository.NewRepositories(db)
}
