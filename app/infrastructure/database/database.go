package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
	"streamvibe.tv/read-gateway/app/utils/logger"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

// NewDB opens the primary connection and, when configured, registers a read
// replica behind dbresolver. The read-heavy query paths are served from the
// replica pool.
func NewDB() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(environment_variables.EnvironmentVariables.DB_POSTGRESQL_WRITE_DSN), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		logger.GetLogger().
			WithField("error_code", "4b9d61a4-93fa-4cbb-8e53-7c0c2dd1c8fb").
			Fatalf("unable to connect to database: %v", err)
		return nil, err
	}

	if readDSN := environment_variables.EnvironmentVariables.DB_POSTGRESQL_READ1_DSN; readDSN != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(readDSN)},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			logger.GetLogger().
				WithField("error_code", "8c2f6a97-51d4-4f0e-9a6e-e24cf4ab7a31").
				Fatalf("unable to setup read replica: %v", err)
			return nil, err
		}
	}

	if environment_variables.EnvironmentVariables.ENABLE_AUTO_MIGRATE {
		for _, model := range SchemaRegistry {
			if err := db.AutoMigrate(model); err != nil {
				logger.GetLogger().
					WithField("error_code", "d0a1a9b2-4be3-4d94-9641-52fb2d1f52c2").
					Fatalf("failed to auto migrate schema: %T, error: %v", model, err)
				return nil, err
			}
		}
	}

	return db, nil
}
