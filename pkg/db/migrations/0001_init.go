package migrations

import (
	"context"
	"database/sql"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

type Agent struct {
	ID        int64     `gorm:"type:bigserial;primaryKey"`
	UserAgent string    `gorm:"type:text;not null;uniqueIndex:idx_agents_identity"`
	Internal  bool      `gorm:"not null;default:false;uniqueIndex:idx_agents_identity"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
}

// QueueEntry rows are inserted by the API with status QUEUED; the
// processing worker owns all later status transitions, skin_id and result.
type QueueEntry struct {
	ID        int64             `gorm:"type:bigserial;primaryKey"`
	SkinURL   string            `gorm:"type:text;not null;uniqueIndex"`
	Value     string            `gorm:"type:text"`
	Signature string            `gorm:"type:text"`
	AgentID   int64             `gorm:"type:bigint;not null"`
	Status    string            `gorm:"type:text;not null;default:'QUEUED'"`
	SkinID    *int64            `gorm:"type:bigint"`
	Result    datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt time.Time         `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
	Agent     Agent             `gorm:"foreignKey:AgentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (QueueEntry) TableName() string { return "queue" }

type Skin struct {
	ID          int64     `gorm:"type:bigserial;primaryKey"`
	SkinURL     string    `gorm:"type:text;not null;uniqueIndex"`
	DuplicateOf *int64    `gorm:"type:bigint"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
}

type SkinImage struct {
	SkinID int64  `gorm:"type:bigint;primaryKey"`
	Kind   string `gorm:"type:text;primaryKey"`
	Data   []byte `gorm:"type:bytea;not null"`
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx, PreferSimpleProtocol: true}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	if err := gormDB.WithContext(ctx).AutoMigrate(
		&Agent{},
		&QueueEntry{},
		&Skin{},
		&SkinImage{},
	); err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Migrator().CreateConstraint(&QueueEntry{}, "Agent")
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx, PreferSimpleProtocol: true}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Migrator().DropTable(
		&SkinImage{},
		&Skin{},
		&QueueEntry{},
		&Agent{},
	)
}
