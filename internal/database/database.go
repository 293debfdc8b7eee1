package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/config"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// BuildDSN 构建 PostgreSQL DSN
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// Connect 连接数据库并配置连接池
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// 未配置的连接池参数回退到开发默认值
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 10
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 100
	}
	maxLifetime := cfg.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 3600
	}
	maxIdleTime := cfg.ConnMaxIdleTime
	if maxIdleTime == 0 {
		maxIdleTime = 600
	}

	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(maxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(maxIdleTime) * time.Second)

	return db, nil
}

// ConnectWithRetry 带指数退避重试的数据库连接
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}

		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2
		}
	}

	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// Migrate 执行数据库迁移
func Migrate(db *gorm.DB) error {
	dialector := db.Dialector.Name()

	// SQLite 不支持 jsonb,手动建表
	if dialector == "sqlite" || dialector == "sqlite3" {
		if err := createSQLiteTables(db); err != nil {
			return fmt.Errorf("failed to create SQLite tables: %w", err)
		}
	} else {
		if err := db.AutoMigrate(
			&model.ContractModel{},
			&model.ReviewModel{},
			&model.ReviewerModel{},
			&model.AuditEntryModel{},
			&model.CommentModel{},
			&model.DocumentModel{},
			&model.UserModel{},
		); err != nil {
			return fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	if err := CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createSQLiteTables 为 SQLite 手动创建表（使用 TEXT 替代 jsonb）
func createSQLiteTables(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS contracts (
			id VARCHAR(64) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			submitter_id VARCHAR(64) NOT NULL,
			contract_type VARCHAR(16) NOT NULL,
			entity VARCHAR(64) NOT NULL,
			department VARCHAR(64),
			scope TEXT,
			background TEXT,
			amount REAL NOT NULL,
			original_amount REAL NOT NULL,
			original_currency VARCHAR(8) NOT NULL,
			exchange_rate REAL NOT NULL,
			start_date DATETIME NOT NULL,
			end_date DATETIME NOT NULL,
			is_standard_terms BOOLEAN NOT NULL,
			liability_cap_percent REAL NOT NULL,
			is_subcontracting BOOLEAN NOT NULL,
			subcontracting_percent REAL NOT NULL,
			triggers TEXT,
			is_high_risk BOOLEAN NOT NULL,
			status VARCHAR(32) NOT NULL,
			legal_approved BOOLEAN NOT NULL,
			has_unread_comments BOOLEAN NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create contracts table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS reviews (
			id VARCHAR(64) PRIMARY KEY,
			contract_id VARCHAR(64) NOT NULL,
			reviewer_id VARCHAR(64) NOT NULL,
			reviewer_name VARCHAR(128) NOT NULL,
			role VARCHAR(32) NOT NULL,
			decision VARCHAR(32) NOT NULL,
			comment TEXT NOT NULL,
			is_ad_hoc BOOLEAN NOT NULL,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create reviews table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ad_hoc_reviewers (
			id VARCHAR(64) PRIMARY KEY,
			contract_id VARCHAR(64) NOT NULL,
			user_id VARCHAR(64) NOT NULL,
			user_name VARCHAR(128) NOT NULL,
			role VARCHAR(32),
			added_by VARCHAR(64) NOT NULL,
			added_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create ad_hoc_reviewers table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_entries (
			id VARCHAR(64) PRIMARY KEY,
			contract_id VARCHAR(64) NOT NULL,
			user_id VARCHAR(64) NOT NULL,
			user_name VARCHAR(128) NOT NULL,
			action VARCHAR(64) NOT NULL,
			details TEXT,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create audit_entries table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			id VARCHAR(64) PRIMARY KEY,
			contract_id VARCHAR(64) NOT NULL,
			user_id VARCHAR(64) NOT NULL,
			user_name VARCHAR(128) NOT NULL,
			role VARCHAR(32),
			text TEXT NOT NULL,
			likes TEXT,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create comments table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			id VARCHAR(64) PRIMARY KEY,
			contract_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			size INTEGER NOT NULL,
			uploaded_by VARCHAR(64) NOT NULL,
			uploaded_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(128) NOT NULL,
			role VARCHAR(32) NOT NULL,
			email VARCHAR(255)
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	return nil
}

// CreateIndexes 创建数据库索引
func CreateIndexes(db *gorm.DB) error {
	dialector := db.Dialector.Name()

	indexes := []struct {
		name string
		stmt string
	}{
		{"idx_contracts_status", "CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts(status)"},
		{"idx_contracts_submitter", "CREATE INDEX IF NOT EXISTS idx_contracts_submitter ON contracts(submitter_id)"},
		{"idx_contracts_entity", "CREATE INDEX IF NOT EXISTS idx_contracts_entity ON contracts(entity)"},
		{"idx_contracts_high_risk", "CREATE INDEX IF NOT EXISTS idx_contracts_high_risk ON contracts(is_high_risk)"},
		{"idx_contracts_updated_at", "CREATE INDEX IF NOT EXISTS idx_contracts_updated_at ON contracts(updated_at)"},
		{"idx_reviews_contract", "CREATE INDEX IF NOT EXISTS idx_reviews_contract ON reviews(contract_id)"},
		{"idx_reviews_reviewer", "CREATE INDEX IF NOT EXISTS idx_reviews_reviewer ON reviews(reviewer_id)"},
		{"idx_reviewers_contract_user", "CREATE UNIQUE INDEX IF NOT EXISTS idx_reviewers_contract_user ON ad_hoc_reviewers(contract_id, user_id)"},
		{"idx_audit_contract", "CREATE INDEX IF NOT EXISTS idx_audit_contract ON audit_entries(contract_id)"},
		{"idx_audit_action", "CREATE INDEX IF NOT EXISTS idx_audit_action ON audit_entries(action)"},
		{"idx_audit_created_at", "CREATE INDEX IF NOT EXISTS idx_audit_created_at ON audit_entries(created_at)"},
		{"idx_comments_contract", "CREATE INDEX IF NOT EXISTS idx_comments_contract ON comments(contract_id)"},
		{"idx_documents_contract", "CREATE INDEX IF NOT EXISTS idx_documents_contract ON documents(contract_id)"},
		{"idx_users_role", "CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)"},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.stmt).Error; err != nil {
			return fmt.Errorf("failed to create %s: %w", idx.name, err)
		}
	}

	// PostgreSQL 特定的 GIN 索引
	if dialector == "postgres" {
		if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_contracts_triggers_gin ON contracts USING GIN (triggers)").Error; err != nil {
			return fmt.Errorf("failed to create idx_contracts_triggers_gin: %w", err)
		}
	}

	return nil
}

// CheckHealth 检查数据库连接健康状态
func CheckHealth(db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx) == nil
}
