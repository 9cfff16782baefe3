package wallet

import (
	"context"
	"database/sql"
	"fmt"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/util/log"
	"learnhub/biz/infrastructure/util/page"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cast"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS wallet_transactions (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id VARCHAR(32) NOT NULL,
	purchase_id VARCHAR(32) NOT NULL,
	course_id VARCHAR(32) NOT NULL,
	amount DECIMAL(12, 2) NOT NULL,
	currency VARCHAR(8) NOT NULL,
	create_time DATETIME NOT NULL,
	UNIQUE KEY uniq_purchase (purchase_id),
	KEY idx_user (user_id, create_time)
)`

type MySQLMapper struct {
	db *sql.DB
}

// NewMySQLMapper dsn 需带 parseTime=true
func NewMySQLMapper(dsn string) (*MySQLMapper, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create wallet table: %w", err)
	}

	log.Info("MySQL connection established successfully")
	return &MySQLMapper{db: db}, nil
}

// NewMySQLMapperFromConfig 创建 MySQL 映射器
func NewMySQLMapperFromConfig(config *config.Config) (*MySQLMapper, error) {
	return NewMySQLMapper(config.MySQL.DSN)
}

func (m *MySQLMapper) Close() error {
	return m.db.Close()
}

func (m *MySQLMapper) Insert(ctx context.Context, t *Transaction) (bool, error) {
	if t.CreateTime.IsZero() {
		t.CreateTime = time.Now()
	}
	res, err := m.db.ExecContext(ctx,
		"INSERT IGNORE INTO wallet_transactions (user_id, purchase_id, course_id, amount, currency, create_time) VALUES (?, ?, ?, ?, ?, ?)",
		t.UserID, t.PurchaseID, t.CourseID, t.Amount, t.Currency, t.CreateTime)
	if err != nil {
		log.Error("Failed to insert wallet transaction: %v", err)
		return false, fmt.Errorf("failed to insert wallet transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return true, err
	}
	return true, nil
}

// ListByUser 按时间倒序分页
func (m *MySQLMapper) ListByUser(ctx context.Context, userID string, pageNum, pageSize int64) ([]*Transaction, int64, error) {
	var total int64
	err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM wallet_transactions WHERE user_id = ?", userID).Scan(&total)
	if err != nil {
		log.Error("Failed to count wallet transactions: %v", err)
		return nil, 0, fmt.Errorf("failed to count wallet transactions: %w", err)
	}

	offset := page.Skip(pageNum, pageSize)
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, user_id, purchase_id, course_id, amount, currency, create_time
		FROM wallet_transactions WHERE user_id = ?
		ORDER BY create_time DESC, id DESC
		LIMIT ? OFFSET ?
	`, userID, pageSize, offset)
	if err != nil {
		log.Error("Failed to query wallet transactions: %v", err)
		return nil, 0, fmt.Errorf("failed to query wallet transactions: %w", err)
	}
	defer rows.Close()

	var txs []*Transaction
	for rows.Next() {
		var (
			t      Transaction
			amount []byte
		)
		err := rows.Scan(&t.ID, &t.UserID, &t.PurchaseID, &t.CourseID, &amount, &t.Currency, &t.CreateTime)
		if err != nil {
			log.Error("Failed to scan wallet row: %v", err)
			continue
		}
		// DECIMAL 以文本返回
		if t.Amount, err = cast.ToFloat64E(string(amount)); err != nil {
			log.Error("Failed to parse wallet amount %q: %v", amount, err)
			continue
		}
		txs = append(txs, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}
	return txs, total, nil
}
