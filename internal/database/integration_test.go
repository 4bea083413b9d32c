package database

import (
	"context"
	"os"
	"sync"
	"testing"
)

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	// Skip if not in integration test mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// Test with SQLite for integration testing
	dbPath := "test_integration.db"
	defer os.Remove(dbPath)

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Test connection
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	// Test that tables were created by migrations
	tables := []string{"users", "vocabulary", "japanese_meanings", "study_sessions", "daily_stats", "password_reset_tokens"}

	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		err := db.QueryRowContext(ctx, query, table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_transactions.db"
	defer os.Remove(dbPath)

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	// Test successful transaction
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	// Insert test data
	_, err = tx.ExecContext(ctx, "INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)",
		"test@example.com", "hashedpass", "Test User")
	if err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}

	// Commit
	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	// Verify data was inserted
	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", "test@example.com").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 user, got %d", count)
	}

	// Test rollback
	tx2, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}

	_, err = tx2.ExecContext(ctx, "INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)",
		"test2@example.com", "hashedpass", "Second User")
	if err != nil {
		tx2.Rollback()
		t.Fatalf("Failed to insert in second transaction: %v", err)
	}

	// Rollback
	if err := tx2.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	// Verify data was not inserted
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", "test2@example.com").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 users after rollback, got %d", count)
	}
}

// TestConcurrentDailyStatsUpsert verifies the counter upsert never loses
// increments under concurrent writers to the same (user_id, study_date) row.
func TestConcurrentDailyStatsUpsert(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_concurrent.db"
	defer os.Remove(dbPath)

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	_, err = db.ExecContext(ctx, "INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)",
		"concurrent@example.com", "hashedpass", "Concurrent User")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	query := db.Dialect.UpsertDailyStatsQuery()

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := db.Exec(query, 1, "2026-08-30", 1, 1, 2); err != nil {
				t.Errorf("Concurrent upsert failed: %v", err)
			}
		}()
	}
	wg.Wait()

	var words, correct, seconds int
	err = db.QueryRowContext(ctx,
		"SELECT words_studied, correct_answers, total_study_time FROM daily_stats WHERE user_id = ? AND study_date = ?",
		1, "2026-08-30").Scan(&words, &correct, &seconds)
	if err != nil {
		t.Fatalf("Failed to read counter row: %v", err)
	}
	if words != writers || correct != writers || seconds != 2*writers {
		t.Errorf("Counter row = (%d, %d, %d), want (%d, %d, %d)",
			words, correct, seconds, writers, writers, 2*writers)
	}

	var rows int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM daily_stats WHERE user_id = ?", 1).Scan(&rows)
	if err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("Expected a single counter row, got %d", rows)
	}
}
