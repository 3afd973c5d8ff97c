package mysql

import (
	"database/sql"
	"fmt"
	"os"
	"testing"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	// Подключаемся к тестовой БД, если она указана.
	// Без TEST_DB_DSN интеграционные тесты пропускаются.
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn != "" {
		var err error
		testDB, err = sql.Open("mysql", dsn)
		if err != nil {
			panic(fmt.Errorf("не удалось подключиться к тестовой БД: %w", err))
		}
		defer testDB.Close()

		if err := testDB.Ping(); err != nil {
			panic(fmt.Errorf("ping failed: %w", err))
		}
	}

	code := m.Run()

	os.Exit(code)
}

func requireTestDB(t *testing.T) *Storage {
	t.Helper()
	if testDB == nil {
		t.Skip("TEST_DB_DSN не задан, пропускаем интеграционный тест")
	}
	return &Storage{db: testDB}
}
