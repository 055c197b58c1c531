package fit90

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/app"
	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/auth"
	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/db"
	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/logger"
)

var (
	logOnce sync.Once
	logSug  *zap.SugaredLogger
)

func log() *zap.SugaredLogger {
	logOnce.Do(func() {
		l, err := logger.New(verbose)
		if err != nil {
			logSug = logger.Nop()
			return
		}
		logSug = l
	})
	return logSug
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if env := strings.TrimSpace(os.Getenv("FIT90_DB")); env != "" {
		return env, nil
	}
	return app.DefaultDBPath()
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	log().Debugf("opening database at %s", path)
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func authManager(sqldb *sql.DB) (*auth.Manager, error) {
	path, err := resolveDBPath()
	if err != nil {
		return nil, err
	}
	return auth.NewManager(sqldb, auth.NewSessionStore(app.SessionPathFor(path))), nil
}

// withSession opens the database and refuses to run unless a live
// session exists. Everything except init, setup, login, pin and profile
// goes through here.
func withSession(run func(*sql.DB) error) error {
	return withDB(func(sqldb *sql.DB) error {
		mgr, err := authManager(sqldb)
		if err != nil {
			return err
		}
		st, err := mgr.Status()
		if err != nil {
			return err
		}
		if !st.SetupComplete {
			return fmt.Errorf("setup has not been run yet (fit90 setup)")
		}
		if !st.Authenticated {
			return fmt.Errorf("not logged in (fit90 login)")
		}
		return run(sqldb)
	})
}

func parseIntArg(name, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return v, nil
}

func parseDateOrToday(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.ParseInLocation("2006-01-02", value, time.Local); err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", value)
	}
	return value, nil
}
