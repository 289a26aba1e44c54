// Package database provides the SQLite project store for DX-Ascend Core.
//
// This package manages:
//   - Database connection with WAL mode for concurrent readers
//   - Schema migrations loaded from an fs.FS (embedded in production)
//   - A single-connection pool matching SQLite's single-writer model
//   - Transaction scoping through WithTx
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{
//	    Path:        cfg.Database.Path,
//	    WALMode:     cfg.Database.WALMode,
//	    BusyTimeout: cfg.Database.BusyTimeout,
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migration files are named YYYYMMDD_HHMMSS_description.up.sql with a
// matching .down.sql. New columns must be nullable or carry a default.
package database
