package database

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"

	"github.com/go-sql-driver/mysql"
)

// erServerShutdown is the MySQL server error raised on in-flight
// statements when the server is shutting down.
const erServerShutdown = 1053

// QueryError wraps a driver failure from a statement execution.
// Unwrap exposes the underlying driver error for errors.Is/As.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query error (%s): %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// IsConnectionLost reports whether err means the live connection handle
// is no longer usable and a reconnect is worth attempting. Anything
// else (syntax errors, constraint violations, unknown failures) is not
// a reconnect trigger.
func IsConnectionLost(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EPIPE) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == erServerShutdown
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
