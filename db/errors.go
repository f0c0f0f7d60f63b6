package db

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-sql-driver/mysql"
)

const (
	mysqlErrDupEntry        = 1062
	mysqlErrNoReferencedRow = 1452
)

var (
	ErrDuplicate = errors.New("duplicate key")
	// ErrUnknownReference is returned when a row points at a user, group or
	// post that does not exist
	ErrUnknownReference = errors.New("unknown reference")
)

var dupKeyRegex = regexp.MustCompile(`for key '(.+)'`)

func IsDupKeyErr(err *mysql.MySQLError) bool {
	return err.Number == mysqlErrDupEntry
}

func GetDupKey(err *mysql.MySQLError) string {
	match := dupKeyRegex.FindStringSubmatch(err.Message)
	if match == nil {
		return ""
	}
	return match[1]
}

// NormalizeErr maps driver errors the application cares about to package errors
func NormalizeErr(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return err
	}
	switch {
	case IsDupKeyErr(mysqlErr):
		return fmt.Errorf("%w: %v", ErrDuplicate, GetDupKey(mysqlErr))
	case mysqlErr.Number == mysqlErrNoReferencedRow:
		return fmt.Errorf("%w: %v", ErrUnknownReference, mysqlErr.Message)
	}
	return err
}
