// Package sqlerr specifically handles database driver errors.
//
// It parses driver error codes (PostgreSQL SQLSTATE via pgconn, SQLite
// result codes via go-sqlite3) into one classified Error so the rest of the
// application can treat every gateway failure the same way.
package sqlerr

import (
	"fmt"

	"github.com/jackc/pgerrcode"
)

// Code is a driver-independent classification of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ExclusionViolation  Code = "exclusion_violation"
	InvalidInput        Code = "invalid_input"
	UndefinedObject     Code = "undefined_object"
	ConnectionFailure   Code = "connection_failure"
)

// Severity mirrors the PostgreSQL severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a classified persistence failure. It serializes into the
// detailed 500 body outside production.
type Error struct {
	Code           Code     `json:"code"`
	Severity       Severity `json:"severity"`
	DatabaseCode   string   `json:"database_code"`
	Message        string   `json:"message"`
	SchemaName     string   `json:"schema_name,omitempty"`
	TableName      string   `json:"table_name,omitempty"`
	ColumnName     string   `json:"column_name,omitempty"`
	DataTypeName   string   `json:"data_type_name,omitempty"`
	ConstraintName string   `json:"constraint_name,omitempty"`

	driverErr error
}

func (e *Error) Error() string {
	if e.driverErr != nil {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.DatabaseCode, e.driverErr.Error())
	}
	return fmt.Sprintf("%s (%s): %s", e.Code, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a PostgreSQL SQLSTATE onto a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case pgerrcode.NotNullViolation:
		return NotNullViolation
	case pgerrcode.ForeignKeyViolation:
		return ForeignKeyViolation
	case pgerrcode.UniqueViolation:
		return UniqueViolation
	case pgerrcode.CheckViolation:
		return CheckViolation
	case pgerrcode.ExclusionViolation:
		return ExclusionViolation
	case pgerrcode.InvalidTextRepresentation, pgerrcode.NumericValueOutOfRange, pgerrcode.StringDataRightTruncationDataException:
		return InvalidInput
	case pgerrcode.UndefinedTable, pgerrcode.UndefinedColumn:
		return UndefinedObject
	}

	if pgerrcode.IsConnectionException(sqlState) {
		return ConnectionFailure
	}

	return Other
}

// MapSeverity maps the PostgreSQL severity string onto a Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
