package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/bookmarks/internal/errs"
)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a raw PostgreSQL error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	sqlErr := &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
	sqlErr.Message = formatUserFriendlyMessage(sqlErr)

	return sqlErr
}

// sqliteColumnRe extracts "table.column" from messages like
// "NOT NULL constraint failed: bookmarks_list.title".
var sqliteColumnRe = regexp.MustCompile(`constraint failed: ([A-Za-z0-9_]+)\.([A-Za-z0-9_]+)`)

// ConvertSQLiteError converts a go-sqlite3 error into an *Error.
func ConvertSQLiteError(src sqlite3.Error) *Error {
	code := Other
	switch src.ExtendedCode {
	case sqlite3.ErrConstraintNotNull:
		code = NotNullViolation
	case sqlite3.ErrConstraintForeignKey:
		code = ForeignKeyViolation
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		code = UniqueViolation
	case sqlite3.ErrConstraintCheck:
		code = CheckViolation
	}
	if code == Other && src.Code == sqlite3.ErrCantOpen {
		code = ConnectionFailure
	}

	sqlErr := &Error{
		Code:         code,
		Severity:     SeverityError,
		DatabaseCode: fmt.Sprintf("SQLITE_%d", int(src.ExtendedCode)),
		driverErr:    src,
	}
	if matches := sqliteColumnRe.FindStringSubmatch(src.Error()); len(matches) == 3 {
		sqlErr.TableName = matches[1]
		sqlErr.ColumnName = matches[2]
	}
	sqlErr.Message = formatUserFriendlyMessage(sqlErr)

	return sqlErr
}

// formatUserFriendlyMessage produces a readable description of the failure
// using the table/column information the driver reported.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		message := fmt.Sprintf("A %s with this identifier already exists", entityName)
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			message = strings.ReplaceAll(message, "identifier", humanizeText(column))
		}
		return message

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		if fieldName := humanizeText(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case InvalidInput:
		return "One or more values have an invalid format"

	case ConnectionFailure:
		return "The database is unreachable"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name: a "<name>_id" column wins, then the
// table name (with "bookmarks_list" style suffixes and plurals trimmed),
// then "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}

	if tableName != "" {
		entity := strings.TrimSuffix(tableName, "_list")
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return strings.ToLower(humanizeText(entity))
	}

	return "record"
}

// humanizeText converts snake_case into Title Case: "first_name" -> "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeyRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column from a constraint name
// following either "unique_<table>_<column>" or "<table>_<column>_key".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyRe.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError classifies a gateway error.
//
//   - *errs.HTTPError is returned unchanged
//   - PostgreSQL and SQLite driver errors become *Error (served as 500)
//   - ErrNoRows becomes a 404 HTTPError
//   - anything else is returned as-is and treated as an unknown 500
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return ConvertSQLiteError(sqliteErr)
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", nil)
	}

	return err
}
