package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/ads-api/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tablePrefix tags not-found errors with the table they came from:
//
//	fmt.Errorf("table:users: %w", pgx.ErrNoRows)
const tablePrefix = "table:"

// ErrCode reports the mapped Code for err.
//
// Both normalized *Error values and raw *pgconn.PgError values anywhere in
// the chain are recognized; everything else is Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}

	return Other
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return ErrCode(err) == UniqueViolation
}

// IsNotFound reports whether err wraps a no-rows result.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// NotFoundIn tags a no-rows error with the table it came from.
func NotFoundIn(table string) error {
	return fmt.Errorf("%s%s: %w", tablePrefix, table, pgx.ErrNoRows)
}

// ConvertPgError converts a pgconn.PgError into our Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates "<DOMAIN>_<ACTION>" codes such as USER_ALREADY_EXISTS.
// These codes are for logs and machines, not humans.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// Naive singularization: "USERS" -> "USER".
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// ConflictCode returns the machine code for a duplicate row in table.
func ConflictCode(table string) string {
	return generateErrorCode(table, UniqueViolation)
}

// getEntityName infers a display name from table/column data.
//
// Priority rules:
//  1. If column ends with "_id", use that base name.
//  2. Otherwise use table name, singularized if it ends with "s".
//  3. Otherwise fallback to "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "Record"
}

// humanizeText converts snake_case into Title Case: "first_name" -> "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// tableFromMessage extracts the table tagged by NotFoundIn.
func tableFromMessage(msg string) string {
	idx := strings.Index(msg, tablePrefix)
	if idx < 0 {
		return ""
	}
	rest := msg[idx+len(tablePrefix):]
	if end := strings.Index(rest, ":"); end >= 0 {
		return rest[:end]
	}
	return rest
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - unique violation: 400 "<Entity> already exists", detail suppressed
//   - no rows: 404 "<Entity> does not exist"
//   - anything else, foreign key violations included: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		if sqlErr.Code == UniqueViolation {
			code := generateErrorCode(sqlErr.TableName, sqlErr.Code)
			message := fmt.Sprintf("%s already exists", getEntityName(sqlErr.TableName, ""))
			return errs.NewBadRequestError(message, true, &code, nil)
		}

		return errs.NewInternalServerError()
	}

	if IsNotFound(err) {
		if table := tableFromMessage(err.Error()); table != "" {
			return errs.NewNotFoundError(fmt.Sprintf("%s does not exist", getEntityName(table, "")), true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
