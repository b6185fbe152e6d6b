package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder is the shared statement builder configured for PostgreSQL
// ($1, $2, ... placeholders instead of the default ?)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select starts a SELECT statement with dollar placeholders
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert starts an INSERT statement with dollar placeholders
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update starts an UPDATE statement with dollar placeholders
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete starts a DELETE statement with dollar placeholders
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}
