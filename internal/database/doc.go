// Package database opens PostgreSQL connection pools for the catalog store.
package database
