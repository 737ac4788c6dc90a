// Package store provides the MongoDB persistence layer for students and
// parents: client lifecycle, collection repositories, and the unique
// compound indexes backing registration de-duplication.
package store
