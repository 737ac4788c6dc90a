// Package validation validates request structs at the HTTP boundary using
// struct tags, reporting failures field-by-field under the json field names.
package validation
