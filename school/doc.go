// Package school implements the authentication and registration flows for
// the two principal kinds, students and parents: login with token issuance,
// and duplicate-checked registration with password hashing.
package school
