// Package roster is the credential store: a flat file of username:password
// lines, one per account, with no header and no escaping.
//
// Every operation re-reads the file. Removal rewrites it atomically; adding
// appends a single line.
package roster
