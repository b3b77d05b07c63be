// Package sema builds the scope tree of a program and checks it.
//
// Checking is a two-phase protocol. Session.Scan walks the lines top-down,
// creating global, method and condition scopes and validating every
// statement it can decide on the spot. Anything that may name a global
// symbol declared further down the file is queued instead. Replay then
// resolves the queues against the finished global scope in a fixed order
// (assignments, declarations, conditions) and finally validates every
// recorded method call.
//
// The first failure stops the run and is returned as *diag.Error.
package sema
