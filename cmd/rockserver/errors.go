package main

import "errors"

var (
	errIllegalMove     = errors.New("rockserver: illegal move")
	errSessionNotFound = errors.New("rockserver: unknown session")
)
