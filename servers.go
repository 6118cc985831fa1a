package spamc

import (
	"github.com/zeebo/xxh3"

	"github.com/davrux/spamc/internal"
)

// SelectServerFunc picks which server handles a message. It receives the
// routing key (the user name the request is made for) and the number of
// configured servers, and returns an index into the server list.
type SelectServerFunc func(key string, serverCount int) int

// DefaultSelectServer routes by user with a jump consistent hash, so that
// checking and teaching for one user always reach the same per-user Bayes
// database. An empty key lands on server 0.
func DefaultSelectServer(key string, serverCount int) int {
	if key == "" {
		return 0
	}
	return internal.JumpHash(xxh3.HashString(key), serverCount)
}

// staticSelector is used in tests to pin all traffic to one server.
func staticSelector(index int) SelectServerFunc {
	return func(key string, serverCount int) int {
		return index % serverCount
	}
}
