package server

import "errors"

var errNoServersAreCreated = errors.New("server: no transport to run")
