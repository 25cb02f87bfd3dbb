package importer

import "errors"

var ErrMissingHeader = errors.New("the file does not start with the expected CSV header")
