package scandb

import "errors"

var ErrScanNotFound = errors.New("scan not found")
