// Package shared holds domain-wide sentinels.
package shared

import "errors"

// ErrCorruptStore is wrapped by stores whose backing data cannot be parsed.
// The data is left untouched so an operator can repair it.
var ErrCorruptStore = errors.New("store is corrupt")
