package utils

import "reflect"

// CoalesceZero returns the first value that is not the zero value of its
// type, or the zero value of R when there is none.
func CoalesceZero[R any](values ...any) R {
	for _, value := range values {
		if value != nil && reflect.Zero(reflect.TypeOf(value)).Interface() != value {
			return value.(R)
		}
	}
	var zero R
	return zero
}
