package store

import "reflect"

func isEmpty(rows any) bool {
	if rows == nil {
		return true
	}
	v := reflect.ValueOf(rows)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return true
		}
		v = v.Elem()
	}
	return (v.Kind() == reflect.Slice || v.Kind() == reflect.Array) && v.Len() == 0
}
