package config

import (
	"fmt"
	"reflect"

	"github.com/goflash/assetly/query"
	"github.com/mitchellh/mapstructure"
)

var (
	queryType    = reflect.TypeOf(query.Query{})
	queryPtrType = reflect.TypeOf(&query.Query{})
)

// QueryDecodeHookFunc decodes querystrings ("v=1&x=2") and maps into
// *query.Query using viper.
//
// Example:
//
//	var q *query.Query
//	_ = viper.UnmarshalKey("assets.query", &q, viper.DecodeHook(QueryDecodeHookFunc()))
func QueryDecodeHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != queryType && t != queryPtrType {
			return data, nil
		}
		switch d := data.(type) {
		case *query.Query, query.Query:
			return data, nil
		case string:
			if q := query.Parse(d); q != nil {
				return q, nil
			}
			return nil, nil
		}
		if q := query.From(data); q != nil {
			return q, nil
		}
		return nil, fmt.Errorf("unsupported query value of type %s", f)
	}
}
