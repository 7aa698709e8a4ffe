// Package jsonschema implements a JSON Schema validator for Go covering
// draft-04 through draft-2019-09, built around a Scope that compiles and
// owns schemas by canonical URI and a KeywordRegistry that extensions can
// register against before compiling.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for format validators.
package jsonschema
