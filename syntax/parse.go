package syntax

import (
	"reflect"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func Parse[T any](path string, source string, f ParseFunc[T]) (T, *Error) {
	var result T

	parser, err := NewParser(path, source)
	if err == nil {
		result, err = f(parser)
	}
	if err == nil {
		err = parser.Finish()
	}

	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

// ParseProgram parses and lowers a whole `.fml` file.
func ParseProgram(path string, source string) (*Program, *Error) {
	file, err := Parse(path, source, ParseFile)
	if err != nil {
		return nil, err
	}

	return Lower(file)
}

func TestParse[T any](t *testing.T, f ParseFunc[T], source string) {
	result, err := Parse("test", source, f)
	if err != nil {
		panic(err)
	}

	var removeSpans func(value reflect.Value)
	removeSpans = func(value reflect.Value) {
		switch value.Kind() {
		case reflect.Pointer, reflect.Interface:
			if !value.IsNil() {
				removeSpans(value.Elem())
			}
		case reflect.Slice:
			for i := 0; i < value.Len(); i++ {
				removeSpans(value.Index(i))
			}
		case reflect.Struct:
			for i := 0; i < value.NumField(); i++ {
				field := value.Field(i)

				if field.Type() == reflect.TypeFor[Span]() {
					if field.CanSet() {
						field.Set(reflect.Zero(field.Type()))
					}
				} else {
					removeSpans(field)
				}
			}
		}
	}

	removeSpans(reflect.ValueOf(&result))

	snaps.MatchSnapshot(t, result)
}
