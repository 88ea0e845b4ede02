package cmd

import (
	"reflect"
	"testing"
)

func reflectField(name, tag string) reflect.StructField {
	return reflect.StructField{Name: name, Tag: reflect.StructTag(tag), Type: reflect.TypeOf("")}
}

func TestBuildMapSkipsUnsetPointers(t *testing.T) {
	type sample struct {
		Plain   string `default:"x"`
		Opt     *int
		Skipped string `kong:"-"`
		Sub     struct {
			Inner bool `default:"true"`
		} `embed:"" prefix:"sub."`
	}
	got := buildMapFromStruct(reflect.TypeOf(sample{}))
	want := map[string]any{"plain": "x", "sub": map[string]any{"inner": true}}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
