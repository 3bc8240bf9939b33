package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	testCases := []struct {
		in   string
		want []string
	}{
		{"Nope", []string{"nope"}},
		{"nope", []string{"nope"}},
		{"Foo Bar", []string{"foo", "bar"}},
		{"Foo  Bar ", []string{"foo", "bar"}},
		{"foo_bar-baz", []string{"foo", "bar", "baz"}},
		{"foo.bar", []string{"foo", "bar"}},
		{"fooBar", []string{"foo", "bar"}},
		{"HTTPServer", []string{"http", "server"}},
		{"panic2", []string{"panic", "2"}},
		{"Ärger", []string{"ärger"}},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Words(tc.in))
		})
	}
}

func TestWords_Blank(t *testing.T) {
	assert.Empty(t, Words(""))
	assert.Empty(t, Words("  "))
	assert.Empty(t, Words("__"))
}

func TestCaseForms(t *testing.T) {
	testCases := []struct {
		in         string
		snake      string
		upperSnake string
		upperCamel string
	}{
		{"Nope", "nope", "NOPE", "Nope"},
		{"Panic", "panic", "PANIC", "Panic"},
		{"read memory", "read_memory", "READ_MEMORY", "ReadMemory"},
		{"readMemory", "read_memory", "READ_MEMORY", "ReadMemory"},
		{"READ_MEMORY", "read_memory", "READ_MEMORY", "ReadMemory"},
		{"HTTPServer", "http_server", "HTTP_SERVER", "HttpServer"},
		{"Hello World", "hello_world", "HELLO_WORLD", "HelloWorld"},
		{"panic2", "panic_2", "PANIC_2", "Panic2"},
		{"Table", "table", "TABLE", "Table"},
		{"Ärger", "ärger", "ÄRGER", "Ärger"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.snake, Snake(tc.in))
			assert.Equal(t, tc.upperSnake, UpperSnake(tc.in))
			assert.Equal(t, tc.upperCamel, UpperCamel(tc.in))
		})
	}
}

// Storage keys are persisted, so the spelling variants of one logical name
// must keep mapping to the same key.
func TestSnake_SameLogicalNameSameKey(t *testing.T) {
	testCases := []struct {
		key   string
		names []string
	}{
		{"alpha", []string{"alpha", "Alpha", "ALPHA"}},
		{"foo_bar", []string{"Foo Bar", "foo_bar", "fooBar", "FooBar", "foo-bar", "FOO_BAR"}},
		{"read_memory_2", []string{"read memory 2", "ReadMemory2", "read_memory_2"}},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			for _, name := range tc.names {
				assert.Equal(t, tc.key, Snake(name), "name %q", name)
			}
		})
	}
}

func TestIsExportedIdentifier(t *testing.T) {
	assert.True(t, IsExportedIdentifier("Nope"))
	assert.True(t, IsExportedIdentifier("NOPE"))
	assert.False(t, IsExportedIdentifier("nope"))
	assert.False(t, IsExportedIdentifier("1St"))
	assert.False(t, IsExportedIdentifier(""))
}
