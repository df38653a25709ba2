package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		envVars map[string]string
		want    string
	}{
		{
			name:    "simple variable substitution",
			input:   "root: ${ICON_ROOT}",
			envVars: map[string]string{"ICON_ROOT": "assets/icons"},
			want:    "root: assets/icons",
		},
		{
			name:    "default value with env set",
			input:   "prefix: ${ICON_PREFIX:-i-}",
			envVars: map[string]string{"ICON_PREFIX": "icon-"},
			want:    "prefix: icon-",
		},
		{
			name:  "default value with env not set",
			input: "prefix: ${ICON_PREFIX:-i-}",
			want:  "prefix: i-",
		},
		{
			name:    "default value with env empty",
			input:   "prefix: ${ICON_PREFIX:-i-}",
			envVars: map[string]string{"ICON_PREFIX": ""},
			want:    "prefix: i-",
		},
		{
			name:  "no default and env not set",
			input: "root: ${ICON_ROOT}",
			want:  "root: ",
		},
		{
			name:    "multiple variables",
			input:   "addr: ${REDIS_HOST:-localhost}:${REDIS_PORT}",
			envVars: map[string]string{"REDIS_PORT": "6380"},
			want:    "addr: localhost:6380",
		},
		{
			name:  "empty default",
			input: "password: ${REDIS_PASSWORD:-}",
			want:  "password: ",
		},
		{
			name:  "plain dollar left alone",
			input: "price: $5 and $HOME",
			want:  "price: $5 and $HOME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"ICON_ROOT", "ICON_PREFIX", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, ExpandEnv(tt.input))
			assert.Equal(t, tt.want, string(ExpandEnvBytes([]byte(tt.input))))
		})
	}
}

func TestMissingEnvVars(t *testing.T) {
	t.Setenv("SET_VAR", "x")
	t.Setenv("EMPTY_VAR", "")

	input := "${SET_VAR} ${EMPTY_VAR} ${UNSET_VAR_FOR_TEST} ${WITH_DEFAULT:-a} ${UNSET_VAR_FOR_TEST}"
	assert.Equal(t, []string{"EMPTY_VAR", "UNSET_VAR_FOR_TEST"}, MissingEnvVars(input))
	assert.Empty(t, MissingEnvVars("no references"))
}
