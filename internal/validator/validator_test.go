package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestCustomTags(t *testing.T) {
	v := validator.New()
	RegisterOn(v)

	cases := []struct {
		tag   string
		value string
		ok    bool
	}{
		{"hex_color", "#fff", true},
		{"hex_color", "#A0B1C2", true},
		{"hex_color", "red", false},
		{"hex_color", "#12345", false},
		{"movement_type", "in", true},
		{"movement_type", "out", true},
		{"movement_type", "transfer", false},
		{"not_blank", "Tea", true},
		{"not_blank", "   ", false},
	}

	for _, tc := range cases {
		t.Run(tc.tag+"/"+tc.value, func(t *testing.T) {
			err := v.Var(tc.value, tc.tag)
			if tc.ok && err != nil {
				t.Errorf("expected %q to pass %s: %v", tc.value, tc.tag, err)
			}
			if !tc.ok && err == nil {
				t.Errorf("expected %q to fail %s", tc.value, tc.tag)
			}
		})
	}
}
