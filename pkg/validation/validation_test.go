package validation_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/longevity/pkg/validation"
)

type profile struct {
	Age       *int   `json:"age" validate:"omitempty,gte=0,lte=130"`
	Sex       string `json:"sex" validate:"omitempty,oneof=male female other"`
	Adherence int    `json:"adherence" validate:"gte=0,lte=100"`
}

func ptr[T any](v T) *T { return &v }

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		input      profile
		wantFields []string
	}{
		{"valid", profile{Age: ptr(45), Sex: "female", Adherence: 80}, nil},
		{"empty optional", profile{}, nil},
		{"age out of range", profile{Age: ptr(200)}, []string{"age"}},
		{"multiple", profile{Sex: "x", Adherence: 101}, []string{"sex", "adherence"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct(tt.input)
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *validation.Error", err)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Fatalf("fields = %v, want %v", verr.Fields, tt.wantFields)
			}
			for i, f := range tt.wantFields {
				if verr.Fields[i].Field != f {
					t.Errorf("field[%d] = %s, want %s", i, verr.Fields[i].Field, f)
				}
			}
			if !validation.IsValidationError(err) {
				t.Error("IsValidationError should be true")
			}
		})
	}
}
