package models

import (
	"testing"
)

func TestDocumentInput_Validate(t *testing.T) {
	tests := []struct {
		name         string
		input        *DocumentInput
		wantErr      bool
		wantCitation string
	}{
		{"empty content", &DocumentInput{Citation: "notes.md", Content: ""}, true, ""},
		{"whitespace content", &DocumentInput{Citation: "notes.md", Content: "  \n\t "}, true, ""},
		{"valid input", &DocumentInput{Citation: "notes.md", Content: "hello"}, false, "notes.md"},
		{"defaults empty citation", &DocumentInput{Citation: "", Content: "hello"}, false, "untitled"},
		{"trims citation", &DocumentInput{Citation: "  notes.md  ", Content: "hello"}, false, "notes.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.input.Citation != tt.wantCitation {
				t.Errorf("Validate() citation = %q, want %q", tt.input.Citation, tt.wantCitation)
			}
		})
	}
}
