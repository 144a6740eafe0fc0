package parser

import (
	"reflect"
	"testing"

	"github.com/polwatch/nec-crawler/models"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already clean", input: "홍길동", expected: "홍길동"},
		{name: "inner runs", input: "서울   강남구\n\t을", expected: "서울 강남구 을"},
		{name: "surrounding whitespace", input: "  국회의원  ", expected: "국회의원"},
		{name: "empty", input: "", expected: ""},
		{name: "only whitespace", input: " \n\t ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.expected {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "seoul nine digits", input: "021234567", expected: "02-123-4567"},
		{name: "seoul ten digits", input: "0212345678", expected: "02-1234-5678"},
		{name: "area code ten digits", input: "0311234567", expected: "031-123-4567"},
		{name: "mobile eleven digits", input: "01012345678", expected: "010-1234-5678"},
		{name: "already hyphenated", input: "02-123-4567", expected: "02-123-4567"},
		{name: "with spaces and parens", input: "(02) 1234 5678", expected: "02-1234-5678"},
		{name: "unknown shape", input: "12345", expected: "12345"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPhoneNumber(tt.input); got != tt.expected {
				t.Errorf("FormatPhoneNumber(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatPhoneNumberIdempotent(t *testing.T) {
	inputs := []string{"021234567", "0212345678", "0311234567", "01012345678", "051 987 6543"}
	for _, input := range inputs {
		once := FormatPhoneNumber(input)
		twice := FormatPhoneNumber(once)
		if once != twice {
			t.Errorf("FormatPhoneNumber not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{input: "kim@assembly.go.kr", valid: true},
		{input: "a.b+c@example.com", valid: true},
		{input: "  kim@assembly.go.kr  ", valid: true},
		{input: "no-at-sign", valid: false},
		{input: "missing@tld", valid: false},
		{input: "two words@example.com", valid: false},
		{input: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidEmail(tt.input); got != tt.valid {
				t.Errorf("IsValidEmail(%q) = %t, want %t", tt.input, got, tt.valid)
			}
		})
	}
}

func TestParseCareer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []models.CareerItem
	}{
		{
			name:  "year range and plain line",
			input: "2020-2024 국회의원\n시의원",
			expected: []models.CareerItem{
				{Period: "2020-2024", Description: "국회의원"},
				{Period: "", Description: "시의원"},
			},
		},
		{
			name:  "dotted months",
			input: "2019.03~2023.02 서울시장",
			expected: []models.CareerItem{
				{Period: "2019.03~2023.02", Description: "서울시장"},
			},
		},
		{
			name:  "blank lines dropped",
			input: "\n\n2010. 변호사\n\n",
			expected: []models.CareerItem{
				{Period: "2010.", Description: "변호사"},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:  "year without separator is description",
			input: "2020 당선",
			expected: []models.CareerItem{
				{Period: "", Description: "2020 당선"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCareer(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseCareer(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  *models.Politician
		wantErr bool
	}{
		{
			name:    "full record",
			record:  &models.Politician{Name: "김철수", Party: "A당", District: "서울 강남구"},
			wantErr: false,
		},
		{
			name:    "empty party and district allowed",
			record:  &models.Politician{Name: "김철수"},
			wantErr: false,
		},
		{
			name:    "missing name",
			record:  &models.Politician{Party: "A당", District: "서울 강남구"},
			wantErr: true,
		},
		{
			name:    "whitespace-only name",
			record:  &models.Politician{Name: "   "},
			wantErr: true,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.record)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}
