package domain

import "testing"

func TestSeniorUsable(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  bool
	}{
		{name: "empty set", codes: nil, want: false},
		{name: "single senior code", codes: []string{"10"}, want: true},
		{name: "zero is a senior code", codes: []string{"0"}, want: true},
		{name: "upper bound 530", codes: []string{"530"}, want: true},
		{name: "540 is out of range", codes: []string{"540"}, want: false},
		{name: "non-multiple of ten", codes: []string{"15"}, want: false},
		{name: "mixed set with one senior code", codes: []string{"KOR", "abc", "20"}, want: true},
		{name: "only non-senior codes", codes: []string{"KOR", "SCI"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeniorUsable(tt.codes); got != tt.want {
				t.Errorf("SeniorUsable(%v) = %v, want %v", tt.codes, got, tt.want)
			}
		})
	}
}

func TestIsSeniorTopicCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"10", true},
		{"530", true},
		{"7", true},
		{"", false},
		{"1a", false},
		{"KOR", false},
		{"과학", false},
	}

	for _, tt := range tests {
		if got := IsSeniorTopicCode(tt.code); got != tt.want {
			t.Errorf("IsSeniorTopicCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestLastLetter(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"사과", "과"},
		{"나무", "무"},
		{"a", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := LastLetter(tt.word); got != tt.want {
			t.Errorf("LastLetter(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}
