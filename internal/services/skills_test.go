package services

import (
	"context"
	"reflect"
	"testing"
)

func TestExtractSkillsParsesModelOutput(t *testing.T) {
	gemini := &stubGemini{textResponse: "Python, Flask,\nMachine Learning, Teamwork"}
	extractor := NewSkillExtractorService(gemini)

	skills, err := extractor.ExtractSkills(context.Background(), "some resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"python", "flask", "machine learning", "teamwork"}
	if !reflect.DeepEqual(skills, expected) {
		t.Fatalf("unexpected skills: %v", skills)
	}

	if gemini.lastPrompt == "" {
		t.Fatalf("expected prompt to be sent")
	}
}

func TestParseSkillList(t *testing.T) {
	cases := []struct {
		name     string
		response string
		want     []string
	}{
		{"plain", "go, docker, kubernetes", []string{"go", "docker", "kubernetes"}},
		{"mixed case and spacing", " Go ,  DOCKER,kubernetes ", []string{"go", "docker", "kubernetes"}},
		{"empty entries dropped", "go,,docker,", []string{"go", "docker"}},
		{"empty response", "   ", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseSkillList(tc.response); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseSkillList(%q) = %v, want %v", tc.response, got, tc.want)
			}
		})
	}
}

func TestNormalizeSkill(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"AWS", "amazon web services"},
		{"aws lambda", "amazon web services"},
		{"Amazon S3", "aws s3"},
		{"JS", "javascript"},
		{"Python (advanced)", "python"},
		{"  Docker  ", "docker"},
		{"ml", "machine learning"},
	}

	for _, tc := range cases {
		if got := NormalizeSkill(tc.in); got != tc.want {
			t.Errorf("NormalizeSkill(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPreprocessSkills(t *testing.T) {
	got := PreprocessSkills("Python; python / Docker | JS, js, ,")

	// Normalized, deduplicated, sorted.
	want := []string{"docker", "javascript", "python"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PreprocessSkills = %v, want %v", got, want)
	}
}

func TestPreprocessSkillsDeterministic(t *testing.T) {
	first := PreprocessSkills("go, rust, zig, c, python, java, kotlin")
	for i := 0; i < 10; i++ {
		if next := PreprocessSkills("go, rust, zig, c, python, java, kotlin"); !reflect.DeepEqual(first, next) {
			t.Fatalf("non-deterministic output: %v vs %v", first, next)
		}
	}
}
