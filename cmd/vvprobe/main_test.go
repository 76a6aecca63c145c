package main

import (
	"strings"
	"testing"
)

func TestRunOfflinePipeline(t *testing.T) {
	cfg := options{
		question: "When is Amavasya in Mumbai?",
		language: "en",
		answer:   defaultAnswer,
		verbose:  false,
	}
	if err := run(cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}
}

func TestRunSecularQuestion(t *testing.T) {
	cfg := options{
		question: "What's the weather tomorrow?",
		language: "en",
		answer:   defaultAnswer,
		verbose:  false,
	}
	if err := run(cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}
}

func TestDefaultAnswerStaysPlain(t *testing.T) {
	if strings.Contains(defaultAnswer, "**") {
		t.Fatal("default answer should be plain text")
	}
}
