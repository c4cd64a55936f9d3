package core

import (
	"errors"
	"testing"
)

func TestValidateFAQEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   *FAQEntry
		wantErr error
	}{
		{
			name: "valid entry",
			entry: &FAQEntry{
				Id:       1,
				Position: 0,
				Question: "What is your refund policy?",
				Answer:   "Refunds within 30 days.",
			},
			wantErr: nil,
		},
		{
			name: "valid entry with empty vector",
			entry: &FAQEntry{
				Id:       2,
				Position: 1,
				Question: "Do you ship internationally?",
				Answer:   "Yes, to select countries.",
				Vector:   nil,
			},
			wantErr: nil,
		},
		{
			name: "valid entry with ID 0",
			entry: &FAQEntry{
				Id:       0,
				Position: 3,
				Question: "Is cash on delivery available?",
				Answer:   "Yes.",
			},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidFAQEntry,
		},
		{
			name: "empty question",
			entry: &FAQEntry{
				Id:       1,
				Position: 0,
				Question: "",
				Answer:   "Some answer",
			},
			wantErr: ErrEmptyQuestion,
		},
		{
			name: "empty answer",
			entry: &FAQEntry{
				Id:       1,
				Position: 0,
				Question: "Some question?",
				Answer:   "",
			},
			wantErr: ErrEmptyAnswer,
		},
		{
			name: "negative position",
			entry: &FAQEntry{
				Id:       1,
				Position: -1,
				Question: "Some question?",
				Answer:   "Some answer",
			},
			wantErr: ErrNegativePosition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFAQEntry(tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFAQEntry() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFAQEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
