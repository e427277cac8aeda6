package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		ok     bool
		text   string
	}{
		{"success", NewSuccess("Grow Selection"), true, "success: Grow Selection"},
		{"failure", NewFailure("Nothing to Grow"), false, "failure: Nothing to Grow"},
		{"no selection", NoSelectionResult, false, "no selection: Nothing Selected"},
		{"canceled", Result{Status: Canceled}, false, "canceled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.result.Ok())
			assert.Equal(t, tt.text, tt.result.String())
		})
	}
}
