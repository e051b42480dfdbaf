package renderer

import (
	"errors"
	"testing"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDocumentStatus(t *testing.T) {
	testCases := []struct {
		name   string
		status int64
		ok     bool
	}{
		{"ok", 200, true},
		{"no content", 204, true},
		{"not found", 404, false},
		{"server error", 500, false},
		{"redirect left unresolved", 302, false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := checkDocumentStatus("https://shop.example.com/p/1", &network.Response{Status: testCase.status})
			if testCase.ok {
				assert.NoError(t, err)
				return
			}
			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, testCase.status, statusErr.Status)
		})
	}
}

func TestCheckDocumentStatusMissingResponse(t *testing.T) {
	assert.Error(t, checkDocumentStatus("https://shop.example.com/p/1", nil))
}
