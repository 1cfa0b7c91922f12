package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStrongPassword(t *testing.T) {
	testCases := []struct {
		password string
		wantErr  string
	}{
		{password: "Secret1"},
		{password: "Ab1", wantErr: "password field must be at least 6 characters long"},
		{password: "secret1", wantErr: "password must contain at least one uppercase letter"},
		{password: "SECRET1", wantErr: "password must contain at least one lowercase letter"},
		{password: "Secrets", wantErr: "password must contain at least one digit"},
	}

	for _, tc := range testCases {
		t.Run(tc.password, func(t *testing.T) {
			err := ValidStrongPassword(tc.password)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}
