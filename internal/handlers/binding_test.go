package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    SavingsRequest
		expectError bool
	}{
		{
			name:     "Nested Structure",
			key:      "savings",
			body:     `{"savings": {"user_id": 7, "type": "Other", "payment_month": "March"}}`,
			expected: SavingsRequest{UserID: 7, Type: "Other", PaymentMonth: "March"},
		},
		{
			name:     "Flat Structure",
			key:      "savings",
			body:     `{"user_id": 8, "type": "Monthly Savings"}`,
			expected: SavingsRequest{UserID: 8, Type: "Monthly Savings"},
		},
		{
			name:     "Nested Key Missing Falls Back To Flat",
			key:      "savings",
			body:     `{"share": {"user_id": 1}, "user_id": 9}`,
			expected: SavingsRequest{UserID: 9},
		},
		{
			name:     "Formatted Amount Kept For Parsing",
			key:      "savings",
			body:     `{"user_id": 3, "amount": "₦5,000.00"}`,
			expected: SavingsRequest{UserID: 3, Amount: "₦5,000.00"},
		},
		{
			name:        "Invalid Field Type",
			key:         "savings",
			body:        `{"user_id": "seven"}`,
			expectError: true,
		},
		{
			name:        "Nested but Invalid Content",
			key:         "savings",
			body:        `{"savings": {"user_id": -1}}`,
			expectError: true,
		},
		{
			name:        "Nested Key Present but Invalid Type",
			key:         "savings",
			body:        `{"savings": "some string"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result SavingsRequest
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
