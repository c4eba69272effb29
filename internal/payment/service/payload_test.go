package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{
			name: "json object",
			raw:  `{"email":"a@b.com","status":"success"}`,
			want: map[string]string{"email": "a@b.com", "status": "success"},
		},
		{
			name: "json with numeric and bool values",
			raw:  `{"status_code":200,"verified":true,"amount":49.5}`,
			want: map[string]string{"status_code": "200", "verified": "true", "amount": "49.5"},
		},
		{
			name: "json nested values ignored",
			raw:  `{"email":"a@b.com","meta":{"k":"v"}}`,
			want: map[string]string{"email": "a@b.com"},
		},
		{
			name: "urlencoded form",
			raw:  "email=a%40b.com&status=success",
			want: map[string]string{"email": "a@b.com", "status": "success"},
		},
		{
			name: "urlencoded repeated key keeps first",
			raw:  "status=success&status=failure",
			want: map[string]string{"status": "success"},
		},
		{
			name: "garbage decodes to empty mapping",
			raw:  "%%%;;;",
			want: map[string]string{},
		},
		{
			name: "empty body",
			raw:  "",
			want: map[string]string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decodePayload([]byte(tc.raw)))
		})
	}
}

func TestPickHonorsKeyPriority(t *testing.T) {
	fields := map[string]string{
		"buyerEmail":     "buyer@b.com",
		"customer_email": "customer@b.com",
	}
	assert.Equal(t, "buyer@b.com", pick(fields, emailKeys))

	fields["email"] = "primary@b.com"
	assert.Equal(t, "primary@b.com", pick(fields, emailKeys))

	assert.Equal(t, "", pick(map[string]string{}, statusKeys))

	// Empty values do not win over later populated candidates.
	assert.Equal(t, "PAID", pick(map[string]string{"status": "", "payment_status": "PAID"}, statusKeys))
}
