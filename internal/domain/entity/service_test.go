package entity

import "testing"

func TestNormalizeServiceName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rds", "Amazon Relational Database Service"},
		{"RDS", "Amazon Relational Database Service"},
		{" ec2 ", "Amazon Elastic Compute Cloud - Compute"},
		{"lambda", "AWS Lambda"},
		{"Amazon Simple Queue Service", "Amazon Simple Queue Service"},
		{"redshift", "redshift"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeServiceName(tt.in); got != tt.want {
				t.Errorf("NormalizeServiceName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
