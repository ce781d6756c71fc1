package entity

import "strings"

// serviceNames mapeia nomes curtos para os valores da dimensão SERVICE.
var serviceNames = map[string]string{
	"rds":         "Amazon Relational Database Service",
	"ec2":         "Amazon Elastic Compute Cloud - Compute",
	"ec2-other":   "EC2 - Other",
	"s3":          "Amazon Simple Storage Service",
	"lambda":      "AWS Lambda",
	"dynamodb":    "Amazon DynamoDB",
	"cloudwatch":  "AmazonCloudWatch",
	"cloudfront":  "Amazon CloudFront",
	"ecs":         "Amazon Elastic Container Service",
	"eks":         "Amazon Elastic Container Service for Kubernetes",
	"elasticache": "Amazon ElastiCache",
	"elb":         "Amazon Elastic Load Balancing",
	"vpc":         "Amazon Virtual Private Cloud",
}

// NormalizeServiceName expande um nome curto conhecido para o nome usado pelo
// Cost Explorer. Qualquer outro valor volta apenas sem espaços nas pontas.
func NormalizeServiceName(name string) string {
	trimmed := strings.TrimSpace(name)
	if full, ok := serviceNames[strings.ToLower(trimmed)]; ok {
		return full
	}
	return trimmed
}
