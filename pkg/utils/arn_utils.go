package utils

import (
	"fmt"
	"strings"
)

// arnInstanceIDIndex is the position of the resource name in an RDS
// instance ARN, e.g. arn:aws:rds:us-east-1:123456789012:db:my-instance.
const arnInstanceIDIndex = 6

// InstanceIDFromARN extracts the instance identifier from an RDS
// resource ARN. The identifier is the 7th colon-delimited field.
func InstanceIDFromARN(arn string) (string, error) {
	parts := strings.Split(arn, ":")
	if len(parts) <= arnInstanceIDIndex {
		return "", fmt.Errorf("malformed resource identifier %q: expected at least %d colon-delimited fields", arn, arnInstanceIDIndex+1)
	}
	return parts[arnInstanceIDIndex], nil
}
