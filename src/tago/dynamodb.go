package tago

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/maddiesch/serverless"
)

var (
	dbInstance *dynamodb.DynamoDB
	dbSetup    sync.Once
)

// DynamoDB returns the shared DynamoDB client instance
func DynamoDB() *dynamodb.DynamoDB {
	dbSetup.Do(func() {
		dbInstance = serverless.NewDB("", "").Client
	})
	return dbInstance
}

// FormatString returns the DynamoDB AttributeValue String Value with a format
func FormatString(format string, args ...interface{}) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{S: aws.String(fmt.Sprintf(format, args...))}
}

// DynamoTime returns the DynamoDB AttributeValue for a time
func DynamoTime(t time.Time) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(fmt.Sprintf("%d", t.Unix()))}
}

// TimeFromDynamo parses and returns the time from a dynamodb attribute value
func TimeFromDynamo(a *dynamodb.AttributeValue) time.Time {
	if a == nil || a.N == nil {
		return time.Time{}
	}

	value, err := strconv.ParseInt(aws.StringValue(a.N), 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.Unix(value, 0)
}

func stringFromDynamo(a *dynamodb.AttributeValue) string {
	if a == nil {
		return ""
	}
	return aws.StringValue(a.S)
}
