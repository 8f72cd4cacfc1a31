package tago

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSSM struct {
	ssmiface.SSMAPI

	params map[string]string
}

func (f *fakeSSM) GetParameters(input *ssm.GetParametersInput) (*ssm.GetParametersOutput, error) {
	output := &ssm.GetParametersOutput{}
	for _, name := range aws.StringValueSlice(input.Names) {
		if value, ok := f.params[name]; ok {
			output.Parameters = append(output.Parameters, &ssm.Parameter{Name: aws.String(name), Value: aws.String(value)})
		}
	}
	return output, nil
}

func TestLoadSecrets(t *testing.T) {
	t.Run("golden path", func(t *testing.T) {
		secrets, err := LoadSecrets(&fakeSSM{params: map[string]string{"/tago-users/signing": "sekret"}}, "/tago-users/signing")

		require.NoError(t, err)
		assert.Equal(t, "sekret", secrets.Signing)
	})

	t.Run("missing parameter", func(t *testing.T) {
		_, err := LoadSecrets(&fakeSSM{}, "/tago-users/signing")

		assert.Equal(t, ErrRecordNotFound, err)
	})
}
