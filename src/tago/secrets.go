package tago

import (
	"os"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/maddiesch/serverless"
	"github.com/maddiesch/serverless/amazon"
)

// Secret contains the app secrets
type Secret struct {
	Signing string
}

var (
	secretsInstance Secret
	secretsSetup    sync.Once
)

// Secrets returns the shared secrets for the app
func Secrets() Secret {
	secretsSetup.Do(func() {
		if os.Getenv("RETURN_FAKE_SECRETS") == "true" {
			secretsInstance = Secret{
				Signing: "super-sekret",
			}
			return
		}

		secrets, err := LoadSecrets(ssm.New(amazon.BaseSession()), os.Getenv("SECRETS_SIGNING_PARAMETER_NAME"))
		if err != nil {
			serverless.GetLogger().Fatal(err)
		}

		secretsInstance = secrets
	})
	return secretsInstance
}

// LoadSecrets reads the secrets out of the parameter store.
func LoadSecrets(client ssmiface.SSMAPI, signingParameter string) (Secret, error) {
	output, err := client.GetParameters(&ssm.GetParametersInput{
		Names:          aws.StringSlice([]string{signingParameter}),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return Secret{}, err
	}

	secrets := Secret{}

	for _, param := range output.Parameters {
		switch aws.StringValue(param.Name) {
		case signingParameter:
			secrets.Signing = aws.StringValue(param.Value)
		default:
		}
	}

	if secrets.Signing == "" {
		return Secret{}, ErrRecordNotFound
	}

	return secrets, nil
}
