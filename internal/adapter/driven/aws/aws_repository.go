package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-lambda-inventory-go/internal/domain/entity"
	"github.com/diillson/aws-lambda-inventory-go/internal/domain/repository"
	"github.com/diillson/aws-lambda-inventory-go/internal/shared/types"
)

const (
	// Nome de sessão usado em todas as chamadas de assume-role.
	roleSessionName = "ListLambdaFunctionsSession"

	// Duração das credenciais delegadas. Precisa cobrir a travessia completa
	// de uma conta (mínimo aceitável: 900s).
	roleDurationSeconds int32 = 3600

	// Região usada para chamadas que não são regionais por natureza
	// (DescribeRegions, AssumeRole).
	seedRegion = "us-east-1"
)

// STSAPI é a superfície do STS usada pelo delegador de credenciais.
type STSAPI interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// EC2API é a superfície do EC2 usada para listar regiões habilitadas.
type EC2API interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
}

// AWSRepositoryImpl implementa o AWSRepository sobre o SDK v2.
// Os clientes regionais são construídos por credencial delegada — credenciais
// nunca são compartilhadas entre contas.
type AWSRepositoryImpl struct {
	orgClient       organizations.ListAccountsAPIClient
	stsClient       STSAPI
	newEC2Client    func(cred entity.DelegatedCredential) EC2API
	newLambdaClient func(cred entity.DelegatedCredential, region string) lambda.ListFunctionsAPIClient
}

// NewAWSRepository cria uma nova implementação do AWSRepository usando a
// cadeia de credenciais padrão para as chamadas de organização e STS.
func NewAWSRepository(ctx context.Context) (repository.AWSRepository, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = seedRegion
	}

	return &AWSRepositoryImpl{
		orgClient: organizations.NewFromConfig(cfg),
		stsClient: sts.NewFromConfig(cfg),
		newEC2Client: func(cred entity.DelegatedCredential) EC2API {
			return ec2.NewFromConfig(delegatedConfig(cfg, cred, seedRegion))
		},
		newLambdaClient: func(cred entity.DelegatedCredential, region string) lambda.ListFunctionsAPIClient {
			return lambda.NewFromConfig(delegatedConfig(cfg, cred, region))
		},
	}, nil
}

// delegatedConfig deriva uma aws.Config regional a partir de uma credencial
// delegada, sem tocar na config base.
func delegatedConfig(base aws.Config, cred entity.DelegatedCredential, region string) aws.Config {
	cfg := base.Copy()
	cfg.Region = region
	cfg.Credentials = credentials.NewStaticCredentialsProvider(
		cred.AccessKeyID, cred.SecretAccessKey, cred.SessionToken)
	return cfg
}

// ListOrganizationAccounts lista todas as contas membro da organização,
// consumindo a paginação internamente.
func (r *AWSRepositoryImpl) ListOrganizationAccounts(ctx context.Context) ([]entity.Account, error) {
	var accounts []entity.Account

	paginator := organizations.NewListAccountsPaginator(r.orgClient, &organizations.ListAccountsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &types.OrganizationAccessError{Err: err}
		}
		for _, acct := range page.Accounts {
			accounts = append(accounts, entity.Account{
				ID:     aws.ToString(acct.Id),
				Name:   aws.ToString(acct.Name),
				Status: string(acct.Status),
			})
		}
	}

	return accounts, nil
}

// AssumeAccountRole troca um account ID por credenciais temporárias escopadas
// à role informada naquela conta.
func (r *AWSRepositoryImpl) AssumeAccountRole(ctx context.Context, accountID, roleName string) (entity.DelegatedCredential, error) {
	result, err := r.stsClient.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, roleName)),
		RoleSessionName: aws.String(roleSessionName),
		DurationSeconds: aws.Int32(roleDurationSeconds),
	})
	if err != nil {
		return entity.DelegatedCredential{}, &types.AssumeRoleError{AccountID: accountID, Err: err}
	}

	creds := result.Credentials
	return entity.DelegatedCredential{
		AccountID:       accountID,
		AccessKeyID:     aws.ToString(creds.AccessKeyId),
		SecretAccessKey: aws.ToString(creds.SecretAccessKey),
		SessionToken:    aws.ToString(creds.SessionToken),
		Expiration:      aws.ToTime(creds.Expiration),
	}, nil
}

// GetEnabledRegions retorna as regiões habilitadas para a conta dona da
// credencial — contas podem ter regiões desabilitadas, então nada de lista fixa.
func (r *AWSRepositoryImpl) GetEnabledRegions(ctx context.Context, cred entity.DelegatedCredential) ([]string, error) {
	ec2Client := r.newEC2Client(cred)

	output, err := ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{AllRegions: aws.Bool(false)})
	if err != nil {
		return nil, &types.RegionListError{AccountID: cred.AccountID, Err: err}
	}

	regions := make([]string, 0, len(output.Regions))
	for _, region := range output.Regions {
		regions = append(regions, aws.ToString(region.RegionName))
	}
	return regions, nil
}

// ListFunctions lista todas as funções de uma (conta, região), consumindo a
// paginação internamente. O SDK v2 devolve a FunctionConfiguration completa
// inline, então não há chamada de configuração por função.
func (r *AWSRepositoryImpl) ListFunctions(ctx context.Context, cred entity.DelegatedCredential, region string) ([]entity.FunctionConfiguration, error) {
	lambdaClient := r.newLambdaClient(cred, region)

	var functions []entity.FunctionConfiguration
	paginator := lambda.NewListFunctionsPaginator(lambdaClient, &lambda.ListFunctionsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &types.FunctionListError{AccountID: cred.AccountID, Region: region, Err: err}
		}
		for _, fn := range page.Functions {
			runtime := string(fn.Runtime)
			if runtime == "" {
				// Funções empacotadas como imagem de container não têm runtime.
				runtime = entity.RuntimeNotApplicable
			}
			functions = append(functions, entity.FunctionConfiguration{
				FunctionName: aws.ToString(fn.FunctionName),
				FunctionArn:  aws.ToString(fn.FunctionArn),
				Runtime:      runtime,
			})
		}
	}

	return functions, nil
}
