package repository

import (
	"context"
	"time"

	"labtracker/internal/domain/entities"
	"labtracker/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultUserRolesTableName = "user_roles"
	defaultProfilesTableName  = "profiles"
	defaultLabUsersTableName  = "lab_users"
	labUsersUserIDIndex       = "user_id-index"
)

type userRoleRow struct {
	UserID    string `dynamodbav:"user_id"`
	Role      string `dynamodbav:"role"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

type profileRow struct {
	ID                  string `dynamodbav:"id"`
	Email               string `dynamodbav:"email"`
	FullName            string `dynamodbav:"full_name,omitempty"`
	OnboardingCompleted bool   `dynamodbav:"onboarding_completed"`
	CreatedAt           string `dynamodbav:"created_at"`
}

type labUserRow struct {
	LabID  string `dynamodbav:"lab_id"`
	UserID string `dynamodbav:"user_id"`
	Role   string `dynamodbav:"role,omitempty"`
}

// UserRoleDynamoRepository persists the user_roles table (PK: user_id).

type UserRoleDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IUserRoleRepository = (*UserRoleDynamoRepository)(nil)

func NewUserRoleDynamoRepository(ddb DynamoAPI, tableName string) *UserRoleDynamoRepository {
	return &UserRoleDynamoRepository{ddb: ddb, tableName: tableOr(tableName, defaultUserRolesTableName), now: time.Now}
}

func (r *UserRoleDynamoRepository) GetRole(ctx context.Context, userID string) (entities.AppRole, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey("user_id", userID),
	})
	if err != nil {
		return "", err
	}
	if len(out.Item) == 0 {
		return "", nil
	}
	var row userRoleRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return "", err
	}
	return entities.AppRole(row.Role), nil
}

func (r *UserRoleDynamoRepository) SetRole(ctx context.Context, userID string, role entities.AppRole) (entities.UserRole, error) {
	ur := entities.UserRole{UserID: userID, Role: role, UpdatedAt: r.now().UTC()}
	av, err := attributevalue.MarshalMap(userRoleRow{UserID: userID, Role: string(role), UpdatedAt: formatTime(ur.UpdatedAt)})
	if err != nil {
		return entities.UserRole{}, err
	}
	if _, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(r.tableName), Item: av}); err != nil {
		return entities.UserRole{}, err
	}
	return ur, nil
}

func (r *UserRoleDynamoRepository) ListRoles(ctx context.Context) ([]entities.UserRole, error) {
	rows, err := scanAll[userRoleRow](ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	out := make([]entities.UserRole, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.UserRole{UserID: row.UserID, Role: entities.AppRole(row.Role), UpdatedAt: parseTime(row.UpdatedAt)})
	}
	return out, nil
}

// ProfileDynamoRepository reads the profiles table (PK: id).

type ProfileDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IProfileRepository = (*ProfileDynamoRepository)(nil)

func NewProfileDynamoRepository(ddb DynamoAPI, tableName string) *ProfileDynamoRepository {
	return &ProfileDynamoRepository{ddb: ddb, tableName: tableOr(tableName, defaultProfilesTableName)}
}

func (r *ProfileDynamoRepository) GetByID(ctx context.Context, id string) (entities.Profile, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey("id", id),
	})
	if err != nil {
		return entities.Profile{}, err
	}
	if len(out.Item) == 0 {
		return entities.Profile{}, nil
	}
	var row profileRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return entities.Profile{}, err
	}
	return fromProfileRow(row), nil
}

func (r *ProfileDynamoRepository) List(ctx context.Context) ([]entities.Profile, error) {
	rows, err := scanAll[profileRow](ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromProfileRow(row))
	}
	return out, nil
}

func fromProfileRow(row profileRow) entities.Profile {
	return entities.Profile{
		ID:                  row.ID,
		Email:               row.Email,
		FullName:            row.FullName,
		OnboardingCompleted: row.OnboardingCompleted,
		CreatedAt:           parseTime(row.CreatedAt),
	}
}

// LabUserDynamoRepository reads the lab_users table.
//
// Table requirements:
//   - PK: lab_id (string), SK: user_id (string)
//   - GSI: user_id-index (PK: user_id)

type LabUserDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ILabUserRepository = (*LabUserDynamoRepository)(nil)

func NewLabUserDynamoRepository(ddb DynamoAPI, tableName string) *LabUserDynamoRepository {
	return &LabUserDynamoRepository{ddb: ddb, tableName: tableOr(tableName, defaultLabUsersTableName)}
}

func (r *LabUserDynamoRepository) ListByLabID(ctx context.Context, labID string) ([]entities.LabUser, error) {
	rows, err := queryAll[labUserRow](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("lab_id = :lid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":lid": &types.AttributeValueMemberS{Value: labID},
		},
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.LabUser, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.LabUser(row))
	}
	return out, nil
}

// GetByUserID returns a zero LabUser when the account is not linked to a lab.
func (r *LabUserDynamoRepository) GetByUserID(ctx context.Context, userID string) (entities.LabUser, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(labUsersUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.LabUser{}, err
	}
	if len(out.Items) == 0 {
		return entities.LabUser{}, nil
	}
	var row labUserRow
	if err := attributevalue.UnmarshalMap(out.Items[0], &row); err != nil {
		return entities.LabUser{}, err
	}
	return entities.LabUser(row), nil
}
