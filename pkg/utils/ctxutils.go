package utils

import (
	"context"

	"roombook/pkg/contextkeys"
	apperrors "roombook/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}

func GetUsernameFromCtx(ctx context.Context) (string, error) {
	username, ok := ctx.Value(contextkeys.UsernameKey).(string)
	if !ok || username == "" {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return username, nil
}

func GetRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(contextkeys.RoleKey).(string)
	return role
}
